//go:build !linux

package main

import (
	"errors"

	"github.com/googlesky/liveplot"
)

func newNetSource(liveplot.Config) (source, error) {
	return nil, errors.New("the net demo reads interface counters over netlink and needs Linux")
}
