//go:build linux

package main

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"time"
	"unsafe"

	"github.com/mdlayher/netlink"

	"github.com/googlesky/liveplot"
)

const (
	rtmGetLink  = 18 // RTM_GETLINK
	iflaIfname  = 3  // IFLA_IFNAME
	iflaStats64 = 23 // IFLA_STATS64

	iffLoopback = 0x8 // IFF_LOOPBACK

	// rtnl_link_stats64 byte offsets (all fields are uint64).
	statsRxBytes = 16
	statsTxBytes = 24
	statsMinLen  = 32
)

// ifInfoMsg is the wire format of struct ifinfomsg (16 bytes).
type ifInfoMsg struct {
	Family uint8
	Pad    uint8
	Type   uint16
	Index  int32
	Flags  uint32
	Change uint32
}

// netSource plots aggregate rx/tx rates over all non-loopback
// interfaces, sampled from RTM_GETLINK dumps.
type netSource struct {
	conn *netlink.Conn

	lastRx, lastTx uint64
	lastAt         time.Time
	primed         bool
}

func newNetSource(liveplot.Config) (source, error) {
	// NETLINK_ROUTE = 0
	conn, err := netlink.Dial(0, nil)
	if err != nil {
		return nil, fmt.Errorf("netlink dial: %w", err)
	}
	s := &netSource{conn: conn}
	if _, _, err := s.readCounters(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("netlink link dump: %w", err)
	}
	return s, nil
}

func (s *netSource) setup(p *liveplot.Plot) {
	rx := liveplot.DefaultSeriesConfig()
	rx.Label = "rx KB/s"
	tx := liveplot.DefaultSeriesConfig()
	tx.Label = "tx KB/s"
	p.AddSeries("rx", &rx).AddSeries("tx", &tx)
}

func (s *netSource) sample(int) map[string]float64 {
	rx, tx, err := s.readCounters()
	now := time.Now()
	if err != nil {
		log.Printf("liveplot: link dump failed: %v", err)
		return map[string]float64{"rx": math.NaN(), "tx": math.NaN()}
	}

	if !s.primed {
		s.lastRx, s.lastTx, s.lastAt = rx, tx, now
		s.primed = true
		return map[string]float64{"rx": math.NaN(), "tx": math.NaN()}
	}

	dt := now.Sub(s.lastAt).Seconds()
	if dt <= 0 {
		return map[string]float64{"rx": math.NaN(), "tx": math.NaN()}
	}
	out := map[string]float64{
		"rx": float64(rx-s.lastRx) / dt / 1024,
		"tx": float64(tx-s.lastTx) / dt / 1024,
	}
	s.lastRx, s.lastTx, s.lastAt = rx, tx, now
	return out
}

// readCounters dumps all links and sums rx/tx byte counters over
// non-loopback interfaces.
func (s *netSource) readCounters() (rx, tx uint64, err error) {
	req := ifInfoMsg{}
	reqBytes := (*[unsafe.Sizeof(req)]byte)(unsafe.Pointer(&req))[:]

	msgs, err := s.conn.Execute(netlink.Message{
		Header: netlink.Header{
			Type:  rtmGetLink,
			Flags: netlink.Request | netlink.Dump,
		},
		Data: reqBytes,
	})
	if err != nil {
		return 0, 0, err
	}

	for _, m := range msgs {
		if len(m.Data) < int(unsafe.Sizeof(req)) {
			continue
		}
		info := (*ifInfoMsg)(unsafe.Pointer(&m.Data[0]))
		if info.Flags&iffLoopback != 0 {
			continue
		}

		ad, err := netlink.NewAttributeDecoder(m.Data[unsafe.Sizeof(req):])
		if err != nil {
			continue
		}
		for ad.Next() {
			if ad.Type() != iflaStats64 {
				continue
			}
			b := ad.Bytes()
			if len(b) < statsMinLen {
				continue
			}
			rx += binary.LittleEndian.Uint64(b[statsRxBytes:])
			tx += binary.LittleEndian.Uint64(b[statsTxBytes:])
		}
	}
	return rx, tx, nil
}
