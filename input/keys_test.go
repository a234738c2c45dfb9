package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		code int
		want Action
	}{
		{name: "quit lower", code: 'q', want: Action{Quit: true}},
		{name: "quit upper", code: 'Q', want: Action{Quit: true}},
		{name: "quit esc", code: Esc, want: Action{Quit: true}},
		{name: "pause", code: 'p', want: Action{TogglePause: true}},
		{name: "pause space", code: Space, want: Action{TogglePause: true}},
		{name: "screenshot", code: 's', want: Action{Screenshot: true}},
		{name: "reset", code: 'r', want: Action{Reset: true}},
		{name: "record", code: 'v', want: Action{ToggleRecording: true}},
		{name: "theme", code: 't', want: Action{CycleTheme: true}},
		{name: "faster", code: '+', want: Action{RateDelta: 10}},
		{name: "faster equals", code: '=', want: Action{RateDelta: 10}},
		{name: "slower", code: '-', want: Action{RateDelta: -10}},
		{name: "none", code: None, want: Action{}},
		{name: "unknown", code: 'z', want: Action{}},
		{name: "negative garbage", code: -42, want: Action{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.code))
		})
	}
}
