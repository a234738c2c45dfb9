package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/googlesky/liveplot/frame"
)

// frameMsg delivers a rendered frame to the UI.
type frameMsg struct {
	f *frame.Frame
}

type keyMap struct {
	Pause      key.Binding
	Screenshot key.Binding
	Reset      key.Binding
	Record     key.Binding
	Theme      key.Binding
	Faster     key.Binding
	Slower     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Pause:      key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Screenshot: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "screenshot")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Record:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "record")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Faster:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Screenshot, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Screenshot, k.Reset},
		{k.Record, k.Theme, k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}

// uiModel displays frames as half-block cells and forwards key presses
// to the render loop as raw codes.
type uiModel struct {
	width  int
	height int

	fr   *frame.Frame
	keys keyMap
	help help.Model

	frameCh <-chan *frame.Frame
	keyCh   chan<- int
}

func newUIModel(frameCh <-chan *frame.Frame, keyCh chan<- int) uiModel {
	return uiModel{
		keys:    newKeyMap(),
		help:    help.New(),
		frameCh: frameCh,
		keyCh:   keyCh,
	}
}

// waitForFrame returns a tea.Cmd that waits for the next frame.
// Returns tea.Quit if the channel is closed (render loop stopped).
func waitForFrame(ch <-chan *frame.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return tea.Quit()
		}
		return frameMsg{f: f}
	}
}

func (m uiModel) Init() tea.Cmd {
	return waitForFrame(m.frameCh)
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.fr = msg.f
		return m, waitForFrame(m.frameCh)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Quit):
			m.send('q')
		case key.Matches(msg, m.keys.Pause):
			m.send('p')
		case key.Matches(msg, m.keys.Screenshot):
			m.send('s')
		case key.Matches(msg, m.keys.Reset):
			m.send('r')
		case key.Matches(msg, m.keys.Record):
			m.send('v')
		case key.Matches(msg, m.keys.Theme):
			m.send('t')
		case key.Matches(msg, m.keys.Faster):
			m.send('+')
		case key.Matches(msg, m.keys.Slower):
			m.send('-')
		}
		return m, nil
	}

	return m, nil
}

// send forwards a key code to the render loop without blocking; if the
// loop's buffer is full the press is dropped.
func (m uiModel) send(code int) {
	select {
	case m.keyCh <- code:
	default:
	}
}

func (m uiModel) View() string {
	if m.fr == nil || m.width == 0 || m.height == 0 {
		return "waiting for first frame..."
	}

	helpView := m.help.View(m.keys)
	rows := m.height - lipgloss.Height(helpView)
	if rows < 1 {
		rows = 1
	}
	cols := m.width

	var b strings.Builder
	for cy := 0; cy < rows; cy++ {
		var (
			run      strings.Builder
			style    lipgloss.Style
			haveRun  bool
			lastPair [2]frame.Color
		)
		flush := func() {
			if haveRun {
				b.WriteString(style.Render(run.String()))
				run.Reset()
			}
		}
		for cx := 0; cx < cols; cx++ {
			top := m.sampleCell(cx, 2*cy, cols, 2*rows)
			bot := m.sampleCell(cx, 2*cy+1, cols, 2*rows)
			pair := [2]frame.Color{top, bot}
			if !haveRun || pair != lastPair {
				flush()
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(hexColor(top))).
					Background(lipgloss.Color(hexColor(bot)))
				lastPair = pair
				haveRun = true
			}
			run.WriteRune('▀')
		}
		flush()
		b.WriteByte('\n')
	}

	b.WriteString(helpView)
	return b.String()
}

// sampleCell maps a cell coordinate on a cols×rows grid to the nearest
// source pixel.
func (m uiModel) sampleCell(cx, cy, cols, rows int) frame.Color {
	px := cx * m.fr.W / cols
	py := cy * m.fr.H / rows
	return m.fr.Pixel(px, py)
}

func hexColor(c frame.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
