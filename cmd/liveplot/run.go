package main

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/googlesky/liveplot"
	"github.com/googlesky/liveplot/frame"
	"github.com/googlesky/liveplot/input"
	"github.com/googlesky/liveplot/pacer"
)

// run wires the plot, the pacer and the terminal UI together and blocks
// until the user quits or the duration elapses.
//
// The render loop runs on its own goroutine and owns the plot and the
// pacer. The UI owns the terminal. They meet on two channels: frames
// flow loop→UI, raw key codes flow UI→loop through the pacer's wait
// primitive, so a key press ends the current frame wait early.
func run(cfg liveplot.Config, strategy pacer.Strategy, src source, duration time.Duration) error {
	plot, err := liveplot.New(cfg)
	if err != nil {
		return err
	}
	src.setup(plot)

	keyCh := make(chan int, 8)
	frameCh := make(chan *frame.Frame, 1)
	stop := make(chan struct{})

	prog := tea.NewProgram(newUIModel(frameCh, keyCh), tea.WithAltScreen())

	pc := pacer.New(cfg.TargetFPS, strategy, pacer.WithWait(func(d time.Duration) int {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case code := <-keyCh:
			return code
		case <-stop:
			// UI is gone; unblock the loop as if quit were pressed.
			return 'q'
		case <-timer.C:
			return pacer.NoInput
		}
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(frameCh)
		loop(plot, pc, src, frameCh, duration)
	}()

	_, uiErr := prog.Run()
	close(stop)
	<-done
	return uiErr
}

func loop(plot *liveplot.Plot, pc *pacer.Pacer, src source, frameCh chan<- *frame.Frame, duration time.Duration) {
	var deadline time.Time
	if duration > 0 {
		deadline = time.Now().Add(duration)
	}

	var rec *recorder

	for step := 0; ; step++ {
		if err := plot.PushAll(src.sample(step)); err != nil {
			log.Printf("liveplot: push: %v", err)
		}

		f := plot.Render(liveplot.RenderInfo{Rate: pc.Rate()})

		// Drop the frame if the UI hasn't consumed the previous one;
		// the loop never blocks on a slow terminal.
		select {
		case frameCh <- f.Clone():
		default:
		}

		if rec != nil {
			rec.write(f)
		}

		act := input.Decode(pc.Tick())
		switch {
		case act.Quit:
			return

		case act.TogglePause:
			paused := !plot.Paused()
			plot.SetPaused(paused)
			if paused {
				plot.SetStatus("Paused - press P to resume", 5*time.Second)
			} else {
				plot.SetStatus("Resumed", 2*time.Second)
			}

		case act.Screenshot:
			name, err := saveScreenshot(f)
			if err != nil {
				log.Printf("liveplot: screenshot: %v", err)
				plot.SetStatus("Screenshot failed", 3*time.Second)
			} else {
				plot.SetStatus("Saved "+name, 3*time.Second)
			}

		case act.Reset:
			plot.ClearAll()
			plot.SetStatus("Data cleared", 2*time.Second)

		case act.ToggleRecording:
			if rec == nil {
				r, err := newRecorder()
				if err != nil {
					log.Printf("liveplot: recorder: %v", err)
					plot.SetStatus("Recording failed", 3*time.Second)
					break
				}
				rec = r
				plot.SetStatus("Recording to "+r.dir, 3*time.Second)
			} else {
				dir, n := rec.stop()
				rec = nil
				plot.SetStatus(fmt.Sprintf("Recorded %d frames to %s", n, dir), 3*time.Second)
			}

		case act.CycleTheme:
			plot.SetStatus("Theme: "+plot.CycleTheme(), 2*time.Second)

		case act.RateDelta != 0:
			hz := pc.Target() + float64(act.RateDelta)
			if hz < 10 {
				hz = 10
			}
			pc.SetTarget(hz)
			plot.SetStatus(fmt.Sprintf("Target %.0f FPS", hz), 2*time.Second)
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			return
		}
	}
}
