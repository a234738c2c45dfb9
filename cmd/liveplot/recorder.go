package main

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/googlesky/liveplot/frame"
)

// recorder dumps every rendered frame as a numbered JPEG into a
// timestamped directory, for assembling into a video afterwards.
type recorder struct {
	dir string
	n   int
}

func newRecorder() (*recorder, error) {
	dir := "liveplot_" + time.Now().Format("20060102_150405")
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create recording dir: %w", err)
	}
	return &recorder{dir: dir}, nil
}

func (r *recorder) write(f *frame.Frame) {
	name := filepath.Join(r.dir, fmt.Sprintf("frame%06d.jpg", r.n))
	r.n++

	out, err := os.Create(name)
	if err != nil {
		log.Printf("liveplot: record frame: %v", err)
		return
	}
	defer out.Close()

	if err := jpeg.Encode(out, f, &jpeg.Options{Quality: 90}); err != nil {
		log.Printf("liveplot: encode frame: %v", err)
	}
}

// stop ends the recording and reports where it went and how long it is.
func (r *recorder) stop() (dir string, frames int) {
	return r.dir, r.n
}

// saveScreenshot writes the frame as a timestamped PNG in the working
// directory and returns the file name.
func saveScreenshot(f *frame.Frame) (string, error) {
	name := "liveplot_" + time.Now().Format("20060102_150405") + ".png"

	out, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := png.Encode(out, f); err != nil {
		return "", err
	}
	return name, nil
}
