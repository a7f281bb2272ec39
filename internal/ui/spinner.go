package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is an inline spinner for a single backend call. It redraws one
// line on w until Stop prints the final status.
type Spinner struct {
	writer   io.Writer
	message  string
	interval time.Duration

	stopChan chan struct{}
	doneChan chan struct{}

	mu       sync.Mutex
	running  bool
	frameIdx int
}

// NewSpinner creates a spinner that prints message next to the frame.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		writer:   w,
		message:  message,
		interval: 80 * time.Millisecond,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the animation. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		defer close(s.doneChan)

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.mu.Lock()
				s.frameIdx = (s.frameIdx + 1) % len(spinnerFrames)
				frame, msg := spinnerFrames[s.frameIdx], s.message
				s.mu.Unlock()

				fmt.Fprintf(s.writer, "\r\033[K%s %s", Secondary.Render(frame), msg)
			}
		}
	}()
}

// Stop ends the animation and prints a check or cross with finalMessage.
func (s *Spinner) Stop(success bool, finalMessage string) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	<-s.doneChan

	fmt.Fprint(s.writer, "\r\033[K")
	if success {
		fmt.Fprintf(s.writer, "%s %s\n", GetCheckMark(), finalMessage)
	} else {
		fmt.Fprintf(s.writer, "%s %s\n", GetCrossMark(), Error.Render(finalMessage))
	}
}
