package tty

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames defines the animation characters for the spinner.
var spinnerFrames = []string{"|", "/", "-", "\\"}

// spinnerInterval is the time between spinner frame updates.
const spinnerInterval = 100 * time.Millisecond

const lineWidth = 80

// Spinner shows an animated status line on a terminal while a remote
// listing runs. Elsewhere it prints each status once, or nothing when quiet.
type Spinner struct {
	mu      sync.Mutex
	output  io.Writer
	message string
	done    chan struct{}
	wg      sync.WaitGroup
	stopped bool
	isTTY   bool
	quiet   bool
}

// NewSpinner creates a spinner writing to output, os.Stderr when nil.
// A quiet spinner writes nothing.
func NewSpinner(output io.Writer, quiet bool) *Spinner {
	if output == nil {
		output = os.Stderr
	}
	return &Spinner{
		output: output,
		done:   make(chan struct{}),
		isTTY:  IsTerminal(output),
		quiet:  quiet,
	}
}

// Start shows message and, on a terminal, starts animating it.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()

	if s.quiet {
		return
	}
	if !s.isTTY {
		fmt.Fprintf(s.output, "%s\n", message)
		return
	}

	s.wg.Add(1)
	go s.animate()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.StopWithMessage("")
}

// StopWithMessage halts the animation and prints a final message, if any.
// Calls after the first are ignored.
func (s *Spinner) StopWithMessage(message string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()

	if s.quiet {
		return
	}
	if s.isTTY {
		fmt.Fprintf(s.output, "\r%s\r", strings.Repeat(" ", lineWidth))
	}
	if message != "" {
		fmt.Fprintf(s.output, "%s\n", message)
	}
}

func (s *Spinner) animate() {
	defer s.wg.Done()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()

			line := fmt.Sprintf("\r%s %s", spinnerFrames[frame%len(spinnerFrames)], msg)
			if len(line) < lineWidth {
				line += strings.Repeat(" ", lineWidth-len(line))
			}
			fmt.Fprint(s.output, line)
		}
	}
}
