package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/drake/clockwidget/render"
)

// Compile-time check that ConsoleUI implements Display
var _ Display = (*ConsoleUI)(nil)

// ConsoleUI prints views to stdout, redrawing over the previous one.
type ConsoleUI struct {
	in  io.Reader
	out io.Writer

	mu         sync.Mutex
	lastHeight int // rows printed by the previous Show

	done     chan struct{}
	doneOnce sync.Once
}

// NewConsoleUI initializes a stdin/stdout based display.
func NewConsoleUI() *ConsoleUI {
	return newConsoleUI(os.Stdin, os.Stdout)
}

func newConsoleUI(in io.Reader, out io.Writer) *ConsoleUI {
	return &ConsoleUI{
		in:   in,
		out:  out,
		done: make(chan struct{}),
	}
}

// Show replaces the previously printed view with v.
func (c *ConsoleUI) Show(v render.View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastHeight > 0 {
		// Cursor up, clear to end of screen
		fmt.Fprintf(c.out, "\033[%dA\033[J", c.lastHeight)
	}
	s := v.String()
	fmt.Fprintln(c.out, s)
	c.lastHeight = strings.Count(s, "\n") + 1
}

// Run blocks until stdin closes, "q" is entered, or Quit is called.
func (c *ConsoleUI) Run() error {
	scanner := bufio.NewScanner(c.in)
	scanDone := make(chan error, 1)

	go func() {
		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) == "q" {
				break
			}
		}
		scanDone <- scanner.Err()
	}()

	select {
	case <-c.done:
		return nil
	case err := <-scanDone:
		c.Quit()
		return err
	}
}

// Done returns a channel that closes when the UI is done.
func (c *ConsoleUI) Done() <-chan struct{} {
	return c.done
}

// Quit requests the console UI to exit.
func (c *ConsoleUI) Quit() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}
