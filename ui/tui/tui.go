package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/clockwidget/render"
	"github.com/drake/clockwidget/ui"
	"github.com/drake/clockwidget/widget"
)

// Compile-time check that BubbleTeaUI implements ui.Display
var _ ui.Display = (*BubbleTeaUI)(nil)

// BubbleTeaUI implements ui.Display using Bubble Tea.
type BubbleTeaUI struct {
	program *tea.Program

	// Message queue - buffered channel drained by a single goroutine.
	// This decouples callers from tea.Program.Send() which can block.
	msgQueue chan tea.Msg

	mu       sync.Mutex
	started  bool // Run has handed control to the program
	done     chan struct{}
	doneOnce sync.Once
}

// NewBubbleTeaUI creates a Bubble Tea display for one widget instance.
func NewBubbleTeaUI(desc widget.Descriptor, family widget.Family, city string) *BubbleTeaUI {
	return &BubbleTeaUI{
		program: tea.NewProgram(
			NewModel(desc, family, city),
			tea.WithAltScreen(),
		),
		msgQueue: make(chan tea.Msg, 64),
		done:     make(chan struct{}),
	}
}

// send queues a message for delivery to the Bubble Tea program.
func (b *BubbleTeaUI) send(msg tea.Msg) {
	select {
	case <-b.done:
	case b.msgQueue <- msg:
	}
}

// Show queues v for display.
func (b *BubbleTeaUI) Show(v render.View) {
	b.send(ViewMsg(v))
}

// Run starts the TUI and blocks until exit.
// It returns at once if Quit was already called.
func (b *BubbleTeaUI) Run() error {
	b.mu.Lock()
	select {
	case <-b.done:
		b.mu.Unlock()
		return nil
	default:
	}
	b.started = true
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-b.done:
				return
			case msg := <-b.msgQueue:
				b.program.Send(msg)
			}
		}
	}()

	_, err := b.program.Run()

	b.closeDone()
	return err
}

func (b *BubbleTeaUI) closeDone() {
	b.doneOnce.Do(func() {
		close(b.done)
	})
}

// Done returns a channel that closes when the UI exits.
func (b *BubbleTeaUI) Done() <-chan struct{} {
	return b.done
}

// Quit signals the TUI to exit.
func (b *BubbleTeaUI) Quit() {
	b.mu.Lock()
	started := b.started
	b.closeDone()
	b.mu.Unlock()

	// Before Run, Send would block with no event loop to receive it.
	if started {
		b.program.Quit()
	}
}
