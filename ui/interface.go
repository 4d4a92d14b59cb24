package ui

import "github.com/drake/clockwidget/render"

// Display defines the contract for the terminal display layer.
type Display interface {
	Show(v render.View)
	Run() error
	Quit()
	Done() <-chan struct{}
}
