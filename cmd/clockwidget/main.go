package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/drake/clockwidget/config"
	"github.com/drake/clockwidget/debug"
	"github.com/drake/clockwidget/host"
	"github.com/drake/clockwidget/ui"
	"github.com/drake/clockwidget/ui/tui"
	"github.com/drake/clockwidget/widget"
)

func main() {
	// init.lua, .env and environment first; flags override them
	cfg, err := config.Load(config.Dir(), ".env")
	if err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}

	logger := log.New(io.Discard, "", 0)
	if config.DebugEnabled() {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	desc := widget.DefaultDescriptor()
	family := cfg.WidgetFamily()

	// A city means the user picked a configuration
	var provider widget.Provider = widget.NewStaticProvider(nil)
	if cfg.City != "" {
		provider = widget.NewConfigurableProvider(nil)
	}

	var display ui.Display
	if cfg.Simple {
		display = ui.NewConsoleUI()
	} else {
		display = tui.NewBubbleTeaUI(desc, family, cfg.City)
	}

	h, err := host.New(host.Options{
		Provider:   provider,
		Descriptor: desc,
		Family:     family,
		Config:     cfg.WidgetConfiguration(),
		Logger:     logger,
	}, display)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Preview {
		fmt.Println(h.Preview(ctx))
		return
	}

	debug.NewMonitor(h, logger, config.DebugEnabled()).Start(ctx)

	go func() {
		if err := h.Run(ctx); err != nil {
			logger.Printf("[ERROR] host: %v", err)
		}
	}()

	// Signal -> UI shutdown
	go func() {
		select {
		case <-ctx.Done():
			display.Quit()
		case <-display.Done():
		}
	}()

	// Block on UI
	if err := display.Run(); err != nil {
		fmt.Println("UI error:", err)
		os.Exit(1)
	}
}
