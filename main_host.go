//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"mathgraph/app"
	"mathgraph/hal"
	"mathgraph/internal/buildinfo"
	"mathgraph/internal/flagvals"
	"mathgraph/internal/session"
)

func main() {
	var (
		cfg         hal.HeadlessConfig
		size        = flagvals.Size{W: 800, H: 600}
		exprs       flagvals.Strings
		sessionPath string
		scale       int
		version     bool
	)
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Var(&size, "size", "Framebuffer size WxH.")
	flag.IntVar(&scale, "scale", 1, "Window scale factor.")
	flag.StringVar(&sessionPath, "session", "", "Session file to load and save with Ctrl+S.")
	flag.Var(&exprs, "expr", "Expression to plot (repeatable).")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	appCfg := app.Config{SessionPath: sessionPath, Expressions: exprs}
	if sessionPath != "" {
		s, err := session.Load(sessionPath)
		switch {
		case err == nil:
			appCfg.Session = s
		case errors.Is(err, os.ErrNotExist):
			// Created on the first save.
		default:
			fatalf("%v", err)
		}
	}
	newApp := func(h hal.HAL) func() error { return app.New(h, appCfg) }

	if cfg.Enabled {
		cfg.Width, cfg.Height = size.W, size.H
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil && !errors.Is(err, context.Canceled) {
			fatalf("%v", err)
		}
		return
	}

	if err := hal.RunWindow(hal.WindowConfig{
		Title:  "mathgraph " + buildinfo.Short(),
		Width:  size.W,
		Height: size.H,
		Scale:  scale,
	}, newApp); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "mathgraph: "+format+"\n", args...)
	os.Exit(1)
}
