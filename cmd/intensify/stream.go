package main

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/justyntemme/intensifier/internal/control"
	"github.com/justyntemme/intensifier/internal/render"
)

// StreamCmd processes interleaved little-endian float32 PCM from stdin.
type StreamCmd struct {
	Rate     float64 `short:"r" help:"Sample rate in Hz." default:"48000" placeholder:"HZ"`
	Channels int     `short:"c" help:"Channel count." default:"2" placeholder:"N"`
	Block    int     `help:"Block size in frames." default:"512" placeholder:"FRAMES"`
	Bypass   bool    `help:"Copy the input through unprocessed."`
	Watch    bool    `short:"w" help:"Reload the preset when the preset file changes."`

	PresetFlags
	ParamFlags
}

// Run processes stdin until it ends or the process is interrupted.
func (c *StreamCmd) Run(g *Globals) error {
	if c.Watch && c.PresetFile == "" {
		return errors.New("--watch needs --preset-file")
	}

	k, _, err := configure(g, c.PresetFlags, c.ParamFlags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Watch {
		w := control.NewWatcher(c.PresetFile, c.Preset, k, g.log)
		w.Overrides = c.ParamFlags.values()
		go func() {
			if err := w.Run(ctx); err != nil {
				g.log.Error("preset watcher: %v", err)
			}
		}()
	}

	out := bufio.NewWriter(os.Stdout)
	sum, err := render.Stream(ctx, k, bufio.NewReader(os.Stdin), out, c.Channels, c.Rate, render.Options{
		BlockSize: c.Block,
		Bypass:    c.Bypass,
		Logger:    g.log,
	})
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	g.log.Info("stream: %d frames, output peak %.1f dBFS", sum.Frames, sum.Output.PeakDB())
	return err
}
