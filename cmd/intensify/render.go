package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/justyntemme/intensifier/internal/audio"
	"github.com/justyntemme/intensifier/internal/cli"
	"github.com/justyntemme/intensifier/internal/render"
	"github.com/justyntemme/intensifier/internal/ui"
	"github.com/justyntemme/intensifier/pkg/framework/debug"
	"github.com/justyntemme/intensifier/pkg/intensifier"
)

// RenderCmd processes one WAV file.
type RenderCmd struct {
	Input  string `arg:"" name:"input" help:"Input WAV file." type:"existingfile"`
	Output string `arg:"" name:"output" help:"Output WAV file (16-bit)." type:"path"`

	PresetFlags
	ParamFlags

	Automate   []string `short:"a" help:"Parameter change as id=value@seconds[~rampMs]. Repeatable." placeholder:"EVENT"`
	Block      int      `help:"Block size in frames." default:"512" placeholder:"FRAMES"`
	Bypass     bool     `help:"Copy the input through unprocessed."`
	Compensate bool     `help:"Remove the processing latency from the output."`
	NoTUI      bool     `name:"no-tui" help:"Disable the progress view."`
	Profile    bool     `help:"Print block timing statistics."`
}

type renderResult struct {
	summary render.Summary
	err     error
}

// Run renders the file.
func (c *RenderCmd) Run(g *Globals) error {
	k, p, err := configure(g, c.PresetFlags, c.ParamFlags)
	if err != nil {
		return err
	}

	clip, err := audio.ReadWAV(c.Input)
	if err != nil {
		return err
	}
	g.log.Info("read %s: %d channel(s), %d frames @ %d Hz", c.Input, clip.NumChannels(), clip.Frames(), clip.SampleRate)

	sched, err := render.ScheduleAutomation(c.Automate, float64(clip.SampleRate))
	if err != nil {
		return err
	}

	prof := debug.NewRenderProfiler(float64(clip.SampleRate))
	opts := render.Options{
		BlockSize:  c.Block,
		Bypass:     c.Bypass,
		Compensate: c.Compensate,
		Schedule:   sched,
		Profiler:   prof,
		Logger:     g.log,
	}

	var res renderResult
	if c.NoTUI || !isatty.IsTerminal(os.Stdout.Fd()) {
		res = c.render(context.Background(), k, clip, opts)
	} else {
		res, err = c.renderWithProgress(k, clip, opts, p.Name)
		if err != nil {
			return err
		}
	}
	if res.err != nil {
		return res.err
	}

	printSummary(c.Output, res.summary)
	if c.Profile {
		fmt.Println()
		fmt.Print(prof.AudioReport())
	}
	return nil
}

// render processes the clip and writes the output file. Nothing is written
// when ctx is cancelled.
func (c *RenderCmd) render(ctx context.Context, k *intensifier.Kernel, clip *audio.Clip, opts render.Options) renderResult {
	out, sum, err := render.Clip(ctx, k, clip, opts)
	if err != nil {
		return renderResult{err: err}
	}
	if err := audio.WriteWAV(c.Output, out); err != nil {
		return renderResult{err: err}
	}
	return renderResult{summary: sum}
}

// renderWithProgress runs the render in the background while the progress
// view owns the terminal.
func (c *RenderCmd) renderWithProgress(k *intensifier.Kernel, clip *audio.Clip, opts render.Options, presetName string) (renderResult, error) {
	model := ui.NewModel(filepath.Base(c.Input), filepath.Base(c.Output), presetName)
	prog := tea.NewProgram(model)

	// About 20 updates per second of audio keeps the message rate low.
	step := max(clip.SampleRate/20, 1)
	next := 0
	opts.Progress = func(pr render.Progress) {
		if pr.Frames >= next || pr.Frames == pr.Total {
			next = pr.Frames + step
			prog.Send(ui.ProgressMsg(pr))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan renderResult, 1)
	go func() {
		res := c.render(ctx, k, clip, opts)
		done <- res
		prog.Send(ui.DoneMsg{Summary: res.summary, Err: res.err})
	}()

	final, err := prog.Run()
	if err != nil {
		cancel()
		<-done
		return renderResult{}, fmt.Errorf("UI error: %w", err)
	}
	if m, ok := final.(ui.Model); ok && m.Aborted {
		cancel()
		<-done
		return renderResult{}, errors.New("render aborted")
	}
	return <-done, nil
}

func printSummary(output string, s render.Summary) {
	fmt.Println(cli.TitleStyle.Render("Rendered " + output))
	fmt.Print(cli.KeyValues([][2]string{
		{"Sample rate", fmt.Sprintf("%d Hz", s.SampleRate)},
		{"Channels", fmt.Sprintf("%d", s.Channels)},
		{"Frames", fmt.Sprintf("%d", s.Frames)},
		{"Latency", fmt.Sprintf("%d samples", s.Latency)},
		{"Events", fmt.Sprintf("%d", s.Events)},
		{"Realtime", fmt.Sprintf("%.1fx (%.2f%% CPU)", s.RealtimeFactor, s.CPULoad)},
	}))
	fmt.Println()

	t := &cli.Table{Headers: []string{"", "Peak", "RMS", "Crest", "Non-finite"}}
	for _, row := range []struct {
		name string
		r    debug.AnalysisResult
	}{{"Input", s.Input}, {"Output", s.Output}} {
		t.AddRow(row.name,
			fmt.Sprintf("%.1f dBFS", row.r.PeakDB()),
			fmt.Sprintf("%.1f dBFS", row.r.RMSDB()),
			fmt.Sprintf("%.1f dB", row.r.CrestDB()),
			fmt.Sprintf("%d", row.r.NonFinite))
	}
	fmt.Print(t.String())
}
