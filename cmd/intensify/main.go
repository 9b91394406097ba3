package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/justyntemme/intensifier/internal/cli"
	"github.com/justyntemme/intensifier/pkg/framework/debug"
	"github.com/justyntemme/intensifier/pkg/intensifier"
	"github.com/justyntemme/intensifier/pkg/preset"
)

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel string `help:"Log level (debug, info, warn, error, off)." default:"warn" placeholder:"LEVEL"`
	LogFile  string `help:"Write the log to a file instead of stderr." type:"path" placeholder:"FILE"`

	log *debug.Logger
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Render  RenderCmd  `cmd:"" help:"Process a WAV file."`
	Stream  StreamCmd  `cmd:"" help:"Process raw float32 PCM from stdin to stdout."`
	Params  ParamsCmd  `cmd:"" help:"List the processor parameters."`
	Presets PresetsCmd `cmd:"" help:"List presets or save a new one."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// setup configures the logger named by the global flags.
func (g *Globals) setup() error {
	level, err := debug.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	g.log = debug.Default()
	if g.LogFile != "" {
		l, err := debug.NewFileLogger(g.LogFile, "", debug.DefaultFlags)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		g.log = l
	}
	g.log.SetLevel(level)
	return nil
}

func (g *Globals) close() {
	if g.LogFile != "" && g.log != nil {
		g.log.Close()
	}
}

func main() {
	var c CLI
	ctx := kong.Parse(&c,
		kong.Name("intensify"),
		kong.Description("Transient and sustain shaper"),
		kong.UsageOnError(),
		kong.Vars{"preset": preset.DefaultName},
		kong.Help(cli.StyledHelpPrinter(intensifier.PluginInfo.Name, "Transient and sustain shaper")),
	)

	if err := c.Globals.setup(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	err := ctx.Run(&c.Globals)
	c.Globals.close()
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
