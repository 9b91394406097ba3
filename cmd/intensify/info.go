package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/justyntemme/intensifier/internal/cli"
	"github.com/justyntemme/intensifier/pkg/intensifier"
	"github.com/justyntemme/intensifier/pkg/preset"
)

// ParamsCmd prints the parameter table.
type ParamsCmd struct{}

// Run prints every parameter with its range and default.
func (c *ParamsCmd) Run(g *Globals) error {
	fmt.Print(paramTable().String())
	return nil
}

func paramTable() *cli.Table {
	reg := intensifier.NewRegistry()
	t := &cli.Table{Headers: []string{"Identifier", "Name", "Min", "Max", "Default"}}
	for _, p := range reg.All() {
		t.AddRow(p.Identifier, p.Name,
			p.FormatValue(p.Min), p.FormatValue(p.Max), p.FormatValue(p.DefaultValue))
	}
	return t
}

// PresetsCmd lists presets, shows one, or saves the current settings.
type PresetsCmd struct {
	PresetFile string `help:"YAML file with user presets." type:"path" placeholder:"FILE"`
	Show       string `help:"Print the values of one preset." placeholder:"NAME"`
	Save       string `help:"Save the defaults plus overrides under this name to --preset-file." placeholder:"NAME"`
	From       string `help:"Preset the saved one starts from." default:"${preset}" placeholder:"NAME"`

	ParamFlags
}

// Run executes the selected presets action.
func (c *PresetsCmd) Run(g *Globals) error {
	file, err := c.loadFile()
	if err != nil {
		return err
	}

	switch {
	case c.Save != "":
		return c.save(g, file)
	case c.Show != "":
		p, err := preset.Lookup(c.Show, file)
		if err != nil {
			return err
		}
		return printPreset(p)
	}

	for _, name := range preset.Names(file) {
		p, _ := preset.Lookup(name, file)
		line := cli.ValueStyle.Render(name)
		if p.Description != "" {
			line += "  " + cli.KeyStyle.Render(p.Description)
		}
		fmt.Println(line)
	}
	return nil
}

// loadFile reads the preset file. A missing file is empty when saving.
func (c *PresetsCmd) loadFile() (*preset.File, error) {
	if c.PresetFile == "" {
		return nil, nil
	}
	f, err := preset.Load(c.PresetFile)
	if err != nil {
		if c.Save != "" && errors.Is(err, fs.ErrNotExist) {
			return &preset.File{}, nil
		}
		return nil, err
	}
	return f, nil
}

func (c *PresetsCmd) save(g *Globals, file *preset.File) error {
	if c.PresetFile == "" {
		return errors.New("--save needs --preset-file")
	}
	base, err := preset.Lookup(c.From, file)
	if err != nil {
		return err
	}

	g.log.Debug("saving %q from %q", c.Save, base.Name)
	v, err := base.With(c.ParamFlags.values()).Values()
	if err != nil {
		return err
	}
	p := preset.FromValues(c.Save, v)
	file.Put(p)
	if err := preset.Save(c.PresetFile, file); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", cli.KeyStyle.Render("Saved preset"), cli.ValueStyle.Render(c.Save))
	return printPreset(p)
}

func printPreset(p preset.Preset) error {
	v, err := p.Values()
	if err != nil {
		return err
	}
	reg := intensifier.NewRegistry()
	pairs := make([][2]string, 0, len(v))
	for _, s := range intensifier.Specs() {
		value := fmt.Sprintf("%g", v[s.Address])
		if prm := reg.Get(s.Address); prm != nil {
			value = prm.FormatValue(float64(v[s.Address]))
		}
		pairs = append(pairs, [2]string{s.Name, value})
	}
	fmt.Println(cli.TitleStyle.Render(p.Name))
	if p.Description != "" {
		fmt.Println(cli.KeyStyle.Render(strings.TrimSpace(p.Description)))
	}
	fmt.Print(cli.KeyValues(pairs))
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run prints the processor name and version.
func (c *VersionCmd) Run(g *Globals) error {
	cli.PrintVersion(os.Stdout, intensifier.PluginInfo.Name, intensifier.PluginInfo.Version)
	return nil
}
