// Package ui provides the Bubbletea progress view shown while a file renders.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/intensifier/internal/render"
)

// ProgressMsg carries a render progress update.
type ProgressMsg render.Progress

// DoneMsg ends the view. Err is nil on success.
type DoneMsg struct {
	Summary render.Summary
	Err     error
}

// Model is the Bubbletea model for the render view.
type Model struct {
	Input  string
	Output string
	Preset string

	Progress render.Progress
	PeakDB   float32 // highest block peak seen, dBFS

	StartTime time.Time
	Elapsed   time.Duration

	Done    bool
	Aborted bool
	Summary render.Summary
	Err     error

	Width int
}

// NewModel creates the view for one render.
func NewModel(input, output, preset string) Model {
	return Model{
		Input:     input,
		Output:    output,
		Preset:    preset,
		PeakDB:    meterFloor,
		StartTime: time.Now(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Aborted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case ProgressMsg:
		m.Progress = render.Progress(msg)
		m.Elapsed = time.Since(m.StartTime)
		if db := levelDB(msg.OutputPeak); db > m.PeakDB {
			m.PeakDB = db
		}

	case DoneMsg:
		m.Done = true
		m.Summary = msg.Summary
		m.Err = msg.Err
		m.Elapsed = time.Since(m.StartTime)
		return m, tea.Quit
	}

	return m, nil
}

// Fraction returns render progress in [0, 1].
func (m Model) Fraction() float64 {
	if m.Progress.Total <= 0 {
		return 0
	}
	f := float64(m.Progress.Frames) / float64(m.Progress.Total)
	if f > 1 {
		return 1
	}
	return f
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderDone(m)
	}
	return renderProgressView(m)
}
