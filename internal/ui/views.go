package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/intensifier/pkg/dsp/gain"
)

const (
	barWidth   = 40
	meterWidth = 24
	meterFloor = -60.0
	meterRange = 30.0 // attack/release meters span ±meterRange dB
)

var (
	accentColor = lipgloss.Color("#D4602A")
	mutedColor  = lipgloss.Color("#888888")
	okColor     = lipgloss.Color("#00AA00")
	errColor    = lipgloss.Color("#A40000")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(64)
)

func levelDB(linear float32) float32 {
	db := gain.LinearToDb32(linear)
	if db < meterFloor {
		return meterFloor
	}
	return db
}

// renderProgressView renders the main processing view
func renderProgressView(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Intensifier"))
	b.WriteString("\n")
	subtitle := fmt.Sprintf("%s → %s", filepath.Base(m.Input), filepath.Base(m.Output))
	if m.Preset != "" {
		subtitle += fmt.Sprintf(" (preset %s)", m.Preset)
	}
	b.WriteString(mutedStyle.Render(subtitle))
	b.WriteString("\n\n")

	var content strings.Builder
	content.WriteString(renderProgressBar(m.Fraction(), barWidth))
	content.WriteString("\n\n")

	elapsed := m.Elapsed.Seconds()
	var remaining float64
	if f := m.Fraction(); f > 0 {
		remaining = elapsed/f - elapsed
	}
	fmt.Fprintf(&content, "Elapsed: %.1fs | Remaining: ~%.1fs\n\n", elapsed, remaining)

	d := m.Progress.Diagnostics
	content.WriteString(renderMeter("Attack ", d.AttackDB))
	content.WriteString("\n")
	content.WriteString(renderMeter("Release", d.ReleaseDB))
	content.WriteString("\n")
	fmt.Fprintf(&content, "Output peak: %.1f dBFS", m.PeakDB)

	b.WriteString(boxStyle.Render(content.String()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("q to abort"))
	return b.String()
}

func renderDone(m Model) string {
	if m.Err != nil {
		icon := lipgloss.NewStyle().Foreground(errColor).Render("✗")
		return fmt.Sprintf(" %s %s\n   Error: %v\n", icon, filepath.Base(m.Input), m.Err)
	}
	icon := lipgloss.NewStyle().Foreground(okColor).Render("✓")
	return fmt.Sprintf(" %s %s → %s (%.1fs)\n", icon, filepath.Base(m.Input), filepath.Base(m.Output), m.Elapsed.Seconds())
}

// renderProgressBar renders a progress bar
func renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d%%", bar, int(progress*100))
}

// renderMeter draws a centre-zero gain meter.
func renderMeter(label string, db float32) string {
	half := meterWidth / 2
	n := int(float64(db) / meterRange * float64(half))
	if n > half {
		n = half
	}
	if n < -half {
		n = -half
	}

	left := strings.Repeat(" ", half)
	right := strings.Repeat(" ", half)
	if n < 0 {
		left = strings.Repeat(" ", half+n) + strings.Repeat("▓", -n)
	} else if n > 0 {
		right = strings.Repeat("▓", n) + strings.Repeat(" ", half-n)
	}
	return fmt.Sprintf("%s %s|%s %+6.1f dB", label, left, right, db)
}
