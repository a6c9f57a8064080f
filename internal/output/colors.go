package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for different elements in the report.
type ColorScheme struct {
	Heading      *color.Color
	Label        *color.Color
	Value        *color.Color
	Cost         *color.Color
	Saving       *color.Color
	Inconclusive *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Heading:      color.New(color.FgCyan, color.Bold),
		Label:        color.New(color.FgYellow),
		Value:        color.New(color.FgWhite),
		Cost:         color.New(color.FgRed, color.Bold),
		Saving:       color.New(color.FgGreen, color.Bold),
		Inconclusive: color.New(color.FgYellow, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled.
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	scheme.Heading.DisableColor()
	scheme.Label.DisableColor()
	scheme.Value.DisableColor()
	scheme.Cost.DisableColor()
	scheme.Saving.DisableColor()
	scheme.Inconclusive.DisableColor()

	return scheme
}

// ShouldColor reports whether stdout wants colored output.
func ShouldColor() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
