package logx

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	reset  = "\x1b[0m"
	bold   = "\x1b[1m"
	gray   = "\x1b[90m"
	cyan   = "\x1b[36m"
	blue   = "\x1b[34m"
	yellow = "\x1b[33m"
	green  = "\x1b[32m"
	red    = "\x1b[31m"
)

var enableColor = true

func init() {
	// Disable color if NO_COLOR is set or stdout is not a terminal
	if os.Getenv("NO_COLOR") != "" {
		enableColor = false
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		enableColor = false
	}
}

// C returns a color-coded string (or plain string if color disabled)
func C(color, s string) string {
	if !enableColor {
		return s
	}
	return color + s + reset
}

// Cf returns a color-coded formatted string
func Cf(color, format string, args ...any) string {
	return C(color, fmt.Sprintf(format, args...))
}

// Channel returns a consistently-padded colored channel tag.
// Channels: "SIM " (simulation), "OPT " (noise search), "AGG " (statistics),
// "CFG " (configuration), "RES " (results). Pass 4-char names, trailing
// space included.
func Channel(ch string) string {
	color := map[string]string{
		"SIM ": cyan,
		"OPT ": blue,
		"AGG ": yellow,
		"CFG ": gray,
		"RES ": green,
	}[ch]

	label := fmt.Sprintf("[%-4s]", ch)
	return C(color, label)
}

// Success returns a green success message
func Success(s string) string {
	return C(green, s)
}

// Successf returns a formatted green success message
func Successf(format string, args ...any) string {
	return C(green, fmt.Sprintf(format, args...))
}

// Errorf returns a formatted red error message
func Errorf(format string, args ...any) string {
	return C(red, fmt.Sprintf(format, args...))
}

// Warnf returns a formatted yellow warning message
func Warnf(format string, args ...any) string {
	return C(yellow, fmt.Sprintf(format, args...))
}

// Infof returns a formatted cyan info message
func Infof(format string, args ...any) string {
	return C(cyan, fmt.Sprintf(format, args...))
}

// Highlight returns a bold highlighted message
func Highlight(s string) string {
	return C(bold, s)
}
