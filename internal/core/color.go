package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Colors used by the terminal renderer.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorBrightCyan
	ColorWhite
	ColorBrightWhite
	ColorRed
	ColorBrown
	ColorGray
)
