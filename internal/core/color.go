package core

// Color is a foreground color for a screen cell, stored as a "#rrggbb" hex
// string so it can be handed straight to lipgloss. The empty Color means the
// terminal default.
type Color string

// Predefined colors for field elements.
const (
	ColorDefault Color = ""
	ColorWhite   Color = "#ffffff"
	ColorRed     Color = "#ff0000"
	ColorYellow  Color = "#ffff00"
	ColorBlue    Color = "#0000ff"
	ColorOrange  Color = "#ffc800"
	ColorGray    Color = "#404040"
	ColorGreen   Color = "#00ff00"
	ColorNavy    Color = "#00008b"
)
