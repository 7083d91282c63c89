// Package viz provides the live terminal view of a growing curve field.
//
// The view is a Bubble Tea program that doubles as the control panel:
//
//   - [Canvas]: Braille-based pixel canvas with per-cell stroke colors
//   - [Control]: adjustable simulation parameters
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space     - Freeze/resume growth
//	R         - Reset the curve field
//	Tab/S-Tab - Select parameter
//	Up/K      - Increase parameter
//	Down/J    - Decrease parameter
//	C         - Toggle dynamic color
//	T         - Cycle color themes
//	?         - Show help overlay
//
// Resizing the terminal resizes the canvas; existing curves keep their
// coordinates.
package viz
