// Package color provides the terminal styles hadesctl uses for status lines,
// preflight results and the test summary.
//
// Styles are built with lipgloss, which detects the terminal's color profile
// (TrueColor, 256, 16 or none) from the environment and honors NO_COLOR. When
// output is not a terminal the styles render plain text, so piped output and
// test assertions see the unstyled strings.
//
// # Usage Example
//
//	color.Initialize(true)
//	fmt.Println(color.Success.Render("✓ db is healthy"))
//	fmt.Println(color.Warn.Render("! health check timed out"))
package color
