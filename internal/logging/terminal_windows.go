//go:build windows

package logging

// Windows console color support isn't auto-detected; callers that need
// forced color output can set it via Config/InitWithWriter directly.
func isTerminal(fd uintptr) bool {
	return false
}
