package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// shareRunner executes a share command; swapped out in tests
var shareRunner = func(cmd *exec.Cmd) error {
	return cmd.Run()
}

// Share hands a titled text to a platform share target. It returns an error
// when no share route exists on this platform; callers should use
// ShareWithFallback instead, which downgrades to a clipboard copy.
func Share(title, text string) error {
	// Termux on Android exposes the system share sheet. Desktop platforms
	// have no text share target a CLI can reach, so they take the fallback.
	if runtime.GOOS == "linux" && isCommandAvailable("termux-share") {
		cmd := exec.Command("termux-share", "--title", title)
		cmd.Stdin = strings.NewReader(text)
		return shareRunner(cmd)
	}
	return fmt.Errorf("no share target available on %s", runtime.GOOS)
}

// ShareWithFallback tries the platform share target and, when sharing is
// unavailable or fails, copies the text instead. The returned message tells
// the user which of the two actually happened.
func ShareWithFallback(title, text string) (string, error) {
	if err := Share(title, text); err == nil {
		return "Shared!", nil
	}

	if _, err := CopyWithFallback(text); err != nil {
		return "", fmt.Errorf("share unavailable and copy fallback failed: %w", err)
	}
	return "Sharing unavailable, prompt copied to clipboard instead", nil
}
