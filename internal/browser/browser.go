// Package browser hands apply links and email drafts to the desktop.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// ErrScheme is returned for links the launcher refuses to open.
var ErrScheme = errors.New("unsupported link scheme")

// Launcher opens links with the platform's default handler.
type Launcher struct {
	GOOS string
	// Start runs the launch command without waiting for it.
	Start func(name string, args ...string) error
}

// System launches through the real OS handler.
var System = Launcher{
	GOOS: runtime.GOOS,
	Start: func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	},
}

// Open validates rawURL and opens it. Only http, https and mailto links are
// allowed.
func (l Launcher) Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	name, args := l.command(rawURL)
	if err := l.Start(name, args...); err != nil {
		return fmt.Errorf("launching %s: %w", name, err)
	}
	return nil
}

func (l Launcher) command(rawURL string) (string, []string) {
	switch l.GOOS {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}

// Validate reports whether rawURL is a link Open accepts.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("invalid URL %q: missing host", rawURL)
		}
		return nil
	case "mailto":
		return nil
	}
	return fmt.Errorf("%w %q (only http, https and mailto allowed)", ErrScheme, u.Scheme)
}

// Open opens rawURL with the system launcher.
func Open(rawURL string) error {
	return System.Open(rawURL)
}
