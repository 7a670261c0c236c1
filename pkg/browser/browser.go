// Package browser opens post permalinks in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher starts the platform command that opens a URL.
type Launcher func(name string, args ...string) error

// Opener validates URLs before handing them to a Launcher.
type Opener struct {
	goos   string
	launch Launcher
}

// NewOpener returns an Opener for the given platform. A nil launch starts
// the command without waiting for it.
func NewOpener(goos string, launch Launcher) *Opener {
	if launch == nil {
		launch = startCommand
	}
	return &Opener{goos: goos, launch: launch}
}

// Open opens the specified URL in the default browser of the running platform.
func Open(urlString string) error {
	return NewOpener(runtime.GOOS, nil).Open(urlString)
}

// Open validates urlString and launches the platform opener.
// Only http and https URLs are accepted so a feed cannot smuggle in a command.
func (o *Opener) Open(urlString string) error {
	parsedURL, err := url.Parse(urlString)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https allowed)", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("invalid URL: missing host in %q", urlString)
	}

	switch o.goos {
	case "linux", "freebsd", "openbsd":
		return o.launch("xdg-open", urlString)
	case "darwin":
		return o.launch("open", urlString)
	case "windows":
		return o.launch("rundll32", "url.dll,FileProtocolHandler", urlString)
	default:
		return fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // #nosec G204 -- URL validated by Opener.Open
}
