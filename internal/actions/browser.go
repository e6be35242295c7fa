package actions

import (
	"errors"
	"os/exec"
	"runtime"
)

// OpenBrowser launches the system browser for open_stripe_dashboard. The
// process is started and left alone; the dashboard is an external surface.
func OpenBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	default:
		return errors.New("unsupported platform for opening a browser")
	}
}
