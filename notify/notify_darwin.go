//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// osascriptNotify posts through the scripting bridge, which shows under
// the terminal's notification permission.
type osascriptNotify struct{}

func New() Platform {
	return &osascriptNotify{}
}

func (n *osascriptNotify) Status() Permission {
	return Granted
}

func (n *osascriptNotify) Request() Permission {
	return Granted
}

func (n *osascriptNotify) Notify(title, body string) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript notification: %w", err)
	}
	return nil
}
