//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

// sendNotify shells out to notify-send. Linux has no permission prompt;
// having the binary on PATH is the grant.
type sendNotify struct{}

func New() Platform {
	return &sendNotify{}
}

func (n *sendNotify) Status() Permission {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return Denied
	}
	return Granted
}

func (n *sendNotify) Request() Permission {
	return n.Status()
}

func (n *sendNotify) Notify(title, body string) error {
	if err := exec.Command("notify-send", title, body).Run(); err != nil {
		return fmt.Errorf("notify-send: %w", err)
	}
	return nil
}
