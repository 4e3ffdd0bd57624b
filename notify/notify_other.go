//go:build !linux && !darwin

package notify

import "fmt"

type noopNotify struct{}

func New() Platform {
	return &noopNotify{}
}

func (n *noopNotify) Status() Permission  { return Denied }
func (n *noopNotify) Request() Permission { return Denied }

func (n *noopNotify) Notify(title, body string) error {
	return fmt.Errorf("notifications not supported on this platform")
}
