//go:build !linux && !darwin

package media

import "fmt"

type unavailableBridge struct{}

func NewBridge() Bridge {
	return &unavailableBridge{}
}

func (b *unavailableBridge) Get() (Snapshot, error) {
	return Snapshot{}, nil
}

func (b *unavailableBridge) Send(Command) error {
	return fmt.Errorf("media control not supported on this platform")
}
