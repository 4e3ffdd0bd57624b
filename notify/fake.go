package notify

import "sync"

// FakePlatform scripts the permission flow for tests.
type FakePlatform struct {
	mu        sync.Mutex
	status    Permission
	onRequest Permission
	requests  int
	notified  [][2]string
}

// NewFake starts in the given permission state; a Request answers with
// onRequest.
func NewFake(status, onRequest Permission) *FakePlatform {
	return &FakePlatform{status: status, onRequest: onRequest}
}

func (f *FakePlatform) Status() Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *FakePlatform) Request() Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	f.status = f.onRequest
	return f.status
}

func (f *FakePlatform) Notify(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, [2]string{title, body})
	return nil
}

// Requests returns how many permission prompts were triggered.
func (f *FakePlatform) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

// Notified returns the system notifications raised so far.
func (f *FakePlatform) Notified() [][2]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][2]string, len(f.notified))
	copy(out, f.notified)
	return out
}
