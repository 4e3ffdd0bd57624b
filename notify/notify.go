// Package notify raises system-level notifications behind an explicit
// permission gate. The in-app toast channel lives in the engine; this
// package only covers the OS side.
package notify

// Permission is the host platform's notification permission state.
type Permission int

const (
	Undetermined Permission = iota
	Granted
	Denied
)

func (p Permission) String() string {
	switch p {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	}
	return "undetermined"
}

// Platform is the permission-gated notification surface. Request blocks
// until the user answers (or the platform answers for them).
type Platform interface {
	Status() Permission
	Request() Permission
	Notify(title, body string) error
}
