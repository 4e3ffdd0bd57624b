package engine

import (
	"tomo/chime"
	"tomo/log"
	"tomo/notify"
	"tomo/session"
)

// Notifier surfaces session completions: an in-app toast always, a
// platform notification when permission allows, and a completion chime
// when the setting is on.
type Notifier struct {
	platform notify.Platform
	chime    *chime.Chime
	sink     EventSink

	deniedLogged bool
}

func NewNotifier(platform notify.Platform, ch *chime.Chime, sink EventSink) *Notifier {
	return &Notifier{platform: platform, chime: ch, sink: sink}
}

func completionMessage(completed session.Mode) (title, body string) {
	if completed == session.Work {
		return "Work session complete", "Time to take a break."
	}
	return "Break finished", "Ready to focus again?"
}

// SessionCompleted raises the reminder for a finished session. The
// toast is the always-available channel; the platform notification is
// gated on permission, requesting it once if still undetermined. A
// denial degrades to toast-only with a single log line.
func (n *Notifier) SessionCompleted(completed session.Mode, settings session.Settings) {
	if settings.CompletionSound {
		if completed == session.Work {
			n.chime.PlayWorkDone()
		} else {
			n.chime.PlayBreakDone()
		}
	}

	if !settings.EnableSessionReminder {
		return
	}

	title, body := completionMessage(completed)
	n.sink.Toast(title, body)
	n.notifyPlatform(title, body)
}

// CountdownDone raises the reminder for a finished quick countdown.
func (n *Notifier) CountdownDone(settings session.Settings) {
	if settings.CompletionSound {
		n.chime.PlayWorkDone()
	}
	if !settings.EnableSessionReminder {
		return
	}
	title, body := "Countdown finished", "Time is up."
	n.sink.Toast(title, body)
	n.notifyPlatform(title, body)
}

func (n *Notifier) notifyPlatform(title, body string) {
	status := n.platform.Status()
	if status == notify.Undetermined {
		status = n.platform.Request()
	}
	if status != notify.Granted {
		if !n.deniedLogged {
			log.Warn("notification permission denied, reminders stay in-app")
			n.deniedLogged = true
		}
		return
	}
	if err := n.platform.Notify(title, body); err != nil {
		log.Warnf("platform notification failed: %v", err)
	}
}
