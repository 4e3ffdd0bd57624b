package session

// NextMode computes the mode that follows a completed session and the
// updated cycle counter. It is a pure function: the caller owns the
// counter and passes it in.
//
// The cycle counter only ever resets when a long break completes; a
// work completion increments it and carries it into the break either
// way, so a cycle interrupted short of the long break keeps its credit.
func NextMode(completed Mode, cycleWorkSessions int, settings Settings) (Mode, int) {
	switch completed {
	case Work:
		cycleWorkSessions++
		if settings.AutoLongBreak && cycleWorkSessions >= settings.SessionsBeforeLongBreak {
			return LongBreak, cycleWorkSessions
		}
		return ShortBreak, cycleWorkSessions
	case LongBreak:
		return Work, 0
	default: // ShortBreak
		return Work, cycleWorkSessions
	}
}
