package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tomo/config"
	"tomo/engine"
	"tomo/media"
	"tomo/noise"
	"tomo/session"
)

// TUI message types
type SessionMsg struct{ State session.State }
type AudioMsg struct{ State engine.AudioState }
type MediaMsg struct{ Snapshot media.Snapshot }
type CountdownMsg struct{ Countdown session.Countdown }
type StatsMsg struct{ Stats config.Stats }
type ToastMsg struct{ Title, Body string }
type tickMsg time.Time

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// tuiSink feeds engine events into the Bubble Tea program.
type tuiSink struct{}

func (tuiSink) SessionChanged(st session.State)       { tuiSend(SessionMsg{State: st}) }
func (tuiSink) AudioChanged(st engine.AudioState)     { tuiSend(AudioMsg{State: st}) }
func (tuiSink) MediaChanged(snap media.Snapshot)      { tuiSend(MediaMsg{Snapshot: snap}) }
func (tuiSink) CountdownChanged(cd session.Countdown) { tuiSend(CountdownMsg{Countdown: cd}) }
func (tuiSink) StatsChanged(st config.Stats)          { tuiSend(StatsMsg{Stats: st}) }
func (tuiSink) Toast(title, body string)              { tuiSend(ToastMsg{Title: title, Body: body}) }

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	timerWork    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	timerBreak   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	barFill      = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	barEmpty     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	toastStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	helpKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
)

const toastFrames = 80 // ~5s at the 60ms frame tick

type tuiModel struct {
	eng *engine.Engine

	frame         int
	width, height int

	sess      session.State
	audio     engine.AudioState
	snapshot  media.Snapshot
	countdown session.Countdown
	stats     config.Stats

	toastTitle string
	toastBody  string
	toastTTL   int

	copiedTTL int
}

func NewTUIProgram(eng *engine.Engine) *tea.Program {
	m := tuiModel{
		eng:       eng,
		sess:      eng.SessionState(),
		audio:     eng.AudioSnapshot(),
		countdown: eng.Countdown(),
		stats:     eng.Stats(),
	}
	return tea.NewProgram(m, tea.WithAltScreen())
}

func tuiTick() tea.Cmd {
	return tea.Tick(60*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.frame++
		if m.toastTTL > 0 {
			m.toastTTL--
		}
		if m.copiedTTL > 0 {
			m.copiedTTL--
		}
		return m, tuiTick()

	case SessionMsg:
		m.sess = msg.State

	case AudioMsg:
		m.audio = msg.State

	case MediaMsg:
		m.snapshot = msg.Snapshot

	case CountdownMsg:
		m.countdown = msg.Countdown

	case StatsMsg:
		m.stats = msg.Stats

	case ToastMsg:
		m.toastTitle = msg.Title
		m.toastBody = msg.Body
		m.toastTTL = toastFrames
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case " ":
		m.eng.ToggleSession()
	case "r":
		m.eng.ResetSession()
	case "b":
		m.eng.StartBreak()
	case "s":
		m.eng.SkipBreak()
	case "0":
		m.eng.SetFocusSound(noise.Off)
	case "1":
		m.eng.SetFocusSound(noise.White)
	case "2":
		m.eng.SetFocusSound(noise.Rain)
	case "3":
		m.eng.SetFocusSound(noise.Brown)
	case "p":
		if m.audio.ActiveSource == engine.SourceLocal {
			m.eng.PauseLocal()
		} else {
			m.eng.PlayLocal()
		}
	case "x":
		m.eng.StopLocal()
	case "m":
		m.eng.SendSystemMediaCommand(media.CmdPlayPause)
	case "n":
		m.eng.SendSystemMediaCommand(media.CmdNext)
	case "N":
		m.eng.SendSystemMediaCommand(media.CmdPrevious)
	case "+", "=":
		m.eng.SetVolume(m.audio.Volume + 0.1)
	case "-":
		m.eng.SetVolume(m.audio.Volume - 0.1)
	case "d":
		if m.countdown.Running {
			m.eng.PauseCountdown()
		} else {
			m.eng.StartCountdown()
		}
	case "D":
		m.eng.ResetCountdown()
	case "c":
		if err := clipboard.WriteAll(statsSummary(m.stats)); err == nil {
			m.copiedTTL = toastFrames / 2
		}
	}
	return m, nil
}

func statsSummary(st config.Stats) string {
	return fmt.Sprintf("%s: %d pomodoros, %d short breaks, %d long breaks, %dm focused",
		st.Date, st.Pomodoros, st.ShortBreaks, st.LongBreaks, st.FocusSeconds/60)
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func modeTitle(mode session.Mode) string {
	switch mode {
	case session.ShortBreak:
		return "Short break"
	case session.LongBreak:
		return "Long break"
	}
	return "Focus"
}

func renderBar(remaining, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	done := (total - remaining) * width / total
	if done > width {
		done = width
	}
	return barFill.Render(strings.Repeat("█", done)) +
		barEmpty.Render(strings.Repeat("░", width-done))
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("tomo") + dimStyle.Render("  "+version) + "\n\n")

	// Timer panel
	timer := timerWork
	if m.sess.Mode.IsBreak() {
		timer = timerBreak
	}
	status := "paused"
	if m.sess.Running {
		status = "running"
	}
	b.WriteString(labelStyle.Render(modeTitle(m.sess.Mode)) +
		dimStyle.Render("  ("+status+")") + "\n")
	b.WriteString(timer.Render(formatClock(m.sess.RemainingSeconds)) + "\n")
	b.WriteString(renderBar(m.sess.RemainingSeconds, m.sess.TotalSeconds, 32) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("cycle %d/%d · %d done today",
		m.sess.CycleWorkSessions, m.eng.Settings().SessionsBeforeLongBreak,
		m.stats.Pomodoros)) + "\n\n")

	// Audio panel
	b.WriteString(labelStyle.Render("Audio") + "\n")
	sound := m.audio.FocusSound.String()
	if m.audio.ActiveSource == engine.SourceNoise {
		sound = activeStyle.Render(sound + " ♪")
	} else {
		sound = dimStyle.Render(sound)
	}
	b.WriteString(dimStyle.Render("  focus sound  ") + sound + "\n")

	track := "none loaded"
	if m.audio.TrackLoaded {
		track = m.audio.TrackTitle
		if m.audio.TrackArtist != "" {
			track += " – " + m.audio.TrackArtist
		}
	}
	if m.audio.ActiveSource == engine.SourceLocal {
		b.WriteString(dimStyle.Render("  local file   ") + activeStyle.Render(track+" ♪") + "\n")
	} else {
		b.WriteString(dimStyle.Render("  local file   "+track) + "\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  volume       %3.0f%%", m.audio.Volume*100)) + "\n")
	if m.audio.SuppressedForBreak.Any() {
		b.WriteString(dimStyle.Render("  paused for break, resumes with work") + "\n")
	}
	b.WriteString("\n")

	// System media panel
	b.WriteString(labelStyle.Render("System media") + "\n")
	if m.snapshot.Available {
		line := m.snapshot.Title
		if m.snapshot.Artist != "" {
			line += " – " + m.snapshot.Artist
		}
		if m.snapshot.Source != "" {
			line += "  [" + m.snapshot.Source + "]"
		}
		if m.snapshot.IsPlaying {
			b.WriteString("  " + activeStyle.Render(line+" ♪") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  "+line) + "\n")
		}
	} else {
		b.WriteString(dimStyle.Render("  no external player") + "\n")
	}
	b.WriteString("\n")

	// Countdown
	if m.countdown.Running || m.countdown.RemainingSeconds != m.countdown.DurationMinutes*60 {
		b.WriteString(labelStyle.Render("Countdown  ") +
			formatClock(m.countdown.RemainingSeconds) + "\n\n")
	}

	// Toast
	if m.toastTTL > 0 {
		b.WriteString(toastStyle.Render(m.toastTitle) + dimStyle.Render("  "+m.toastBody) + "\n\n")
	}
	if m.copiedTTL > 0 {
		b.WriteString(activeStyle.Render("summary copied") + "\n\n")
	}

	help := [][2]string{
		{"space", "start/pause"}, {"r", "reset"}, {"b", "break"}, {"s", "skip"},
		{"1-3/0", "noise"}, {"p", "play file"}, {"m/n/N", "media"},
		{"+/-", "volume"}, {"c", "copy stats"}, {"q", "quit"},
	}
	var parts []string
	for _, h := range help {
		parts = append(parts, helpKeyStyle.Render(h[0])+helpStyle.Render(" "+h[1]))
	}
	b.WriteString(helpStyle.Render(strings.Join(parts, helpStyle.Render("  "))))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
