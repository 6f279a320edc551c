package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"pokerclock/internal/domain"
	"pokerclock/internal/logging"
	"pokerclock/internal/usecase"
)

// Controller is the session surface the terminal clock drives.
type Controller interface {
	Snapshot() usecase.Snapshot
	Dispatch(cmd usecase.Command) error
	Subscribe(buffer int) <-chan usecase.Event
}

// Clock renders a full-screen tournament clock and maps keys to commands.
type Clock struct {
	screen  tcell.Screen
	session Controller
	status  string
}

// NewClock initializes the terminal. Call Close to restore it.
func NewClock(session Controller) (*Clock, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &Clock{screen: screen, session: session}, nil
}

// Close restores the terminal.
func (c *Clock) Close() {
	c.screen.Fini()
}

// Run draws the clock until the user quits or ctx is cancelled.
func (c *Clock) Run(ctx context.Context) error {
	updates := c.session.Subscribe(16)

	input := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				close(input)
				return
			}
			input <- ev
		}
	}()

	c.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-updates:
			if !ok {
				return nil
			}
			c.draw()
		case ev, ok := <-input:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				c.screen.Sync()
			case *tcell.EventKey:
				act := keyAction(ev, c.session.Snapshot())
				if act.quit {
					return nil
				}
				if act.cmd != nil {
					c.status = ""
					if err := c.session.Dispatch(*act.cmd); err != nil {
						c.status = describe(err)
						logging.Debugf("key %q: %v", ev.Rune(), err)
					}
				}
			}
			c.draw()
		}
	}
}

type action struct {
	cmd  *usecase.Command
	quit bool
}

func command(t usecase.CommandType) action {
	return action{cmd: &usecase.Command{Type: t}}
}

// keyAction maps a key press to a command given the current snapshot.
func keyAction(ev *tcell.EventKey, snap usecase.Snapshot) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return action{quit: true}
	case tcell.KeyRune:
	default:
		return action{}
	}

	r := ev.Rune()
	switch {
	case r == 'q' || r == 'Q':
		return action{quit: true}
	case r == ' ':
		switch snap.Status {
		case domain.StatusIdle:
			return command(usecase.CommandStart)
		case domain.StatusRunning:
			return command(usecase.CommandPause)
		case domain.StatusPaused:
			return command(usecase.CommandResume)
		}
	case r == 'n':
		return command(usecase.CommandNextLevel)
	case r == 'p':
		return command(usecase.CommandPrevLevel)
	case r == 'r':
		return command(usecase.CommandReset)
	case r == 'b':
		if snap.State.IsBreakActive {
			return command(usecase.CommandEndBreak)
		}
		return command(usecase.CommandStartBreak)
	case r == 'm':
		if snap.Muted {
			return command(usecase.CommandUnmute)
		}
		return command(usecase.CommandMute)
	case r >= '1' && r <= '9':
		return action{cmd: &usecase.Command{Type: usecase.CommandJump, Level: int(r - '1')}}
	}
	return action{}
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoBlindLevels):
		return "No blind levels configured"
	case errors.Is(err, domain.ErrBreaksDisabled):
		return "Breaks are disabled"
	case errors.Is(err, domain.ErrBreakActive):
		return "Break already running"
	case errors.Is(err, domain.ErrLevelOutOfRange):
		return "No such level"
	default:
		return err.Error()
	}
}

type line struct {
	text  string
	style tcell.Style
}

// render lays out the clock for snap, top to bottom.
func render(snap usecase.Snapshot, status string) []line {
	plain := tcell.StyleDefault
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	bold := tcell.StyleDefault.Bold(true)

	lines := []line{{text: snap.Config.Name, style: bold}, {}}

	if snap.Current == nil {
		lines = append(lines,
			line{text: "No blind levels configured", style: tcell.StyleDefault.Foreground(tcell.ColorRed)},
			line{text: "Add levels with: pokerclock levels add", style: dim},
		)
		return append(lines, line{}, line{text: "q quit", style: dim})
	}

	st := snap.State
	if st.IsBreakActive {
		lines = append(lines,
			line{text: "*** BREAK ***", style: tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)},
			line{text: domain.FormatTime(st.BreakTimeRemaining), style: warningStyle(snap.Warning)},
			line{},
		)
	}

	cur := *snap.Current
	lines = append(lines,
		line{text: fmt.Sprintf("Level %d of %d", cur.Level, len(snap.Config.BlindLevels)), style: plain},
		line{text: blinds(cur), style: bold},
	)
	if !st.IsBreakActive {
		lines = append(lines, line{text: domain.FormatTime(st.TimeRemaining), style: warningStyle(snap.Warning)})
	}
	if snap.Next != nil {
		lines = append(lines, line{text: "Next: " + blinds(*snap.Next), style: dim})
	} else {
		lines = append(lines, line{text: "Final level", style: dim})
	}

	meta := fmt.Sprintf("%s | elapsed %s", snap.Status, domain.FormatTime(st.TotalElapsed))
	if snap.BreakAvailable && !st.IsBreakActive {
		meta += " | break available"
	}
	if snap.Muted {
		meta += " | muted"
	}
	if snap.Ended {
		meta += " | clock finished"
	}
	lines = append(lines, line{}, line{text: meta, style: dim})
	if status != "" {
		lines = append(lines, line{text: status, style: tcell.StyleDefault.Foreground(tcell.ColorYellow)})
	}
	return append(lines, line{},
		line{text: "space start/pause  n next  p prev  r reset  b break  m mute  1-9 jump  q quit", style: dim})
}

func blinds(l domain.BlindLevel) string {
	if l.Ante > 0 {
		return fmt.Sprintf("%d / %d  ante %d", l.SmallBlind, l.BigBlind, l.Ante)
	}
	return fmt.Sprintf("%d / %d", l.SmallBlind, l.BigBlind)
}

func warningStyle(w domain.Warning) tcell.Style {
	switch w {
	case domain.WarningCritical:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case domain.WarningSoon:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	}
}

func (c *Clock) draw() {
	c.screen.Clear()
	width, height := c.screen.Size()
	lines := render(c.session.Snapshot(), c.status)

	top := (height - len(lines)) / 2
	if top < 0 {
		top = 0
	}
	for i, l := range lines {
		runes := []rune(l.text)
		x := (width - len(runes)) / 2
		if x < 0 {
			x = 0
		}
		for j, r := range runes {
			c.screen.SetContent(x+j, top+i, r, nil, l.style)
		}
	}
	c.screen.Show()
}
