// Package watch runs the live terminal view: the upcoming-task banner with
// a ticking countdown, every partition's tasks, and the periodic sweeps that
// expire countdowns and reset recurring tasks while the view is open.
package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/remind/pkg/app"
	"tableflip.dev/remind/pkg/printers"
	"tableflip.dev/remind/pkg/schedule"
	"tableflip.dev/remind/pkg/store"
)

type Watch struct {
	Service *app.Service
}

// Do runs the startup sweeps, subscribes to persistence changes, and starts
// the program loop.
func (w *Watch) Do(ctx context.Context) error {
	if _, err := w.Service.ResetRecurring(ctx); err != nil {
		return err
	}
	if _, err := w.Service.Expire(ctx); err != nil {
		return err
	}

	events, err := w.Service.Watch(ctx)
	if err != nil {
		return err
	}

	m := newModel(ctx, w.Service, events)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type (
	tickMsg    time.Time
	expireMsg  struct{}
	refreshMsg struct{}
	resetMsg   struct{}
	storeMsg   struct{}
)

type model struct {
	svc    *app.Service
	ctx    context.Context
	events <-chan store.Event

	now     time.Time
	next    schedule.Next
	hasNext bool
	status  string

	width  int
	height int
}

func newModel(ctx context.Context, svc *app.Service, events <-chan store.Event) model {
	m := model{
		svc:    svc,
		ctx:    ctx,
		events: events,
		now:    time.Now(),
	}
	m.recompute()
	return m
}

func (m *model) recompute() {
	m.next, m.hasNext = m.svc.Upcoming(m.ctx)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tick(),
		expireTick(),
		refreshTick(),
		midnightTick(m.now),
		m.waitEvent(),
	)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func expireTick() tea.Cmd {
	return tea.Tick(schedule.ExpiryInterval, func(time.Time) tea.Msg { return expireMsg{} })
}

func refreshTick() tea.Cmd {
	return tea.Tick(schedule.RefreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

// midnightTick arms the reset sweep for the next local midnight. It is
// re-armed from each firing, recomputing the boundary instead of stacking
// fixed 24h intervals.
func midnightTick(now time.Time) tea.Cmd {
	return tea.Tick(time.Until(schedule.NextMidnight(now)), func(time.Time) tea.Msg { return resetMsg{} })
}

func (m model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.events; !ok {
			return nil
		}
		return storeMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case refreshMsg:
		m.recompute()
		return m, refreshTick()

	case expireMsg:
		expired, err := m.svc.Expire(m.ctx)
		if err != nil {
			m.status = err.Error()
		} else if len(expired) > 0 {
			m.status = fmt.Sprintf("%d个任务已到期", len(expired))
		}
		m.recompute()
		return m, expireTick()

	case resetMsg:
		if reset, err := m.svc.ResetRecurring(m.ctx); err != nil {
			m.status = err.Error()
		} else if len(reset) > 0 {
			m.status = fmt.Sprintf("%d个循环任务已重置", len(reset))
		}
		m.recompute()
		return m, midnightTick(time.Now())

	case storeMsg:
		m.svc.Reload()
		m.recompute()
		return m, m.waitEvent()

	}

	return m, nil
}

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	remainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	recurStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m model) View() string {
	var b strings.Builder

	if m.hasNext {
		b.WriteString(bannerStyle.Render(schedule.Banner(m.next.Task.Content, m.next.At, m.now)))
	} else {
		b.WriteString(faintStyle.Render("没有即将到来的任务"))
	}
	b.WriteString("\n\n")

	m.viewCountdown(&b)
	m.viewDated(&b)
	m.viewRecurring(&b)

	footer := "q quit"
	if m.status != "" {
		footer = m.status + "  ·  " + footer
	}
	b.WriteString(statusStyle.Render(footer))
	return b.String()
}

func (m model) viewCountdown(b *strings.Builder) {
	tasks := m.svc.Tasks.CountdownTasks()
	if len(tasks) == 0 {
		return
	}
	b.WriteString(titleStyle.Render("倒计时"))
	b.WriteString("\n")
	for _, t := range tasks {
		fmt.Fprintf(b, "%s %s %s\n",
			printers.StatusMark(t), t.Content,
			remainStyle.Render(schedule.CountdownUntil(t.ScheduledAt.Time, m.now)))
	}
	b.WriteString("\n")
}

func (m model) viewDated(b *strings.Builder) {
	groups := m.svc.Tasks.DatedGroups()
	if len(groups) == 0 {
		return
	}
	b.WriteString(titleStyle.Render("日程"))
	b.WriteString("\n")
	for _, g := range groups {
		fmt.Fprintf(b, "%s\n", faintStyle.Render(printers.DayHeading(g.Day)))
		for _, t := range g.Tasks {
			fmt.Fprintf(b, "%s %s %s\n", printers.StatusMark(t), printers.ClockText(t), t.Content)
		}
	}
	b.WriteString("\n")
}

func (m model) viewRecurring(b *strings.Builder) {
	var rows []string
	for _, p := range []store.Partition{store.Daily, store.Weekly, store.Monthly, store.Yearly} {
		for _, t := range m.svc.Tasks.RecurringTasks(p) {
			rows = append(rows, fmt.Sprintf("%s %s %s",
				printers.StatusMark(t), recurStyle.Render(printers.RecurrenceLabel(t)), t.Content))
		}
	}
	if len(rows) == 0 {
		return
	}
	b.WriteString(titleStyle.Render("循环"))
	b.WriteString("\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\n")
}
