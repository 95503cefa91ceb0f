package ui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/logger"
	"github.com/olivier-w/folio/internal/metrics"
	"github.com/olivier-w/folio/internal/particles"
	"github.com/olivier-w/folio/internal/reveal"
	"github.com/olivier-w/folio/internal/scroll"
	"github.com/olivier-w/folio/internal/section"
	"github.com/olivier-w/folio/internal/spring"
)

const (
	// chromeRows are the navbar, progress bar and help rows around the page.
	chromeRows   = 3
	particleRows = 4
	wheelRows    = 3

	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures a Model.
type Options struct {
	Profile content.Profile
	Spring  spring.Config
	Motion  section.Motion
	Reveal  reveal.Config

	Particles     bool
	ParticleCount int
	ParticleSeed  uint64

	Metrics *metrics.Manager
	Logger  logger.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the Bubbletea model for the scrolling page.
type Model struct {
	ctx     context.Context
	profile content.Profile
	fps     int
	now     func() time.Time
	log     logger.Logger
	metrics *metrics.Manager

	viewport viewport.Model
	bar      progress.Model

	tracker  *scroll.Tracker
	smoother *spring.Smoother
	nav      *section.Navigator
	revealer *reveal.Revealer
	field    *particles.Field

	doc       document
	width     int
	height    int
	progress  scroll.Progress
	shown     float64
	active    section.ID
	animating bool
	frameSeq  uint64
	lastFrame time.Time
	status    string
	quitting  bool
}

// New builds the page model at a default size; the first WindowSizeMsg lays
// it out for the real terminal.
func New(opts Options) (Model, error) {
	if err := opts.Profile.Validate(); err != nil {
		return Model{}, err
	}
	revealer, err := reveal.New(opts.Reveal)
	if err != nil {
		return Model{}, err
	}
	motion := opts.Motion
	if motion.FPS <= 0 {
		motion = section.DefaultMotion()
	}
	nav, err := section.New(nil, section.WithMotion(motion))
	if err != nil {
		return Model{}, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Named("ui")
	}

	m := Model{
		ctx:      context.Background(),
		profile:  opts.Profile,
		fps:      motion.FPS,
		now:      opts.Now,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeRows),
		bar: progress.New(
			progress.WithScaledGradient("#A855F7", "#EC4899"),
			progress.WithoutPercentage(),
		),
		tracker:  scroll.NewTracker(),
		smoother: spring.New(opts.Spring),
		nav:      nav,
		revealer: revealer,
	}
	if opts.Particles && opts.ParticleCount > 0 {
		seed := opts.ParticleSeed
		if seed == 0 {
			seed = uint64(opts.Now().UnixNano())
		}
		m.field = particles.NewField(opts.ParticleCount, seed)
	}
	m.relayout(defaultWidth, defaultHeight)
	m.scheduleFrame()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.profile.Name + " · folio")}
	if m.field != nil {
		cmds = append(cmds, particleCmd())
	}
	if m.animating {
		cmds = append(cmds, frameCmd(m.fps, m.frameSeq))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			cmd := m.scrollBy(-wheelRows)
			return m, cmd
		case tea.MouseButtonWheelDown:
			cmd := m.scrollBy(wheelRows)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.relayout(msg.Width, msg.Height)
		m.metrics.RecordRelayout()
		m.log.Debug(m.ctx, "relayout",
			logger.Int("width", msg.Width),
			logger.Int("height", msg.Height),
			logger.Int("rows", m.doc.total))
		cmd := m.scheduleFrame()
		return m, cmd

	case frameMsg:
		if msg.seq != m.frameSeq {
			return m, nil
		}
		m.animating = false
		m.frame(msg.at)
		cmd := m.scheduleFrame()
		return m, cmd

	case particleTickMsg:
		if m.field == nil {
			return m, nil
		}
		m.field.Update(m.doc.bandCols, particleRows)
		m.refreshContent(time.Time(msg))
		return m, particleCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	m.status = ""

	page := max(1, m.viewport.Height-1)
	var cmd tea.Cmd
	switch msg.String() {
	case "down", "j":
		cmd = m.scrollBy(1)
	case "up", "k":
		cmd = m.scrollBy(-1)
	case "pgdown", " ", "f":
		cmd = m.scrollBy(page)
	case "pgup", "b":
		cmd = m.scrollBy(-page)
	case "ctrl+d":
		cmd = m.scrollBy(page / 2)
	case "ctrl+u":
		cmd = m.scrollBy(-page / 2)
	case "home", "g":
		cmd = m.scrollTo(0)
	case "end", "G":
		cmd = m.scrollTo(m.maxOffset())
	case "tab":
		cmd = m.navigate(m.nav.Next(m.nav.Offset()))
	case "shift+tab":
		cmd = m.navigate(m.nav.Prev(m.nav.Offset()))
	case "c":
		cmd = m.navigate(content.Contact)
	default:
		if i, ok := sectionKey(msg); ok {
			if i < len(m.doc.blocks) {
				cmd = m.navigate(section.ID(m.doc.blocks[i].id))
			} else {
				cmd = m.navigate(section.ID(fmt.Sprintf("#%d", i+1)))
			}
		}
	}
	return m, cmd
}

// scrollBy is a manual scroll: it cancels any smooth navigation in flight.
func (m *Model) scrollBy(delta int) tea.Cmd {
	return m.scrollTo(m.viewport.YOffset + delta)
}

func (m *Model) scrollTo(offset int) tea.Cmd {
	m.viewport.SetYOffset(offset)
	m.nav.ScrollTo(float64(m.viewport.YOffset))
	m.afterScroll(m.now())
	return m.scheduleFrame()
}

func (m *Model) navigate(id section.ID) tea.Cmd {
	traj, err := m.nav.NavigateTo(section.NavigationRequest{Target: id})
	if err != nil {
		m.metrics.RecordNavigationError()
		m.status = err.Error()
		m.log.Warn(m.ctx, "navigation rejected", logger.String("target", string(id)), logger.Error(err))
		return nil
	}
	m.metrics.RecordNavigation(string(id))
	m.log.Debug(m.ctx, "navigate",
		logger.String("target", string(id)),
		logger.Float64("from", traj.From),
		logger.Float64("to", traj.To),
		logger.Int("steps", len(traj.Points)))
	return m.scheduleFrame()
}

// afterScroll derives progress, the active section and reveal state from the
// viewport offset.
func (m *Model) afterScroll(now time.Time) {
	offset := m.viewport.YOffset
	sample := scroll.Sample{Offset: float64(offset), DocumentHeight: float64(m.maxOffset())}
	if err := sample.Validate(); err != nil {
		m.log.Debug(m.ctx, "document fits the viewport", logger.Error(err))
	}
	m.progress = m.tracker.Update(sample)
	if m.tracker.Resized() {
		// relayout moved progress without a scroll; the bar follows at once
		m.smoother.Jump(float64(m.progress))
		m.shown = float64(m.progress)
		m.metrics.UpdateProgress(m.shown)
	}

	if active := m.nav.ActiveSection(float64(offset)); active != m.active {
		m.active = active
		m.metrics.RecordActiveSection(string(active))
	}
	m.revealer.Update(now, offset, m.viewport.Height, m.doc.spans())
	m.refreshContent(now)
}

func (m *Model) frame(now time.Time) {
	dt := now.Sub(m.lastFrame).Seconds()
	if m.lastFrame.IsZero() || dt <= 0 {
		dt = 1 / float64(m.fps)
	}
	m.lastFrame = now
	m.metrics.RecordFrame()

	if off, ok := m.nav.Step(); ok {
		m.viewport.SetYOffset(int(math.Round(off)))
		m.afterScroll(now)
	} else {
		m.refreshContent(now)
	}

	wasSettled := m.smoother.Settled()
	m.shown = m.smoother.Tick(float64(m.progress), dt)
	if !wasSettled && m.smoother.Settled() {
		m.metrics.RecordSpringSettled()
	}
	m.metrics.UpdateProgress(m.shown)
}

func (m Model) needsFrame(now time.Time) bool {
	return m.nav.Pending() ||
		!m.smoother.Settled() ||
		m.smoother.Position() != float64(m.progress) ||
		m.revealer.Animating(now)
}

// scheduleFrame starts the frame loop if something is moving and no frame is
// already queued. Frames carry a sequence number so a stale loop dies out.
func (m *Model) scheduleFrame() tea.Cmd {
	now := m.now()
	if m.animating || !m.needsFrame(now) {
		return nil
	}
	m.animating = true
	m.frameSeq++
	m.lastFrame = now
	return frameCmd(m.fps, m.frameSeq)
}

func (m *Model) relayout(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width, m.height = width, height
	viewHeight := max(1, height-chromeRows)

	rows := 0
	if m.field != nil {
		rows = particleRows
	}
	m.doc = buildDocument(m.profile, width, viewHeight, rows)
	m.viewport.Width = width
	m.viewport.Height = viewHeight
	m.bar.Width = max(10, width-7)

	if err := m.nav.Reset(m.doc.sections()); err != nil {
		m.log.Error(m.ctx, "section layout rejected", logger.Error(err))
	}
	m.nav.SetExtent(float64(m.maxOffset()))

	now := m.now()
	m.refreshContent(now)
	m.viewport.SetYOffset(m.viewport.YOffset)
	m.nav.ScrollTo(float64(m.viewport.YOffset))
	m.afterScroll(now)
}

func (m *Model) refreshContent(now time.Time) {
	band := ""
	if m.field != nil {
		band = m.field.View()
	}
	m.viewport.SetContent(m.doc.render(func(id string) float64 {
		return m.revealer.Progress(id, now)
	}, band))
}

func (m Model) maxOffset() int {
	return max(0, m.doc.total-m.viewport.Height)
}

// Active returns the highlighted section.
func (m Model) Active() section.ID { return m.active }

// Progress returns the raw and smoothed scroll progress.
func (m Model) Progress() (raw, smoothed float64) {
	return float64(m.progress), m.shown
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	nav := renderNavbar(m.profile.Name, m.doc.navItems(), string(m.active), m.width)
	bar := renderProgressLine(m.bar.ViewAs(m.shown), m.shown)

	footer := " " + helpStyle.Render(helpText())
	if m.status != "" {
		footer = " " + statusStyle.Render(m.status)
	}
	return nav + "\n" + bar + "\n" + m.viewport.View() + "\n" + footer
}
