package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/game"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

const (
	// maxStepsPerFrame bounds the catch-up work after a stall. Leftover
	// time is dropped.
	maxStepsPerFrame = 40
	// maxFrameDelta caps the time credited for a single frame.
	maxFrameDelta = 250 * time.Millisecond
)

// Options configures a Model.
type Options struct {
	Engine  *game.Engine
	Layout  string           // Layout ID recorded in the ledger
	Store   *storage.Store   // Optional session ledger
	Sinks   []game.EventSink // Receive every engine event in order
	Logger  *log.Logger
	Runtime core.RuntimeConfig
}

// Model is the Bubble Tea model driving one engine. Frames arrive at the
// presentation rate; the engine advances in fixed steps from an accumulator.
type Model struct {
	engine *game.Engine
	layout string
	store  *storage.Store
	sinks  []game.EventSink
	logger *log.Logger
	config core.RuntimeConfig
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	board  Scoreboard
	input  core.InputFrame
	acc    time.Duration
	last   time.Time
	paused bool
	scores bool // Scoreboard is shown
	quit   bool
	runs   int
	run    runTally
}

// runTally counts what happened in the current round for the ledger.
type runTally struct {
	bricks   int
	powerUps int
	recorded bool
}

// NewModel creates a new Bubble Tea model for the given engine.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = core.DefaultConfig().FrameRate
	}
	if cfg.Step <= 0 {
		cfg.Step = core.DefaultConfig().Step
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		engine: opts.Engine,
		layout: opts.Layout,
		store:  opts.Store,
		sinks:  opts.Sinks,
		logger: logger,
		config: cfg,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  core.NewInputFrame(),
	}
	m.board = NewScoreboard(opts.Store, opts.Layout, cfg.ScreenW, cfg.ScreenH)
	m.runs = m.countRuns()
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.scores {
		if key.Matches(msg, m.board.keys.Back) {
			m.scores = false
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			return m.shutdown()
		}
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Scores) {
		m.scores = true
		m.acc = 0
		m.board.Refresh()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		return m.shutdown()
	case core.ActionPause:
		if m.engine.State().Playing() {
			m.paused = !m.paused
			m.acc = 0
		}
	case core.ActionRestart:
		m.restart()
	case core.ActionLeft, core.ActionRight:
		m.input.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The engine works in field
// units, so only the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	m.board.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleFrame credits the time since the previous frame and runs the due
// simulation steps.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.quit {
		return m, nil
	}
	var elapsed time.Duration
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now
	m.advance(elapsed)
	return m, frameCmd(m.config.FrameRate)
}

// advance runs as many fixed steps as the accumulated time allows and
// returns how many ran. A paddle key pressed since the last step applies to
// the first step only.
func (m *Model) advance(elapsed time.Duration) int {
	if m.paused || m.scores {
		return 0
	}
	m.acc += min(max(elapsed, 0), maxFrameDelta)

	step := m.config.Step
	cmd := game.CommandFrom(m.input)
	steps := 0
	for m.acc >= step {
		if steps == maxStepsPerFrame {
			m.acc = 0
			break
		}
		m.observe(m.engine.Tick(step.Seconds(), cmd))
		cmd = game.CommandNone
		m.acc -= step
		steps++
	}
	if steps > 0 {
		m.input.Clear()
	}
	return steps
}

// observe forwards events to the sinks and records the round once it ends.
func (m *Model) observe(events []game.Event) {
	if len(events) == 0 {
		return
	}
	game.Dispatch(events, m.sinks...)

	for _, ev := range events {
		switch ev.Type {
		case game.EventBrickDestroyed:
			m.run.bricks++
		case game.EventPowerUpCollected:
			m.run.powerUps++
		}
	}

	st := m.engine.State()
	if !st.Playing() && !m.run.recorded {
		outcome := storage.OutcomeGameOver
		if st.Won() {
			outcome = storage.OutcomeWon
		}
		m.record(outcome)
	}
}

// record saves the current round to the ledger.
func (m *Model) record(outcome storage.Outcome) {
	m.run.recorded = true
	if m.store == nil {
		return
	}
	st := m.engine.State()
	run := storage.Run{
		Layout:   m.layout,
		Seed:     m.engine.Seed(),
		Score:    st.Score(),
		Outcome:  outcome,
		Ticks:    st.Tick(),
		Bricks:   m.run.bricks,
		PowerUps: m.run.powerUps,
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("cannot record run", "err", err)
		return
	}
	m.logger.Debug("run recorded", "layout", m.layout, "outcome", outcome, "score", run.Score)
	m.runs = m.countRuns()
	m.board.Refresh()
}

// restart begins a new round if the engine allows it.
func (m *Model) restart() {
	if !m.engine.Restart() {
		return
	}
	m.run = runTally{}
	m.paused = false
	m.acc = 0
	m.input.Clear()
}

// shutdown records an unfinished round as aborted and quits.
func (m Model) shutdown() (tea.Model, tea.Cmd) {
	st := m.engine.State()
	if st.Playing() && st.Tick() > 0 && !m.run.recorded {
		m.record(storage.OutcomeAborted)
	}
	m.quit = true
	return m, tea.Quit
}

func (m Model) countRuns() int {
	if m.store == nil {
		return 0
	}
	stats, err := m.store.Stats(m.layout)
	if err != nil {
		m.logger.Warn("cannot read ledger stats", "err", err)
		return 0
	}
	return stats.Runs
}

// Paused reports whether the simulation is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quit {
		return ""
	}
	if m.scores {
		return m.board.View()
	}

	DrawGame(m.screen, m.engine.State(), m.engine.Config().Field, HUD{
		Layout: m.layout,
		Paused: m.paused,
		Runs:   m.runs,
	})
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
