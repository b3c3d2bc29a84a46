package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/game"
	"github.com/vovakirdan/brick-breaker/internal/registry"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, opts ...game.Option) (Model, *storage.Store) {
	t.Helper()

	eng, err := game.New(config.Default(), 1, opts...)
	if err != nil {
		t.Fatalf("game.New() error = %v", err)
	}
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m := NewModel(Options{Engine: eng, Layout: "classic", Store: store, Runtime: cfg})
	return m, store
}

// playToEnd steers the paddle to the right wall until the round ends.
func playToEnd(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; i < 5000 && m.engine.State().Playing(); i++ {
		m.input.Set(core.ActionRight)
		m.advance(m.config.Step)
	}
	if m.engine.State().Playing() {
		t.Fatal("round did not end")
	}
}

// singleBrick is a one-brick field without power-ups.
var singleBrick = config.Level{Name: "single", RowCounts: []int{1}, SpecialRows: []bool{false}}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runes("a"), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runes("d"), core.ActionRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRestart},
		{"r", runes("r"), core.ActionRestart},
		{"p", runes("p"), core.ActionPause},
		{"q", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runes("x"), core.ActionNone},
		{"tab is not an engine action", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.expected {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestAdvanceRunsFixedSteps(t *testing.T) {
	m, _ := newTestModel(t)

	if n := m.advance(12 * time.Millisecond); n != 2 {
		t.Fatalf("advance(12ms) ran %d steps, expected 2", n)
	}
	if m.acc != 2*time.Millisecond {
		t.Errorf("accumulator = %v, expected 2ms", m.acc)
	}
	if n := m.advance(3 * time.Millisecond); n != 1 {
		t.Fatalf("advance(3ms) ran %d steps, expected 1", n)
	}
	if m.acc != 0 {
		t.Errorf("accumulator = %v, expected 0", m.acc)
	}
	if tick := m.engine.State().Tick(); tick != 3 {
		t.Errorf("engine tick = %d, expected 3", tick)
	}
}

func TestAdvanceIsCappedPerFrame(t *testing.T) {
	m, _ := newTestModel(t)

	if n := m.advance(time.Second); n != maxStepsPerFrame {
		t.Errorf("advance(1s) ran %d steps, expected %d", n, maxStepsPerFrame)
	}
	if m.acc != 0 {
		t.Errorf("accumulator = %v, expected leftover to be dropped", m.acc)
	}
	if n := m.advance(-time.Second); n != 0 {
		t.Errorf("advance(-1s) ran %d steps, expected 0", n)
	}
}

func TestPaddleKeyAppliesToOneStep(t *testing.T) {
	m, _ := newTestModel(t)
	start := m.engine.State().Paddle().X

	next, _ := m.Update(runes("a"))
	m = next.(Model)
	m.advance(20 * time.Millisecond)

	if x := m.engine.State().Paddle().X; x != start-20 {
		t.Errorf("paddle X = %d, expected %d", x, start-20)
	}
	if !m.input.Empty() {
		t.Error("input should be cleared after a step ran")
	}

	// No step due yet: the key waits for the next step.
	m.acc = 0
	m.input.Set(core.ActionRight)
	m.advance(time.Millisecond)
	if m.input.Empty() {
		t.Error("input should be kept until a step runs")
	}
}

func TestPauseSuspendsTicking(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(runes("p"))
	m = next.(Model)
	if !m.Paused() {
		t.Fatal("expected paused after p")
	}
	if n := m.advance(50 * time.Millisecond); n != 0 {
		t.Errorf("paused advance ran %d steps", n)
	}

	next, _ = m.Update(runes("p"))
	m = next.(Model)
	if m.Paused() {
		t.Fatal("expected running after second p")
	}
	if n := m.advance(5 * time.Millisecond); n != 1 {
		t.Errorf("advance ran %d steps, expected 1", n)
	}
}

func TestHandleFrameUsesElapsedTime(t *testing.T) {
	m, _ := newTestModel(t)
	t0 := time.Unix(1000, 0)

	next, cmd := m.Update(FrameMsg(t0))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("frame should schedule the next frame")
	}
	if m.engine.State().Tick() != 0 {
		t.Error("first frame should not run steps")
	}

	next, _ = m.Update(FrameMsg(t0.Add(16 * time.Millisecond)))
	m = next.(Model)
	if tick := m.engine.State().Tick(); tick != 3 {
		t.Errorf("engine tick = %d, expected 3", tick)
	}
}

func TestFinishedRoundIsRecordedOnce(t *testing.T) {
	m, store := newTestModel(t, game.WithLayout(singleBrick))

	var events []game.Event
	m.sinks = []game.EventSink{game.EventSinkFunc(func(ev game.Event) { events = append(events, ev) })}

	playToEnd(t, &m)

	// Further frames do nothing once the round is over.
	m.advance(100 * time.Millisecond)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(runs))
	}

	st := m.engine.State()
	r := runs[0]
	if r.Layout != "classic" || r.Seed != 1 || r.Score != st.Score() || r.Ticks != st.Tick() {
		t.Errorf("recorded run = %+v, state score %d tick %d", r, st.Score(), st.Tick())
	}
	expected := storage.OutcomeGameOver
	if st.Won() {
		expected = storage.OutcomeWon
	}
	if r.Outcome != expected {
		t.Errorf("outcome = %s, expected %s", r.Outcome, expected)
	}
	if r.Bricks != st.Score()/5 {
		t.Errorf("bricks = %d, expected %d", r.Bricks, st.Score()/5)
	}

	if len(events) == 0 {
		t.Fatal("sink received no events")
	}
	last := events[len(events)-1].Type
	if last != game.EventGameOver && last != game.EventGameWon {
		t.Errorf("last event = %v, expected an end-of-round event", last)
	}
	if m.runs != 1 {
		t.Errorf("HUD run count = %d, expected 1", m.runs)
	}
}

func TestRestartAfterRoundEnds(t *testing.T) {
	m, store := newTestModel(t, game.WithLayout(singleBrick))

	// Restart is refused while playing.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.engine.State().Tick() != 0 || !m.engine.State().Playing() {
		t.Fatal("restart while playing should be a no-op")
	}

	playToEnd(t, &m)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !m.engine.State().Playing() {
		t.Fatal("expected a new round after restart")
	}
	if m.run != (runTally{}) {
		t.Errorf("run tally = %+v, expected reset", m.run)
	}

	playToEnd(t, &m)
	stats, err := store.Stats("classic")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("runs = %d, expected 2", stats.Runs)
	}
}

func TestQuitRecordsAbortedRound(t *testing.T) {
	m, store := newTestModel(t)
	m.advance(50 * time.Millisecond)

	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeAborted {
		t.Fatalf("runs = %+v, expected one aborted run", runs)
	}
}

func TestQuitBeforeFirstTickRecordsNothing(t *testing.T) {
	m, store := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	stats, err := store.Stats("classic")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Runs != 0 {
		t.Errorf("runs = %d, expected 0", stats.Runs)
	}
}

func TestScoreboardToggle(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if !m.scores {
		t.Fatal("tab should open the scoreboard")
	}
	if n := m.advance(50 * time.Millisecond); n != 0 {
		t.Errorf("advance ran %d steps with scoreboard open", n)
	}
	if !strings.Contains(m.View(), "SESSION RUNS") {
		t.Error("scoreboard view missing title")
	}

	// Paddle keys scroll the table instead of reaching the engine.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	if !m.input.Empty() {
		t.Error("paddle input leaked through the scoreboard")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.scores {
		t.Error("esc should close the scoreboard")
	}
}

func TestResizeKeepsEngineState(t *testing.T) {
	m, _ := newTestModel(t)
	m.advance(20 * time.Millisecond)
	before := m.engine.Snapshot().Hash()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
	if m.engine.Snapshot().Hash() != before {
		t.Error("resize must not touch the engine")
	}
}

func TestMenuSelectsLayout(t *testing.T) {
	layouts := registry.List()
	if len(layouts) < 2 {
		t.Fatalf("expected at least two layouts, got %d", len(layouts))
	}

	m := NewMenuModel(core.DefaultConfig(), layouts[0].ID)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)

	if cmd == nil {
		t.Fatal("select should quit the menu")
	}
	if menu.Selected() != layouts[1].ID {
		t.Errorf("Selected() = %q, expected %q", menu.Selected(), layouts[1].ID)
	}
}

func TestMenuStartsOnCurrentLayout(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "tiny")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := next.(MenuModel).Selected(); got != "tiny" {
		t.Errorf("Selected() = %q, expected tiny", got)
	}

	next, _ = m.Update(runes("q"))
	if got := next.(MenuModel).Selected(); got != "" {
		t.Errorf("Selected() after quit = %q, expected empty", got)
	}
}
