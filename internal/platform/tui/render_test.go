package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/game"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

func newTestState(t *testing.T) *game.State {
	t.Helper()
	eng, err := game.New(config.Default(), 1)
	if err != nil {
		t.Fatalf("game.New() error = %v", err)
	}
	return eng.State()
}

func countRune(s *core.Screen, r rune) int {
	return strings.Count(s.String(), string(r))
}

func TestDrawGame(t *testing.T) {
	st := newTestState(t)
	s := core.NewScreen(80, 23)

	DrawGame(s, st, config.Default().Field, HUD{Layout: "classic"})

	if row := s.Row(0); !strings.Contains(row, "SCORE 0") || !strings.Contains(row, "classic") {
		t.Errorf("HUD row = %q", row)
	}
	if s.Get(0, 1) != '┌' || s.Get(79, 22) != '┘' {
		t.Error("field border missing")
	}
	if countRune(s, glyphPaddle) == 0 {
		t.Error("paddle not drawn")
	}
	if countRune(s, glyphBall) == 0 {
		t.Error("ball not drawn")
	}
	if countRune(s, glyphBrick)+countRune(s, glyphSpecial) == 0 {
		t.Error("bricks not drawn")
	}
	if countRune(s, glyphSpecial) == 0 {
		t.Error("special bricks not drawn")
	}
	if strings.Contains(s.String(), "PAUSED") {
		t.Error("pause overlay drawn while running")
	}
}

func TestDrawGamePausedOverlay(t *testing.T) {
	st := newTestState(t)
	s := core.NewScreen(80, 23)

	DrawGame(s, st, config.Default().Field, HUD{Paused: true})

	if !strings.Contains(s.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
}

func TestDrawGameTooSmall(t *testing.T) {
	st := newTestState(t)
	s := core.NewScreen(30, 6)

	DrawGame(s, st, config.Default().Field, HUD{})

	if !strings.Contains(s.String(), "terminal too small") {
		t.Errorf("screen = %q", s.String())
	}
}

func TestDrawGameEndOverlay(t *testing.T) {
	m, _ := newTestModel(t, game.WithLayout(singleBrick))
	playToEnd(t, &m)

	s := core.NewScreen(80, 23)
	st := m.engine.State()
	DrawGame(s, st, config.Default().Field, HUD{})

	expected := "G A M E   O V E R"
	if st.Won() {
		expected = "Y O U   W I N"
	}
	if !strings.Contains(s.String(), expected) {
		t.Errorf("overlay %q missing", expected)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColor(0, 1, "xyz", core.Color("#00ff00"))

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q in %q", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", lines)
	}
}

func TestClip(t *testing.T) {
	bounds := core.NewRect(1, 2, 10, 5)

	tests := []struct {
		name     string
		r        core.Rect
		expected core.Rect
	}{
		{"inside", core.NewRect(2, 3, 2, 1), core.NewRect(2, 3, 2, 1)},
		{"overhangs bottom", core.NewRect(2, 6, 2, 3), core.NewRect(2, 6, 2, 1)},
		{"overhangs left", core.NewRect(-1, 3, 4, 1), core.NewRect(1, 3, 2, 1)},
		{"outside", core.NewRect(20, 3, 2, 1), core.Rect{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := clip(tc.r, bounds); got != tc.expected {
				t.Errorf("clip() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestScoreboardLoadsRuns(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()

	for _, score := range []int{10, 30, 20} {
		if _, err := store.SaveRun(storage.Run{Layout: "classic", Score: score, Outcome: storage.OutcomeGameOver}); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	b := NewScoreboard(store, "classic", 80, 24)
	if b.Layout() != "classic" {
		t.Fatalf("Layout() = %q, expected classic", b.Layout())
	}
	if len(b.runs) != 3 || b.runs[0].Score != 30 {
		t.Fatalf("runs = %+v, expected 3 runs led by score 30", b.runs)
	}
	if !strings.Contains(b.statsLine(), "runs 3") {
		t.Errorf("statsLine() = %q", b.statsLine())
	}
}

func TestScoreboardInlineLayout(t *testing.T) {
	b := NewScoreboard(nil, "single", 80, 24)
	if b.Layout() != "single" {
		t.Errorf("Layout() = %q, expected the inline layout first", b.Layout())
	}
	if b.statsLine() != "no runs yet" {
		t.Errorf("statsLine() = %q", b.statsLine())
	}
}
