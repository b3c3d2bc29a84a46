package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/game"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

var (
	flagRuns     int
	flagMaxTicks uint64
	flagEvery    uint64
	flagDeadzone float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless games with the autopilot",
	Long: `Play seeded games without a terminal UI. The autopilot steers the paddle,
every run is recorded in the session ledger and a summary is printed at the
end. Run i uses seed+i, so the same flags always give the same results.

Examples:
  breaker sim --seed 1 --runs 10
  breaker sim --level tiny --every 3 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of games to play")
	simCmd.Flags().Uint64Var(&flagMaxTicks, "ticks", 200_000, "Abort a game after this many ticks")
	simCmd.Flags().Uint64Var(&flagEvery, "every", 1, "Autopilot acts on every Nth tick only")
	simCmd.Flags().Float64Var(&flagDeadzone, "deadzone", 0, "Autopilot deadzone in field units (0 = half a paddle step)")
}

// simResult is one finished headless game.
type simResult struct {
	run  storage.Run
	hash uint64
}

func runSim(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if flagRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", flagRuns)
	}

	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "source", source)

	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	base := seed()
	pilot := game.Autopilot{Every: flagEvery, Deadzone: flagDeadzone}
	dt := core.DefaultConfig().StepSeconds()

	results := make([]simResult, 0, flagRuns)
	var layout string
	for i := range flagRuns {
		eng, err := game.New(cfg, base+int64(i), game.WithLogger(logger))
		if err != nil {
			return err
		}
		layout = layoutName(eng)

		res := playHeadless(eng, pilot, cfg.Paddle.Step, dt, flagMaxTicks, logger)
		res.run.Layout = layout
		if _, err := store.SaveRun(res.run); err != nil {
			return err
		}
		logger.Info("run finished", "run", i+1, "seed", res.run.Seed, "outcome", res.run.Outcome, "score", res.run.Score)
		results = append(results, res)
	}

	stats, err := store.Stats(layout)
	if err != nil {
		return err
	}
	fmt.Println(resultsTable(results))
	fmt.Println()
	fmt.Println(summary(stats))
	return nil
}

// playHeadless plays one game to its end or the tick limit.
func playHeadless(eng *game.Engine, pilot game.Autopilot, step int, dt float64, maxTicks uint64, logger *log.Logger) simResult {
	var bricks, powerUps int
	tally := game.EventSinkFunc(func(ev game.Event) {
		switch ev.Type {
		case game.EventBrickDestroyed:
			bricks++
		case game.EventPowerUpCollected:
			powerUps++
		}
	})

	st := eng.State()
	for st.Playing() && st.Tick() < maxTicks {
		game.Dispatch(eng.Tick(dt, pilot.Command(st, step)), tally)
	}

	outcome := storage.OutcomeAborted
	switch {
	case st.Won():
		outcome = storage.OutcomeWon
	case st.GameOver():
		outcome = storage.OutcomeGameOver
	}
	logger.Debug("headless game", "ticks", st.Tick(), "bricks_left", st.BricksLeft())

	return simResult{
		run: storage.Run{
			Seed:     eng.Seed(),
			Score:    st.Score(),
			Outcome:  outcome,
			Ticks:    st.Tick(),
			Bricks:   bricks,
			PowerUps: powerUps,
		},
		hash: eng.Snapshot().Hash(),
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	wonStyle    = cellStyle.Foreground(lipgloss.Color("#00ff00"))
	lostStyle   = cellStyle.Foreground(lipgloss.Color("#ff5f5f"))
)

func resultsTable(results []simResult) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "Seed", "Result", "Score", "Ticks", "Bricks", "Power", "Hash")

	for i, r := range results {
		t.Row(
			strconv.Itoa(i+1),
			strconv.FormatInt(r.run.Seed, 10),
			string(r.run.Outcome),
			strconv.Itoa(r.run.Score),
			strconv.FormatUint(r.run.Ticks, 10),
			strconv.Itoa(r.run.Bricks),
			strconv.Itoa(r.run.PowerUps),
			fmt.Sprintf("%016x", r.hash),
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 2 && row < len(results):
			switch results[row].run.Outcome {
			case storage.OutcomeWon:
				return wonStyle
			case storage.OutcomeGameOver:
				return lostStyle
			}
		}
		return cellStyle
	})
	return t.String()
}

func summary(s *storage.Stats) string {
	return fmt.Sprintf("%s: %d runs, %d won (%.0f%%), high score %d, average score %.1f over %.0f ticks",
		s.Layout, s.Runs, s.Wins, s.WinRate()*100, s.HighScore, s.AvgScore, s.AvgTicks)
}
