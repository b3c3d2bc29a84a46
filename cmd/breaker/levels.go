package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/game"
	"github.com/vovakirdan/brick-breaker/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [id]",
	Short: "List brick layouts or draw one",
	Long: `Without an argument, shows every registered layout. With a layout ID,
draws the brick field as it would be generated for --seed, special bricks
included.

Examples:
  breaker levels
  breaker levels pyramid --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println(layoutsTable(registry.List(), config.DefaultLevel))
		fmt.Println()
		fmt.Println("Run 'breaker levels <id>' to draw a layout or 'breaker play --level <id>' to play it.")
		return nil
	}

	level, err := registry.Create(args[0])
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	field := game.NewBrickField(level, cfg.Bricks, game.NewSimpleRNG(seed()))
	fmt.Printf("%s: %d rows, %d bricks, %d special\n\n", level.Name, level.Rows(), field.Len(), field.Specials())
	fmt.Println(drawField(field.Bricks()))
	return nil
}

func layoutsTable(layouts []registry.LayoutInfo, def string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Title", "Rows", "Bricks").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, l := range layouts {
		id := l.ID
		if id == def {
			id += " *"
		}
		t.Row(id, l.Title, strconv.Itoa(l.Rows), strconv.Itoa(l.Bricks))
	}
	return t.String()
}

// drawField renders bricks as colored blocks, one text line per brick row.
func drawField(bricks []game.Brick) string {
	rows := make(map[int][]game.Brick)
	for _, b := range bricks {
		rows[b.Y] = append(rows[b.Y], b)
	}
	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	var sb strings.Builder
	for i, y := range ys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, b := range rows[y] {
			if j > 0 {
				sb.WriteByte(' ')
			}
			block := "██"
			if b.Special {
				block = "▓▓"
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(string(b.Color))).Render(block))
		}
	}
	return sb.String()
}
