package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rewind-arcade/internal/storage"
)

var (
	flagOrder  string
	flagLimit  int
	flagClear  bool
	flagTotals bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded runs.

Runs are ranked by loops survived (ties broken by distance), or by
distance with --order distance.

Examples:
  rewind scores
  rewind scores --order distance --limit 20
  rewind scores --totals
  rewind scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagOrder, "order", "loops", "Ranking: loops or distance")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
	scoresCmd.Flags().BoolVar(&flagTotals, "totals", false, "Also show aggregate statistics")
}

func runScores(cmd *cobra.Command, args []string) error {
	if flagOrder != "loops" && flagOrder != "distance" {
		return fmt.Errorf("unknown order %q (want loops or distance)", flagOrder)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	}

	order := storage.ParseRunOrder(flagOrder)
	runs, err := store.TopRuns(order, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - by %s\n", order)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rewind play' to set the first record!")
		return nil
	}

	fmt.Printf("  %-4s  %-5s  %-8s  %-6s  %-5s  %-10s  %-6s  %s\n",
		"Rank", "Loops", "Distance", "Ghosts", "Speed", "Player", "Diff", "Date")
	fmt.Printf("  %-4s  %-5s  %-8s  %-6s  %-5s  %-10s  %-6s  %s\n",
		"----", "-----", "--------", "------", "-----", "------", "----", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-5d  %-8s  %-6d  %-5s  %-10s  %-6s  %s\n",
			i+1,
			r.Loops,
			fmt.Sprintf("%dm", int(r.Distance)),
			r.Ghosts,
			fmt.Sprintf("x%.1f", r.MaxSpeed),
			player,
			r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if flagTotals {
		st, err := store.Stats()
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d loops  Farthest: %dm  Average: %.1f loops  Travelled: %dm\n",
			st.Runs, st.BestLoops, int(st.BestDistance), st.AvgLoops, int(st.TotalDistance))
	}
	return nil
}
