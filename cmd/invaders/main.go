// invaders is a terminal rendition of the classic fixed-screen shooter.
//
// Usage:
//
//	invaders play            - Jump straight into a run
//	invaders menu            - Interactive menu (play, high scores)
//	invaders list            - List registered games
//	invaders scores          - Show recorded high scores
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.invaders/scores.db)
//	--config <path>     - Load gameplay constants from a YAML file
//	--difficulty <name> - Apply a difficulty preset
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

// logger reports CLI-level warnings and errors.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "invaders",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Invaders - defend the terminal from descending waves",
	Long: `Invaders is a terminal take on the classic fixed-screen shooter.
Move along the floor, pick off the formation as it sweeps and descends,
and survive as the waves speed up level after level.

Available commands:
  play     - Play directly, skipping the menu
  menu     - Interactive menu (play, high scores)
  list     - Show registered games
  scores   - View high scores

Examples:
  invaders play
  invaders play --difficulty hard
  invaders menu
  invaders scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, classic")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
}
