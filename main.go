// logoquiz serves the logo detector quiz over HTTP.
//
// Usage:
//
//	logoquiz                    - Same as serve
//	logoquiz serve              - Start the JSON API
//	logoquiz logos              - List the logos in the catalog
//	logoquiz preview <logo>     - Write the transformed image of a logo to a PNG
//
// Global flags:
//
//	--logos <dir>   - Logo directory (default: embedded sample logos)
//	--rules <file>  - Game rules YAML
//	--seed <value>  - RNG seed for reproducible rounds
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/logoquiz/internal/catalog"
	"github.com/robalobadob/logoquiz/internal/config"
	"github.com/robalobadob/logoquiz/internal/game"
	"github.com/robalobadob/logoquiz/internal/random"
)

var (
	// Global flags
	flagLogoDir string
	flagRules   string
	flagSeed    int64

	// Filled by setup before any command runs.
	cfg config.Env
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logoquiz",
	Short: "Logo Detector - guess the logo from a cropped, blurred piece",
	Long: `Logo Detector shows a small, blurred piece of a logo and asks which
logo it is. Every three correct answers the piece gets smaller and
blurrier; four wrong answers end the game.

Available commands:
  serve    - Start the JSON API (default)
  logos    - List the logos in the catalog
  preview  - Render a logo the way a given level shows it

Examples:
  logoquiz
  logoquiz serve --port 8080
  logoquiz logos --logos ./logos
  logoquiz preview aurora --level 4 --seed 42`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runServe,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagLogoDir, "logos", "", "Logo directory (empty = LOGO_DIR or embedded sample logos)")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Game rules YAML (empty = RULES_FILE or search order)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = SEED or random)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(logosCmd)
	rootCmd.AddCommand(previewCmd)
}

// setup loads the environment, configures logging and fills unset flags
// from it.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if flagLogoDir == "" {
		flagLogoDir = cfg.LogoDir
	}
	if flagRules == "" {
		flagRules = cfg.RulesFile
	}
	if flagSeed == 0 {
		flagSeed = cfg.Seed
	}
	return nil
}

// openCatalog opens --logos, or the embedded sample set when it is empty.
func openCatalog() (*catalog.Catalog, error) {
	if flagLogoDir == "" {
		return catalog.Embedded()
	}
	return catalog.Open(flagLogoDir)
}

// newSource returns a source for --seed, drawing a fresh seed when it is 0.
func newSource() (*random.Locked, error) {
	seed := flagSeed
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return nil, err
		}
	}
	log.Debug().Int64("seed", seed).Msg("random source")
	return random.NewLocked(random.New(seed)), nil
}

// newEngine wires catalog, rules and randomness.
func newEngine() (*game.Engine, error) {
	cat, err := openCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load logos: %w", err)
	}
	rules, err := config.LoadRules(flagRules)
	if err != nil {
		return nil, err
	}
	rng, err := newSource()
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("logos", cat.Len()).
		Int("maxLives", rules.MaxLives).
		Int("streakToLevel", rules.StreakToLevel).
		Msg("engine ready")
	return game.NewEngine(cat, rules, rng), nil
}
