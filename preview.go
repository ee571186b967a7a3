package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/logoquiz/internal/catalog"
	"github.com/robalobadob/logoquiz/internal/config"
	"github.com/robalobadob/logoquiz/internal/imagefx"
	"github.com/robalobadob/logoquiz/internal/random"
)

var (
	flagLevel int
	flagOut   string
)

var previewCmd = &cobra.Command{
	Use:   "preview <logo>",
	Short: "Render a logo the way a given level shows it",
	Long: `Crops, resizes and blurs a logo exactly like a round at --level would,
and writes the result as PNG. Useful for tuning the rules file.

Examples:
  logoquiz preview aurora
  logoquiz preview aurora --level 6 --seed 7 --out aurora-6.png`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to render (1 = largest piece, no blur)")
	previewCmd.Flags().StringVar(&flagOut, "out", "", "Output file (default <logo>-L<level>.png)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	rules, err := config.LoadRules(flagRules)
	if err != nil {
		return err
	}
	rng, err := newSource()
	if err != nil {
		return err
	}

	out := flagOut
	if out == "" {
		out = fmt.Sprintf("%s-L%d.png", args[0], flagLevel)
	}
	if err := writePreview(cat, args[0], flagLevel, rules.Difficulty, rng, out); err != nil {
		return err
	}
	d := rules.Difficulty
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (level %d, crop %.2f, blur %d)\n",
		out, flagLevel, d.Fraction(flagLevel), d.BlurRadius(flagLevel))
	return nil
}

// writePreview renders logo id at level into the PNG file path.
func writePreview(cat *catalog.Catalog, id string, level int, d imagefx.Difficulty, rng random.Source, path string) error {
	if level < 1 {
		return fmt.Errorf("level must be at least 1, got %d", level)
	}
	img, err := cat.Load(id)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := imagefx.EncodePNG(f, imagefx.Transform(img, level, d, rng)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
