package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/logoquiz/internal/game"
)

//go:embed default_rules.yaml
var defaultRulesYAML []byte

// LoadRules loads the game rules.
// Search order: customPath -> ~/.logoquiz/rules.yaml -> ./configs/rules.yaml -> embedded default.
// Keys missing from a file keep their default values. An explicit customPath
// that cannot be read or parsed is an error; the other locations are skipped.
func LoadRules(customPath string) (game.Rules, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return game.Rules{}, fmt.Errorf("failed to read rules %s: %w", customPath, err)
		}
		rules, err := parseRules(data)
		if err != nil {
			return game.Rules{}, fmt.Errorf("failed to parse rules %s: %w", customPath, err)
		}
		return rules, nil
	}

	for _, p := range []string{userConfigPath("rules.yaml"), filepath.Join("configs", "rules.yaml")} {
		if p == "" {
			continue
		}
		if data, err := os.ReadFile(p); err == nil {
			if rules, err := parseRules(data); err == nil {
				return rules, nil
			}
		}
	}

	return parseRules(defaultRulesYAML)
}

// parseRules overlays data on the defaults and validates the result.
func parseRules(data []byte) (game.Rules, error) {
	rules := game.DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return game.Rules{}, err
	}
	if err := rules.Validate(); err != nil {
		return game.Rules{}, err
	}
	return rules, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".logoquiz", filename)
}
