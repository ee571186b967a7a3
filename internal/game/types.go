// internal/game/types.go
//
// Core type definitions for the logo quiz state machine.
// Defines:
//   - Phase:   whether a round is waiting for an answer.
//   - State:   lives/level/streak/high score plus the active round.
//   - Round:   what a transition hands back to the presentation layer.
//   - Session: one player's state as kept by the store.

package game

import (
	"fmt"
	"image"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/logoquiz/internal/imagefx"
)

// Phase is the coarse state of a session.
// "Round resolved" and "game over" are momentary: they are reported on the
// returned Round and immediately followed by a new active round.
type Phase string

const (
	PhaseNotStarted  Phase = "not_started"
	PhaseRoundActive Phase = "round_active"
)

// Result is the outcome of a single guess.
type Result string

const (
	ResultNone    Result = ""
	ResultCorrect Result = "correct"
	ResultWrong   Result = "wrong"
)

// Rules are the tunable constants of the game.
type Rules struct {
	MaxLives      int                `yaml:"max_lives"`       // lives at the start of a session
	StreakToLevel int                `yaml:"streak_to_level"` // correct answers needed per level
	Options       int                `yaml:"options"`         // choices offered per round
	Difficulty    imagefx.Difficulty `yaml:"difficulty"`
}

// DefaultRules returns 4 lives, 3 correct answers per level and 6 options.
func DefaultRules() Rules {
	return Rules{
		MaxLives:      4,
		StreakToLevel: 3,
		Options:       6,
		Difficulty:    imagefx.DefaultDifficulty(),
	}
}

// Validate reports the first rule that cannot produce a playable game.
func (r Rules) Validate() error {
	switch {
	case r.MaxLives < 1:
		return fmt.Errorf("game: max_lives must be at least 1, got %d", r.MaxLives)
	case r.StreakToLevel < 1:
		return fmt.Errorf("game: streak_to_level must be at least 1, got %d", r.StreakToLevel)
	case r.Options < 1:
		return fmt.Errorf("game: options must be at least 1, got %d", r.Options)
	}
	return r.Difficulty.Validate()
}

// State is the full game state of one session.
// Transitions take a State by value and return a new one; they never
// mutate the State they were given.
type State struct {
	Phase     Phase
	Level     int                // starts at 1
	Lives     int                // 0..Rules.MaxLives
	Streak    int                // correct answers in the current level
	HighScore int                // best level reached this process, at least 1
	Used      mapset.Set[string] // targets shown in the current cycle
	Target    string             // logo to guess this round
	Original  image.Image        // unblurred Target, revealed after answering
	Options   []string           // shuffled choices, contains Target
}

// Active reports whether a round is awaiting an answer.
func (s State) Active() bool { return s.Phase == PhaseRoundActive }

// clone returns a copy whose Used set and Options slice are not shared with s.
func (s State) clone() State {
	used := mapset.New[string]()
	s.Used.Each(func(id string) { used.Put(id) })
	s.Used = used
	s.Options = append([]string(nil), s.Options...)
	return s
}

// Feedback describes the answer that produced a Round.
type Feedback struct {
	Result   Result
	LevelUp  bool
	GameOver bool
	Message  string // human-readable, e.g. "🎉 Correct! Well done!"
}

// Status holds the three banner strings shown next to the image.
type Status struct {
	Lives     string // "Lives: ❤️❤️❤️🖤"
	Level     string // "Level: 2"
	HighScore string // "High Score: 3"
}

// Round is the output payload of a transition.
type Round struct {
	Preview  image.Image // partial, blurred view of the new target
	Options  []string
	Feedback Feedback
	Status   Status
	Revealed image.Image // original of the round just answered; nil after Start
	Answer   string      // identifier of the round just answered; "" after Start
}

// Session is one player's game as kept by a store.
type Session struct {
	ID        string
	State     State
	Round     Round // last payload, replayed on reload
	CreatedAt time.Time
	UpdatedAt time.Time
}
