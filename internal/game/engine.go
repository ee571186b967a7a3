// internal/game/engine.go
//
// State machine for a logo quiz session.
// Responsibilities:
//   - Start a fresh session (keeping the high score) and its first round.
//   - Apply an answer: streak or life change, then game over / level up.
//   - Build every round: pick a target, load it, render the preview, sample options.
//
// Notes:
//   - Game over is checked before level up; a pending level up is discarded.
//   - A choice that is not among the options is simply wrong.
//   - A target whose file cannot be found fails the transition; the input
//     state is returned unchanged and the caller surfaces the error.

package game

import (
	"errors"
	"fmt"
	"image"

	"github.com/rs/zerolog/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/logoquiz/internal/catalog"
	"github.com/robalobadob/logoquiz/internal/imagefx"
	"github.com/robalobadob/logoquiz/internal/random"
)

var (
	ErrNoActiveRound = errors.New("game: no active round")
	ErrAssetMissing  = errors.New("game: logo asset missing")
)

// AssetError reports a target whose image could not be loaded.
// It matches ErrAssetMissing and unwraps to the catalog error.
type AssetError struct {
	Logo string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrAssetMissing, e.Logo, e.Err)
}

func (e *AssetError) Is(target error) bool { return target == ErrAssetMissing }

func (e *AssetError) Unwrap() error { return e.Err }

// Engine runs transitions against a catalog. It holds no per-session state.
type Engine struct {
	cat   *catalog.Catalog
	rules Rules
	rng   random.Source
}

// NewEngine returns an engine; rng must be safe for the engine's callers
// (wrap it in random.Locked when serving concurrent sessions).
func NewEngine(cat *catalog.Catalog, rules Rules, rng random.Source) *Engine {
	return &Engine{cat: cat, rules: rules, rng: rng}
}

// Rules returns the rules the engine plays by.
func (e *Engine) Rules() Rules { return e.rules }

// Catalog returns the logos the engine draws from.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// NewState returns a session at level 1 with full lives.
func (e *Engine) NewState(highScore int) State {
	return State{
		Phase:     PhaseNotStarted,
		Level:     1,
		Lives:     e.rules.MaxLives,
		HighScore: max(1, highScore),
		Used:      mapset.New[string](),
	}
}

// Start resets prev to a fresh session, keeping its high score, and opens
// the first round.
func (e *Engine) Start(prev State) (State, Round, error) {
	next, err := e.beginRound(e.NewState(prev.HighScore))
	if err != nil {
		return prev, Round{}, err
	}
	return next, Round{
		Preview: e.preview(next),
		Options: next.Options,
		Status:  StatusOf(next, e.rules.MaxLives),
	}, nil
}

// Submit applies choice to the active round of st and opens the next round.
//
// Order of evaluation:
//   - correct → streak+1; wrong → lives-1.
//   - lives <= 0 → high score updated, session restarts at level 1.
//   - else streak reached → level+1, streak reset, high score updated.
func (e *Engine) Submit(st State, choice string) (State, Round, error) {
	if !st.Active() {
		return st, Round{}, ErrNoActiveRound
	}

	next := st.clone()
	fb := Feedback{}
	if choice == st.Target {
		next.Streak++
		fb.Result, fb.Message = ResultCorrect, msgCorrect
	} else {
		next.Lives--
		fb.Result, fb.Message = ResultWrong, fmt.Sprintf(msgWrong, st.Target)
	}

	switch {
	case next.Lives <= 0:
		hs := max(next.HighScore, next.Level)
		next = e.NewState(hs)
		fb.GameOver = true
		fb.Message += msgGameOver
	case next.Streak >= e.rules.StreakToLevel:
		next.Level++
		next.Streak = 0
		next.HighScore = max(next.HighScore, next.Level)
		fb.LevelUp = true
		fb.Message += fmt.Sprintf(msgLevelUp, next.Level)
	}

	next, err := e.beginRound(next)
	if err != nil {
		return st, Round{}, err
	}
	return next, Round{
		Preview:  e.preview(next),
		Options:  next.Options,
		Feedback: fb,
		Status:   StatusOf(next, e.rules.MaxLives),
		Revealed: st.Original,
		Answer:   st.Target,
	}, nil
}

// beginRound picks and loads a new target for st and samples its options.
func (e *Engine) beginRound(st State) (State, error) {
	next := st.clone()

	target, ok := e.cat.PickNext(e.rng, next.Used)
	if !ok {
		log.Debug().Int("logos", e.cat.Len()).Msg("every logo shown; starting a new cycle")
		next.Used = mapset.New[string]()
		target, _ = e.cat.PickNext(e.rng, next.Used)
	}

	img, err := e.cat.Load(target)
	if err != nil {
		return st, &AssetError{Logo: target, Err: err}
	}

	next.Used.Put(target)
	next.Phase = PhaseRoundActive
	next.Target = target
	next.Original = imagefx.Flatten(img)
	next.Options = e.cat.SampleOptions(e.rng, target, e.rules.Options)
	return next, nil
}

// preview renders the partial view of st's target at st's level.
func (e *Engine) preview(st State) image.Image {
	return imagefx.Transform(st.Original, st.Level, e.rules.Difficulty, e.rng)
}
