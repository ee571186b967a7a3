// internal/httpserver/routes_game.go
//
// Game routes, mounted under /game behind withSession.
//
// Endpoints:
//   - POST   /game/start  start (or restart) the session's game; keeps its high score.
//   - POST   /game/guess  {"choice": "..."}; answers the active round and opens the next.
//   - GET    /game        replay the last round payload (page reload).
//   - DELETE /game        forget the session, high score included.
//
// Images travel as PNG data URIs.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/logoquiz/internal/game"
	"github.com/robalobadob/logoquiz/internal/imagefx"
	"github.com/robalobadob/logoquiz/internal/store"
)

type guessReq struct {
	Choice string `json:"choice"`
}

type statsRes struct {
	Lives     int `json:"lives"`
	Level     int `json:"level"`
	Streak    int `json:"streak"`
	HighScore int `json:"highScore"`
}

// roundRes is the payload returned by every game endpoint.
type roundRes struct {
	Preview   string   `json:"preview"`
	Revealed  string   `json:"revealed,omitempty"`
	Answer    string   `json:"answer,omitempty"`
	Options   []string `json:"options"`
	Message   string   `json:"message"`
	Result    string   `json:"result"` // "correct" | "wrong" | ""
	LevelUp   bool     `json:"levelUp"`
	GameOver  bool     `json:"gameOver"`
	Lives     string   `json:"lives"`
	Level     string   `json:"level"`
	HighScore string   `json:"highScore"`
	Stats     statsRes `json:"stats"`
}

func newRoundRes(st game.State, rd game.Round) (roundRes, error) {
	preview, err := imagefx.DataURI(rd.Preview)
	if err != nil {
		return roundRes{}, err
	}
	revealed, err := imagefx.DataURI(rd.Revealed)
	if err != nil {
		return roundRes{}, err
	}
	return roundRes{
		Preview:   preview,
		Revealed:  revealed,
		Answer:    rd.Answer,
		Options:   rd.Options,
		Message:   rd.Feedback.Message,
		Result:    string(rd.Feedback.Result),
		LevelUp:   rd.Feedback.LevelUp,
		GameOver:  rd.Feedback.GameOver,
		Lives:     rd.Status.Lives,
		Level:     rd.Status.Level,
		HighScore: rd.Status.HighScore,
		Stats: statsRes{
			Lives:     st.Lives,
			Level:     st.Level,
			Streak:    st.Streak,
			HighScore: st.HighScore,
		},
	}, nil
}

// handleStart opens a fresh game for the session, preserving its high score.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		sess = &game.Session{ID: id, State: s.engine.NewState(1), CreatedAt: s.now()}
	case err != nil:
		log.Error().Err(err).Str("session", id).Msg("load session")
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}

	st, rd, err := s.engine.Start(sess.State)
	if err != nil {
		s.writeGameError(w, id, err)
		return
	}
	s.saveAndRespond(w, r, sess, st, rd)
}

// handleGuess answers the active round.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	id := sessionID(r)
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"no_active_round"}`, http.StatusConflict)
		return
	case err != nil:
		log.Error().Err(err).Str("session", id).Msg("load session")
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}

	st, rd, err := s.engine.Submit(sess.State, req.Choice)
	if err != nil {
		s.writeGameError(w, id, err)
		return
	}
	log.Debug().
		Str("session", id).
		Str("result", string(rd.Feedback.Result)).
		Bool("levelUp", rd.Feedback.LevelUp).
		Bool("gameOver", rd.Feedback.GameOver).
		Int("level", st.Level).
		Msg("guess")
	s.saveAndRespond(w, r, sess, st, rd)
}

// handleCurrent replays the last payload of the session.
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	sess, err := s.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return
	case err != nil:
		log.Error().Err(err).Str("session", id).Msg("load session")
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}
	s.respond(w, sess.State, sess.Round)
}

// handleReset drops the session.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.store.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Str("session", id).Msg("delete session")
		http.Error(w, `{"error":"delete_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) saveAndRespond(w http.ResponseWriter, r *http.Request, sess *game.Session, st game.State, rd game.Round) {
	sess.State = st
	sess.Round = rd
	sess.UpdatedAt = s.now()
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	s.respond(w, st, rd)
}

func (s *Server) respond(w http.ResponseWriter, st game.State, rd game.Round) {
	res, err := newRoundRes(st, rd)
	if err != nil {
		log.Error().Err(err).Msg("encode round")
		http.Error(w, `{"error":"encode_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// writeGameError maps engine errors to HTTP responses.
func (s *Server) writeGameError(w http.ResponseWriter, id string, err error) {
	var ae *game.AssetError
	switch {
	case errors.Is(err, game.ErrNoActiveRound):
		http.Error(w, `{"error":"no_active_round"}`, http.StatusConflict)
	case errors.As(err, &ae):
		log.Error().Err(err).Str("session", id).Str("logo", ae.Logo).Msg("logo asset missing")
		body, _ := json.Marshal(map[string]string{"error": "asset_not_found", "logo": ae.Logo})
		http.Error(w, string(body), http.StatusInternalServerError)
	default:
		log.Error().Err(err).Str("session", id).Msg("game transition")
		http.Error(w, `{"error":"game_failed"}`, http.StatusInternalServerError)
	}
}
