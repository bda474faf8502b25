package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tetraptych/etymoscope-kiro/pkg/buildinfo"
	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type wordResponse struct {
	Word         string   `json:"word"`
	Definition   string   `json:"definition"`
	RelatedWords []string `json:"relatedWords"`
}

type randomResponse struct {
	Word string `json:"word"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Words    int    `json:"words"`
	MaxDepth int    `json:"maxDepth"`
	Table    bool   `json:"table"`
}

// handleGraph serves GET /api/graph/{word}?depth=N.
//
// Depth defaults to DefaultDepth and is rejected, not clamped, when outside
// [1, MaxDepth]: silently serving a different graph than requested would be
// worse than a 400.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	if err := errors.ValidateWord(word); err != nil {
		writeCodedError(w, err)
		return
	}

	depth := DefaultDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidDepth, "depth must be an integer")
			return
		}
		depth = d
	}
	if err := errors.ValidateDepth(depth, s.engine.MaxDepth()); err != nil {
		writeCodedError(w, err)
		return
	}

	g, err := s.engine.GetGraph(r.Context(), word, depth)
	if err != nil {
		writeCodedError(w, err)
		return
	}
	if g.IsEmpty() {
		writeError(w, http.StatusNotFound, errors.ErrCodeWordNotFound, "unknown word: %s", word)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// handleWord serves GET /api/words/{word}.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	if err := errors.ValidateWord(word); err != nil {
		writeCodedError(w, err)
		return
	}

	entry, found := s.engine.GetEntry(r.Context(), word)
	if !found {
		writeError(w, http.StatusNotFound, errors.ErrCodeWordNotFound, "unknown word: %s", word)
		return
	}
	writeJSON(w, http.StatusOK, wordResponse{
		Word:         lexicon.Normalize(word),
		Definition:   entry.Definition,
		RelatedWords: entry.RelatedWords,
	})
}

// handleRandom serves GET /api/random. 404 only for an empty index.
func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	word, ok := s.engine.RandomWord(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, errors.ErrCodeNotFound, "word index is empty")
		return
	}
	writeJSON(w, http.StatusOK, randomResponse{Word: word})
}

// handleHealth serves GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, hasTable := s.engine.SamplingTable()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Version:  buildinfo.Version,
		Words:    s.engine.Index().Len(),
		MaxDepth: s.engine.MaxDepth(),
		Table:    hasTable,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errors.Code, format string, args ...any) {
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: fmt.Sprintf(format, args...),
	}})
}

// writeCodedError maps an error's code to an HTTP status.
func writeCodedError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidWord, errors.ErrCodeInvalidDepth, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeWordNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDataUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
