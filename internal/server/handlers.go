package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/leapstack-labs/cxql/pkg/ast"
	"github.com/leapstack-labs/cxql/pkg/format"
	"github.com/leapstack-labs/cxql/pkg/parser"
)

// ErrorJSON is a syntax error in API responses.
type ErrorJSON struct {
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Offset   int      `json:"offset"`
	Expected []string `json:"expected,omitempty"`
	Found    string   `json:"found,omitempty"`
	Message  string   `json:"message"`
}

// ParseResponse is the body returned by POST /v1/parse.
type ParseResponse struct {
	OK     bool           `json:"ok"`
	Tree   map[string]any `json:"tree"`
	Errors []ErrorJSON    `json:"errors"`
}

// FormatErrorResponse is the body returned by POST /v1/format when the
// source does not parse.
type FormatErrorResponse struct {
	Errors []ErrorJSON `json:"errors"`
}

func errorsJSON(errs parser.ErrorList) []ErrorJSON {
	out := make([]ErrorJSON, 0, len(errs))
	for _, e := range errs {
		out = append(out, ErrorJSON{
			Line:     e.Pos.Line,
			Column:   e.Pos.Column,
			Offset:   e.Pos.Offset,
			Expected: e.Expected,
			Found:    e.Found,
			Message:  e.Message(),
		})
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	src, ok := readSource(w, r)
	if !ok {
		return
	}

	prog, errs := parser.ParseProgram(src)
	writeJSON(w, http.StatusOK, ParseResponse{
		OK:     len(errs) == 0,
		Tree:   ast.ToMap(prog),
		Errors: errorsJSON(errs),
	})
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	indent := s.indent
	if v := r.URL.Query().Get("indent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 8 {
			http.Error(w, "indent must be an integer between 1 and 8", http.StatusBadRequest)
			return
		}
		indent = n
	}

	src, ok := readSource(w, r)
	if !ok {
		return
	}

	prog, errs := parser.ParseProgram(src)
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, FormatErrorResponse{Errors: errorsJSON(errs)})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, format.Program(prog, format.WithIndent(indent)))
}

func readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return "", false
	}
	return string(body), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
