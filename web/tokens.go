package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/shopspring/decimal"

	errfmt "github.com/robinvdvleuten/osalex/errors"
	"github.com/robinvdvleuten/osalex/lexer"
	"github.com/robinvdvleuten/osalex/loader"
)

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// TokenJSON is one token in API responses.
type TokenJSON struct {
	Type   string           `json:"type"`
	Text   string           `json:"text"`
	Start  int              `json:"start"`
	End    int              `json:"end"`
	Line   int              `json:"line"`
	Column int              `json:"column"`
	Value  *decimal.Decimal `json:"value,omitempty"` // Only for numbers
}

// FileJSON is the token stream of one source.
type FileJSON struct {
	Filename string             `json:"filename"`
	Complete bool               `json:"complete"`
	Tokens   []TokenJSON        `json:"tokens"`
	Counts   map[string]int     `json:"counts"`
	Total    decimal.Decimal    `json:"numberTotal"`
	Errors   []errfmt.ErrorJSON `json:"errors"`
}

type TokensResponse struct {
	Files []FileJSON `json:"files"`
}

type TokenizeRequest struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	CommitSHA string `json:"commitSha,omitempty"`
	Files     int    `json:"files"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	files := len(s.result.Files)
	s.mu.RUnlock()

	writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   s.Version,
		CommitSHA: s.CommitSHA,
		Files:     files,
	})
}

// handleGetTokens serves the token streams of the loaded files. The optional
// "file" query parameter selects a single loaded file.
func (s *Server) handleGetTokens(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	files := s.result.Files
	s.mu.RUnlock()

	want := r.URL.Query().Get("file")
	if want != "" {
		absPath, err := filepath.Abs(want)
		if err != nil {
			http.Error(w, "invalid file: "+err.Error(), http.StatusBadRequest)
			return
		}

		var found *loader.File
		for _, f := range files {
			if f.Filename == absPath {
				found = f
				break
			}
		}
		if found == nil {
			http.Error(w, "file not loaded: access denied", http.StatusNotFound)
			return
		}
		files = []*loader.File{found}
	}

	resp := TokensResponse{Files: make([]FileJSON, 0, len(files))}
	for _, f := range files {
		resp.Files = append(resp.Files, fileJSON(f.Filename, f.Sequence, f.Err))
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// handleTokenize tokenizes a posted source. Lex errors are part of a
// successful response; only malformed requests are rejected.
func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)

	var req TokenizeRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			http.Error(w, "source too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, io.EOF):
			http.Error(w, "empty request body", http.StatusBadRequest)
		default:
			http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		}
		return
	}

	result, err := loader.New().LoadBytes(r.Context(), req.Filename, []byte(req.Source))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	f := result.Files[0]
	writeJSONResponse(w, http.StatusOK, fileJSON(f.Filename, f.Sequence, f.Err))
}

func fileJSON(filename string, seq *lexer.Sequence, lexErr error) FileJSON {
	out := FileJSON{
		Filename: filename,
		Tokens:   []TokenJSON{},
		Counts:   make(map[string]int),
		Errors:   []errfmt.ErrorJSON{},
	}

	if lexErr != nil {
		out.Errors = errfmt.NewJSONFormatter().FormatAllToSlice([]error{lexErr})
	}
	if seq == nil {
		return out
	}

	out.Complete = seq.Complete()
	for _, tok := range seq.Tokens {
		tj := TokenJSON{
			Type:   tok.Type.String(),
			Text:   tok.Text,
			Start:  tok.Start,
			End:    tok.End,
			Line:   tok.Line,
			Column: tok.Column,
		}
		if tok.Type == lexer.NUMBER {
			if v, err := lexer.NumberValue(tok); err == nil {
				tj.Value = &v
			}
		}
		out.Tokens = append(out.Tokens, tj)
	}

	for typ, n := range seq.Counts() {
		out.Counts[typ.String()] = n
	}

	if total, err := lexer.SumNumbers(seq.Tokens); err == nil {
		out.Total = total
	}

	return out
}
