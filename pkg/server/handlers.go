package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/webpaste/pkg/errors"
	"github.com/matzehuels/webpaste/pkg/pipeline"
	"github.com/matzehuels/webpaste/pkg/transform"
)

// HeaderCache reports whether a clean was served from the cache.
const HeaderCache = "X-Webpaste-Cache"

// cleanRequest is the JSON form of a clean request.
type cleanRequest struct {
	HTML string   `json:"html"`
	Skip []string `json:"skip,omitempty"`
}

// cleanResponse is the JSON form of a clean response.
type cleanResponse struct {
	HTML   string                 `json:"html"`
	Cached bool                   `json:"cached"`
	Rules  []transform.RuleResult `json:"rules"`
}

// errorResponse is the body of every error response.
type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	req, status, err := s.decodeClean(w, r)
	if err != nil {
		writeError(w, r, status, string(codeOf(err)), errors.UserMessage(err))
		return
	}

	opts := pipeline.Options{
		Skip:     req.Skip,
		MaxBytes: int(s.cfg.MaxBodyBytes),
		CacheTTL: s.cfg.CacheTTL,
		Refresh:  isTrue(r.URL.Query().Get("refresh")),
		Logger:   s.cfg.Logger,
	}
	res, err := s.runner.Clean(r.Context(), req.HTML, opts)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.cfg.Logger.Error("clean failed", "err", err, "request_id", RequestIDFromContext(r.Context()))
		}
		writeError(w, r, status, string(codeOf(err)), errors.UserMessage(err))
		return
	}

	if res.CacheHit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}

	if acceptsJSON(r) {
		writeJSON(w, http.StatusOK, cleanResponse{
			HTML:   res.HTML,
			Cached: res.CacheHit,
			Rules:  res.Report.Rules,
		})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, res.HTML)
}

// decodeClean reads the request body in any supported form. On failure it
// returns the HTTP status to answer with.
func (s *Server) decodeClean(w http.ResponseWriter, r *http.Request) (cleanRequest, int, error) {
	var req cleanRequest

	mediaType := "text/html"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return req, http.StatusUnsupportedMediaType,
				errors.Wrap(errors.ErrCodeInvalidFormat, err, "bad Content-Type")
		}
		mediaType = mt
	}

	// The JSON envelope adds a little to the fragment, so allow for it.
	limit := s.cfg.MaxBodyBytes
	if mediaType == "application/json" {
		limit += 4096
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return req, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", s.cfg.MaxBodyBytes)
		}
		return req, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}

	switch mediaType {
	case "application/json":
		if err := json.Unmarshal(body, &req); err != nil {
			return req, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON body")
		}
	case "text/html", "text/plain":
		req.HTML = string(body)
	default:
		return req, http.StatusUnsupportedMediaType,
			errors.New(errors.ErrCodeInvalidFormat, "unsupported Content-Type %s", mediaType)
	}
	return req, 0, nil
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	switch codeOf(err) {
	case errors.ErrCodeParseFailure:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeOf(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return errors.ErrCodeInternal
}

func acceptsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mt == "application/json" {
			return true
		}
	}
	return false
}

func isTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFromContext(r.Context()),
	})
}
