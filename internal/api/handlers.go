// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/holomush/passgen/internal/password"
	"github.com/holomush/passgen/pkg/errutil"
)

// API-level error codes. Generation errors keep their password.Code* codes.
const (
	CodeBadRequest    = "API_BAD_REQUEST"
	CodeLimitExceeded = "API_LIMIT_EXCEEDED"

	// codeUnknown labels failed generations whose error carries no code.
	codeUnknown = "UNKNOWN"
)

// HeaderRequestID carries the request ULID in both directions.
const HeaderRequestID = "X-Request-ID"

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id := requestID(r.Header.Get(HeaderRequestID)).String()
	w.Header().Set(HeaderRequestID, id)

	ctx, span := s.tracer.Start(r.Context(), "api.GeneratePasswords")
	defer span.End()
	span.SetAttributes(attribute.String("request_id", id))

	req, count, err := s.decodeRequest(w, r)
	if err != nil {
		s.fail(ctx, w, id, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, errutil.Code(err))
		return
	}
	span.SetAttributes(
		attribute.Int("password.length", req.Length),
		attribute.Int("password.count", count),
		attribute.String("password.classes", req.Classes.String()),
	)

	passwords, err := s.generate(req, count)
	if err != nil {
		s.fail(ctx, w, id, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, errutil.Code(err))
		return
	}

	s.opts.Logger.InfoContext(ctx, "generated passwords",
		"request_id", id,
		"count", count,
		"length", req.Length,
		"classes", req.Classes.String(),
	)
	writeJSON(w, http.StatusOK, GenerateResponse{RequestID: id, Passwords: passwords})
}

// generate builds count passwords, recording every attempt. The first
// failure aborts the batch and nothing is returned.
func (s *Server) generate(req password.Request, count int) ([]string, error) {
	passwords := make([]string, 0, count)
	for range count {
		pw, err := s.opts.Generator.Generate(req)
		if err != nil {
			outcome := errutil.Code(err)
			if outcome == "" {
				outcome = codeUnknown
			}
			s.opts.Recorder.RecordGeneration(outcome, req.Length)
			return nil, err
		}
		s.opts.Recorder.RecordGeneration("", req.Length)
		passwords = append(passwords, pw)
	}
	return passwords, nil
}

func (s *Server) handleClasses(w http.ResponseWriter, _ *http.Request) {
	classes := make([]ClassInfo, 0, len(password.Classes()))
	for _, c := range password.Classes() {
		classes = append(classes, ClassInfo{Name: c.String(), Alphabet: c.Alphabet()})
	}
	writeJSON(w, http.StatusOK, classes)
}

// decodeRequest merges the body over the server defaults and applies limits.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (password.Request, int, error) {
	var body GenerateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return password.Request{}, 0, oops.Code(CodeBadRequest).Wrapf(err, "invalid request body")
	}

	req := s.opts.Defaults
	count := s.opts.DefaultCount

	if body.Length != nil {
		req.Length = *body.Length
	}
	if body.Classes != nil {
		classes, err := password.ParseClassSet(body.Classes)
		if err != nil {
			return password.Request{}, 0, err
		}
		req.Classes = classes
	}
	if body.Exclude != nil {
		req.Exclude = password.NewCharSet(*body.Exclude)
	}
	if body.Count != nil {
		count = *body.Count
	}

	if req.Length > s.opts.MaxLength {
		return password.Request{}, 0, oops.Code(CodeLimitExceeded).
			With("length", req.Length).
			With("max_length", s.opts.MaxLength).
			Errorf("length exceeds the server maximum of %d", s.opts.MaxLength)
	}
	if count < 1 || count > s.opts.MaxCount {
		return password.Request{}, 0, oops.Code(CodeLimitExceeded).
			With("count", count).
			With("max_count", s.opts.MaxCount).
			Errorf("count must be between 1 and %d", s.opts.MaxCount)
	}
	return req, count, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	switch errutil.Code(err) {
	case password.CodeNoUsableClass, password.CodeLengthTooShort:
		return http.StatusUnprocessableEntity
	case password.CodeInvalidLength, password.CodeUnknownClass, CodeBadRequest, CodeLimitExceeded:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(ctx context.Context, w http.ResponseWriter, id string, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		errutil.LogError(ctx, s.opts.Logger, "password generation failed", err)
		msg = http.StatusText(status)
	} else {
		s.opts.Logger.InfoContext(ctx, "rejected password request",
			"request_id", id,
			"code", errutil.Code(err),
			"status", status,
		)
	}
	writeJSON(w, status, ErrorResponse{RequestID: id, Error: msg, Code: errutil.Code(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // client may disconnect
	json.NewEncoder(w).Encode(v)
}
