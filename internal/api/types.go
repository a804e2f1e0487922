// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package api

// GenerateRequest is the body of POST /v1/passwords. Omitted fields take the
// server defaults.
type GenerateRequest struct {
	Length  *int     `json:"length,omitempty"`
	Classes []string `json:"classes,omitempty"`
	Exclude *string  `json:"exclude,omitempty"`
	Count   *int     `json:"count,omitempty"`
}

// GenerateResponse is returned on success.
type GenerateResponse struct {
	RequestID string   `json:"request_id"`
	Passwords []string `json:"passwords"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
}

// ClassInfo describes one character class in GET /v1/classes.
type ClassInfo struct {
	Name     string `json:"name"`
	Alphabet string `json:"alphabet"`
}
