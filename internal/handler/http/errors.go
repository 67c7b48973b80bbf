// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoOwnerInContext means a handler behind auth found no owner id in
	// the request context.
	ErrNoOwnerInContext = errors.New("no owner in request context")

	// ErrInvalidQueryParameter is returned for a malformed since, max or
	// limit query parameter.
	ErrInvalidQueryParameter = errors.New("invalid query parameter")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidLimit is returned for a zero limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)
