// Package httputil provides HTTP helpers for the gridglob compile service.
//
// # Overview
//
// This package provides the response plumbing shared by every handler:
//
//   - [WriteJSON]: Encode a value as a JSON response
//   - [WriteError]: Encode a coded error as a JSON error body
//   - [StatusFor]: Map an error code to an HTTP status
//   - [LimitBody]: Cap the size of a request body
//
// # Error Bodies
//
// Errors are reported with the machine-readable code from pkg/errors so
// that clients can branch on it without parsing messages:
//
//	{"error": {"code": "NOT_FOUND", "message": "element \"Q\" not in tree"}}
//
// Input problems with a document (unknown elements, bad edges, cycles)
// map to 422; malformed requests map to 400; everything else is a 500.
package httputil
