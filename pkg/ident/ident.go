// Package ident generates identifiers for the containers gridglob
// synthesizes while applying constraints.
//
// Two strategies are available:
//
//   - [Sequential] derives readable IDs from a hint ("grid-A-B") and appends
//     a numeric suffix on collision ("grid-A-B__2"). Output is deterministic,
//     which keeps compiled documents diffable and cacheable.
//   - [Random] returns "grid-" followed by a random UUID, for callers that
//     merge compiled fragments from several sources.
//
// Both consult a taken predicate (usually [element.Tree.HasID]) so that a
// generated ID never collides with an existing element.
//
// [element.Tree.HasID]: github.com/matzehuels/gridglob/pkg/element.Tree.HasID
package ident

import (
	"fmt"

	"github.com/google/uuid"

	errs "github.com/matzehuels/gridglob/pkg/errors"
)

// Style names accepted by [New].
const (
	StyleSequential = "sequential"
	StyleUUID       = "uuid"
)

// Generator produces a fresh identifier. The hint describes what is being
// created and may be ignored; taken reports identifiers already in use.
type Generator interface {
	Next(hint string, taken func(string) bool) string
}

// New returns the generator for a style name. An empty style selects
// [StyleSequential].
func New(style string) (Generator, error) {
	switch style {
	case "", StyleSequential:
		return Sequential{}, nil
	case StyleUUID:
		return Random{}, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown id style %q (want %s or %s)",
			style, StyleSequential, StyleUUID)
	}
}

// Sequential builds IDs from the hint itself.
type Sequential struct{}

// Next returns hint if it is free, otherwise hint__2, hint__3, and so on.
func (Sequential) Next(hint string, taken func(string) bool) string {
	if hint == "" {
		hint = "grid"
	}
	id := hint
	for i := 2; taken != nil && taken(id); i++ {
		id = fmt.Sprintf("%s__%d", hint, i)
	}
	return id
}

// Random builds IDs from random UUIDs.
type Random struct{}

// Next returns "grid-<uuid>", drawing again in the unlikely case of a
// collision.
func (Random) Next(_ string, taken func(string) bool) string {
	for {
		id := "grid-" + uuid.NewString()
		if taken == nil || !taken(id) {
			return id
		}
	}
}
