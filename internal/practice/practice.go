// Package practice holds the tenant-owned training domain: students and
// everything recorded against them (workouts, exercises, goals, physical
// measurements, payments, workout logs). Every persistence call takes a
// tenant.Scope; the package never trusts entity payloads for tenant identity.
package practice

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound = errors.New("practice: not found")
	ErrConflict = errors.New("practice: already exists")
)

// ValidationError reports per-field input problems. Handlers render it as a
// 422 with the field map intact.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("validation failed:")
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%q", k, e.Fields[k])
	}
	return b.String()
}

// fieldErrors accumulates validation problems across checks so callers get
// every broken field in one response.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func trimmed(s string) string { return strings.TrimSpace(s) }
