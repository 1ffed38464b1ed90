// Package nirrevision checks a decoded stream's wire header against an
// accepted compatibility range before a caller trusts it. The wire
// format itself carries only two bare integers — compat and revision
// — so this package maps them onto a synthetic semver string and
// reuses an off-the-shelf constraint solver rather than hand-rolling
// range comparisons.
package nirrevision

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
)

// Header mirrors the three words a NIR stream starts with (magic is
// checked separately by the caller; it is not part of the version).
type Header struct {
	Magic    int32
	Compat   int32
	Revision int32
}

// HeaderVersion renders h as a semver string compat.revision.0, so a
// bump to Revision is a patch-level change and a bump to Compat is a
// minor-level one. There is no major axis in the wire format today;
// it is pinned to 0.
func HeaderVersion(h Header) string {
	return fmt.Sprintf("0.%d.%d", h.Compat, h.Revision)
}

// UnsupportedError reports a header whose compat/revision pair falls
// outside a Policy's accepted range.
type UnsupportedError struct {
	Header  Header
	Version string
	Policy  string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("nirrevision: stream version %s (compat=%d revision=%d) does not satisfy %s",
		e.Version, e.Header.Compat, e.Header.Revision, e.Policy)
}

// Policy is an accepted range of wire-header versions, expressed as a
// semver constraint (e.g. ">=0.1.0, <0.2.0" to accept compat 1 across
// any revision bump but reject a future compat 2).
type Policy struct {
	expr       string
	constraint *semver.Constraints
}

// NewPolicy parses expr as a semver constraint. An empty expr accepts
// any version, matching parseConstraint's behavior in the teacher's
// dependency resolver.
func NewPolicy(expr string) (*Policy, error) {
	if expr == "" {
		expr = ">=0.0.0"
	}

	c, err := semver.NewConstraint(expr)
	if err != nil {
		return nil, fmt.Errorf("nirrevision: invalid policy %q: %w", expr, err)
	}

	return &Policy{expr: expr, constraint: c}, nil
}

// Accepts reports whether h's compat/revision pair satisfies p. It
// returns an error only when h's rendered version string is itself
// unparseable as semver (it never is, by construction of HeaderVersion)
// — callers should treat a non-nil error as an internal invariant
// failure, not a normal rejection.
func (p *Policy) Accepts(h Header) (bool, error) {
	v, err := semver.NewVersion(HeaderVersion(h))
	if err != nil {
		return false, fmt.Errorf("nirrevision: %w", err)
	}

	return p.constraint.Check(v), nil
}

// Check is Accepts plus a ready-to-return *UnsupportedError on
// rejection, for callers (cmd/nirc) that want a single call before
// proceeding to decode or ship a stream.
func (p *Policy) Check(h Header) error {
	ok, err := p.Accepts(h)
	if err != nil {
		return err
	}

	if !ok {
		return &UnsupportedError{Header: h, Version: HeaderVersion(h), Policy: p.expr}
	}

	return nil
}

func (p *Policy) String() string { return p.expr }
