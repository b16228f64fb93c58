// Package collision detects identifiers declared twice in one generated file.
package collision

import "fmt"

// Error reports an identifier claimed by two owners.
type Error struct {
	Ident    string
	Owner    string
	Previous string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s declares %s, already declared by %s", e.Owner, e.Ident, e.Previous)
}

// Tracker records which owner declared each identifier.
// It maintains the owner of every identifier and the order identifiers were declared in.
type Tracker struct {
	owners map[string]string // identifier → owner
	order  []string          // declaration order
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		owners: make(map[string]string),
		order:  make([]string, 0),
	}
}

// Reserve marks ident as taken by owner without reporting collisions, for names the file
// declares itself such as imports.
func (t *Tracker) Reserve(ident, owner string) {
	if _, exists := t.owners[ident]; !exists {
		t.order = append(t.order, ident)
	}
	t.owners[ident] = owner
}

// Track claims idents for owner. Either every identifier is recorded or, when one of them is
// already taken or repeated, none is and an *Error is returned.
func (t *Tracker) Track(owner string, idents ...string) error {
	for i, ident := range idents {
		if previous, exists := t.owners[ident]; exists {
			return &Error{Ident: ident, Owner: owner, Previous: previous}
		}
		for _, earlier := range idents[:i] {
			if earlier == ident {
				return &Error{Ident: ident, Owner: owner, Previous: owner}
			}
		}
	}

	for _, ident := range idents {
		t.owners[ident] = owner
		t.order = append(t.order, ident)
	}

	return nil
}

// Owner returns the owner of ident.
func (t *Tracker) Owner(ident string) (string, bool) {
	owner, ok := t.owners[ident]
	return owner, ok
}

// Identifiers returns every tracked identifier in declaration order.
func (t *Tracker) Identifiers() []string {
	return t.order
}

// Len returns the number of tracked identifiers.
func (t *Tracker) Len() int {
	return len(t.order)
}
