package ownership

import "campus-dashboard/internal/domain/identity"

// Actor es el usuario autenticado (faculty) para el que se calculan las stats.
type Actor struct {
	ID       any
	Username string
}

// Owned lo implementan los registros que exponen referencias de ownership:
// FK directa (facultyId/createdBy) y/o referencias anidadas ({id, username}).
type Owned interface {
	OwnerRefs() []any
}

// Matcher compara registros contra un actor ya normalizado.
type Matcher struct {
	id       identity.Key
	username identity.Key
}

func NewMatcher(actor Actor) Matcher {
	return Matcher{
		id:       identity.Normalize(actor.ID),
		username: identity.Normalize(actor.Username),
	}
}

// Owns devuelve true si cualquier faceta de cualquier referencia del registro
// coincide con el id o el username del actor (OR entre fuentes).
func (m Matcher) Owns(rec Owned) bool {
	if rec == nil {
		return false
	}
	for _, ref := range rec.OwnerRefs() {
		for _, k := range identity.Facets(ref) {
			if m.matches(k) {
				return true
			}
		}
	}
	return false
}

func (m Matcher) matches(k identity.Key) bool {
	if k.IsAbsent() {
		return false
	}
	return (!m.id.IsAbsent() && k == m.id) || (!m.username.IsAbsent() && k == m.username)
}

func IsOwnedBy(rec Owned, actor Actor) bool {
	return NewMatcher(actor).Owns(rec)
}

// Filter devuelve los registros del actor, en el orden de entrada.
func Filter[T Owned](items []T, actor Actor) []T {
	m := NewMatcher(actor)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if m.Owns(it) {
			out = append(out, it)
		}
	}
	return out
}
