package records

import "encoding/json"

// Collection identifica cada colección que expone el backend del campus.
type Collection string

const (
	CollectionCourses       Collection = "courses"
	CollectionAnnouncements Collection = "announcements"
	CollectionEvents        Collection = "events"
)

// Collections en el orden en que el dashboard las muestra.
var Collections = []Collection{CollectionCourses, CollectionAnnouncements, CollectionEvents}

// Los campos de ownership quedan como any: el backend los manda como número,
// string u objeto {id, username} según el servicio. Se decodifican con UseNumber.
// Title también es any: no se lee, y un tipo inesperado no debe tumbar el payload.

type Course struct {
	ID          any               `json:"id"`
	Title       any               `json:"title,omitempty"`
	FacultyID   any               `json:"facultyId,omitempty"`
	Faculty     any               `json:"faculty,omitempty"`
	Enrollments []json.RawMessage `json:"enrollments,omitempty"`
}

func (c Course) OwnerRefs() []any {
	return []any{c.FacultyID, c.Faculty}
}

// StudentCount es el número de inscripciones; nil cuenta como 0.
func (c Course) StudentCount() int {
	return len(c.Enrollments)
}

type Announcement struct {
	ID        any    `json:"id"`
	Title     any `json:"title,omitempty"`
	CreatedBy any `json:"createdBy,omitempty"`
	Author    any `json:"author,omitempty"`
}

func (a Announcement) OwnerRefs() []any {
	return []any{a.CreatedBy, a.Author}
}

type Event struct {
	ID        any    `json:"id"`
	Title     any `json:"title,omitempty"`
	CreatedBy any `json:"createdBy,omitempty"`
	Organizer any `json:"organizer,omitempty"`
}

func (e Event) OwnerRefs() []any {
	return []any{e.CreatedBy, e.Organizer}
}
