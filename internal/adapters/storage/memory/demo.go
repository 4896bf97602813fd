package memory

import (
	"campus-dashboard/internal/domain/identity"
	"campus-dashboard/internal/domain/records"
)

// NewDemoSource trae datos de ejemplo para correr el server sin backend.
// Mezcla a propósito las formas de ownership que manda el backend real.
// Para el actor {id: 42, username: "plee"}: 2 cursos, 2 anuncios, 1 evento, 3 alumnos.
func NewDemoSource() *Source {
	s := NewSource()

	_ = s.SetRecords(records.CollectionCourses, []map[string]any{
		{"id": 1, "title": "Algorithms I", "facultyId": 42, "enrollments": []string{"s-100", "s-101"}},
		{"id": 2, "title": "Operating Systems", "faculty": identity.Ref{ID: "42"}, "enrollments": []string{"s-102"}},
		{"id": 3, "title": "Compilers", "faculty": identity.Ref{Username: "other"}, "enrollments": []string{"s-103"}},
		{"id": 4, "title": "Databases", "facultyId": "7"},
	})
	_ = s.SetRecords(records.CollectionAnnouncements, []map[string]any{
		{"id": 10, "title": "Midterm schedule", "createdBy": "42"},
		{"id": 11, "title": "Lab closed", "author": identity.Ref{Username: "plee"}},
		{"id": 12, "title": "Library hours", "createdBy": 7},
	})
	_ = s.SetRecords(records.CollectionEvents, []map[string]any{
		{"id": 20, "title": "Office hours", "createdBy": identity.Ref{ID: 42, Username: "plee"}},
		{"id": 21, "title": "Hackathon", "organizer": identity.Ref{Username: "other"}},
	})

	return s
}
