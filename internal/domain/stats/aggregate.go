package stats

import "campus-dashboard/internal/domain/records"

// Snapshot es el resultado de un ciclo. Es un valor: el siguiente ciclo lo reemplaza.
type Snapshot struct {
	Courses       int `json:"courses"`
	Announcements int `json:"announcements"`
	Events        int `json:"events"`
	TotalStudents int `json:"totalStudents"`
}

// Zero es lo que publica un ciclo fallido.
var Zero = Snapshot{}

// Aggregate reduce los conjuntos ya filtrados por ownership.
func Aggregate(courses []records.Course, announcements []records.Announcement, events []records.Event) Snapshot {
	students := 0
	for _, c := range courses {
		students += c.StudentCount()
	}

	return Snapshot{
		Courses:       len(courses),
		Announcements: len(announcements),
		Events:        len(events),
		TotalStudents: students,
	}
}
