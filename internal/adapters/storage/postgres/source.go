package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"campus-dashboard/internal/domain/records"
)

// Source implementa campus.Source leyendo directo de la base del campus (solo lectura).
// Las filas se devuelven con el mismo envelope que la API, así el dominio ve un solo formato.
//
// Columnas de ownership:
//   - faculty_id / created_by: text, FK directa (puede venir NULL)
//   - faculty / author / organizer: jsonb {id, username} (puede venir NULL)
type Source struct {
	db *sql.DB
}

func NewSource(db *sql.DB) *Source {
	return &Source{db: db}
}

type collectionQuery struct {
	sql             string
	fkName          string // nombre JSON de la FK directa
	refKey          string // nombre JSON de la referencia anidada
	withEnrollments bool
}

var queries = map[records.Collection]collectionQuery{
	records.CollectionCourses: {
		sql: `
			SELECT id::text, title, faculty_id, faculty, enrollments
			FROM courses
			ORDER BY id
		`,
		fkName:          "facultyId",
		refKey:          "faculty",
		withEnrollments: true,
	},
	records.CollectionAnnouncements: {
		sql: `
			SELECT id::text, title, created_by, author
			FROM announcements
			ORDER BY id
		`,
		fkName: "createdBy",
		refKey: "author",
	},
	records.CollectionEvents: {
		sql: `
			SELECT id::text, title, created_by, organizer
			FROM events
			ORDER BY id
		`,
		fkName: "createdBy",
		refKey: "organizer",
	},
}

func (s *Source) Fetch(ctx context.Context, c records.Collection) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("postgres source: nil db")
	}
	q, ok := queries[c]
	if !ok {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, q.sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]map[string]any, 0)
	for rows.Next() {
		var (
			id          string
			title       sql.NullString
			fk          sql.NullString
			ref         []byte
			enrollments []byte
		)

		dest := []any{&id, &title, &fk, &ref}
		if q.withEnrollments {
			dest = append(dest, &enrollments)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		item := map[string]any{"id": id}
		if title.Valid {
			item["title"] = title.String
		}
		if fk.Valid {
			item[q.fkName] = fk.String
		}
		if len(ref) > 0 {
			item[q.refKey] = json.RawMessage(ref)
		}
		if len(enrollments) > 0 {
			item["enrollments"] = json.RawMessage(enrollments)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records.Envelope(c, out)
}
