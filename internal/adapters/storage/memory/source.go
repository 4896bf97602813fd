package memory

import (
	"context"
	"errors"
	"sync"

	"campus-dashboard/internal/domain/records"
)

var (
	ErrNotFound = errors.New("not found")
)

// Source es un campus.Source en memoria: modo dev y tests.
// Guarda el payload crudo por colección, así se pueden simular respuestas malformadas.
type Source struct {
	mu       sync.RWMutex
	payloads map[records.Collection][]byte
	failures map[records.Collection]error
}

// NewSource arranca con las tres colecciones vacías (y válidas).
func NewSource() *Source {
	s := &Source{
		payloads: make(map[records.Collection][]byte),
		failures: make(map[records.Collection]error),
	}
	for _, c := range records.Collections {
		raw, _ := records.Envelope(c, nil)
		s.payloads[c] = raw
	}
	return s
}

func (s *Source) Fetch(ctx context.Context, c records.Collection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.failures[c]; ok {
		return nil, err
	}
	raw, ok := s.payloads[c]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// SetPayload reemplaza la respuesta cruda de una colección y limpia fallas previas.
func (s *Source) SetPayload(c records.Collection, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(raw))
	copy(cp, raw)
	s.payloads[c] = cp
	delete(s.failures, c)
}

// SetRecords arma el envelope { success: true, <c>: items }.
func (s *Source) SetRecords(c records.Collection, items any) error {
	raw, err := records.Envelope(c, items)
	if err != nil {
		return err
	}
	s.SetPayload(c, raw)
	return nil
}

// Fail hace que Fetch(c) devuelva err hasta el próximo SetPayload/SetRecords.
func (s *Source) Fail(c records.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[c] = err
}
