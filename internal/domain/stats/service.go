package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campus-dashboard/internal/domain/identity"
	"campus-dashboard/internal/domain/ownership"
	"campus-dashboard/internal/domain/records"
	"campus-dashboard/internal/ports/campus"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrFetchFailure = errors.New("fetch failure")
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// DefaultMaxBoards es cuántos actores guardan estado publicado a la vez.
const DefaultMaxBoards = 4096

// board es el estado publicado del dashboard de un actor.
type board struct {
	cycle   uint64 // último ciclo iniciado
	touched uint64 // para desalojar el menos usado
	state   State
	snap    Snapshot
}

type Service struct {
	src campus.Source
	log *zap.Logger
	now func() time.Time

	mu        sync.Mutex
	boards    map[string]*board
	maxBoards int
	seq       uint64

	// observe recibe cada transición publicada. Puede ser nil.
	observe func(actor string, st State, snap Snapshot)
}

func NewService(src campus.Source, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		src:    src,
		log:    log,
		now:       time.Now,
		boards:    make(map[string]*board),
		maxBoards: DefaultMaxBoards,
	}
}

// ComputeStats corre un ciclo completo para el actor. Nunca devuelve error:
// cualquier falla se loguea y el resultado es el snapshot en cero.
func (s *Service) ComputeStats(ctx context.Context, actor ownership.Actor) Snapshot {
	snap, _ := s.Compute(ctx, actor)
	return snap
}

// Compute es ComputeStats pero expone la causa de la falla (CLI, diagnóstico).
// El snapshot devuelto ya respeta la política todo-o-nada.
func (s *Service) Compute(ctx context.Context, actor ownership.Actor) (Snapshot, error) {
	key := actorKey(actor)
	cycle := s.begin(key)

	log := s.log.With(
		zap.String("cycle_id", uuid.NewString()),
		zap.String("actor", key),
	)
	started := s.now()

	snap, err := s.run(ctx, actor)
	elapsed := s.now().Sub(started)
	if err != nil {
		log.Warn("dashboard stats cycle failed",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
		)
		s.publish(key, cycle, StateFailed, Zero)
		return Zero, err
	}

	log.Debug("dashboard stats cycle ready",
		zap.Int("courses", snap.Courses),
		zap.Int("announcements", snap.Announcements),
		zap.Int("events", snap.Events),
		zap.Int("total_students", snap.TotalStudents),
		zap.Duration("elapsed", elapsed),
	)
	s.publish(key, cycle, StateReady, snap)
	return snap, nil
}

// State devuelve el último estado publicado para el actor (idle si nunca corrió).
func (s *Service) State(actor ownership.Actor) (State, Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[actorKey(actor)]
	if !ok {
		return StateIdle, Zero
	}
	return b.state, b.snap
}

func (s *Service) run(ctx context.Context, actor ownership.Actor) (Snapshot, error) {
	var (
		courses       []records.Course
		announcements []records.Announcement
		events        []records.Event
	)

	// Las tres colecciones son independientes; la primera falla cancela al resto.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raw, err := s.fetch(gctx, records.CollectionCourses)
		if err != nil {
			return err
		}
		courses, err = records.DecodeCourses(raw)
		return err
	})
	g.Go(func() error {
		raw, err := s.fetch(gctx, records.CollectionAnnouncements)
		if err != nil {
			return err
		}
		announcements, err = records.DecodeAnnouncements(raw)
		return err
	})
	g.Go(func() error {
		raw, err := s.fetch(gctx, records.CollectionEvents)
		if err != nil {
			return err
		}
		events, err = records.DecodeEvents(raw)
		return err
	})

	if err := g.Wait(); err != nil {
		return Zero, err
	}

	return Aggregate(
		ownership.Filter(courses, actor),
		ownership.Filter(announcements, actor),
		ownership.Filter(events, actor),
	), nil
}

func (s *Service) fetch(ctx context.Context, c records.Collection) ([]byte, error) {
	if s.src == nil {
		return nil, fmt.Errorf("%w: %s: no source configured", ErrFetchFailure, c)
	}
	raw, err := s.src.Fetch(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailure, c, err)
	}
	return raw, nil
}

// begin abre un ciclo nuevo: el estado pasa a loading y se descarta el resultado previo.
func (s *Service) begin(key string) uint64 {
	s.mu.Lock()
	b, ok := s.boards[key]
	if !ok {
		s.evictLocked()
		b = &board{}
		s.boards[key] = b
	}
	s.seq++
	b.touched = s.seq
	b.cycle++
	b.state = StateLoading
	b.snap = Zero
	cycle := b.cycle
	s.mu.Unlock()

	s.notify(key, StateLoading, Zero)
	return cycle
}

// publish solo aplica si cycle sigue siendo el último iniciado para el actor.
// Un ciclo viejo que termina tarde no pisa el resultado de uno más nuevo.
func (s *Service) publish(key string, cycle uint64, st State, snap Snapshot) bool {
	s.mu.Lock()
	b := s.boards[key]
	if b == nil || b.cycle != cycle {
		s.mu.Unlock()
		s.log.Debug("stale dashboard stats cycle discarded",
			zap.String("actor", key),
			zap.Uint64("cycle", cycle),
		)
		return false
	}
	s.seq++
	b.touched = s.seq
	b.state = st
	b.snap = snap
	s.mu.Unlock()

	s.notify(key, st, snap)
	return true
}

// evictLocked libera lugar para un actor nuevo sacando el board menos usado.
// Los boards con un ciclo en curso no se tocan; si todos lo tienen, el mapa crece.
func (s *Service) evictLocked() {
	if s.maxBoards <= 0 || len(s.boards) < s.maxBoards {
		return
	}

	var (
		victim string
		oldest uint64
		found  bool
	)
	for key, b := range s.boards {
		if b.state == StateLoading {
			continue
		}
		if !found || b.touched < oldest {
			victim, oldest, found = key, b.touched, true
		}
	}
	if found {
		delete(s.boards, victim)
		s.log.Debug("dashboard stats board evicted", zap.String("actor", victim))
	}
}

func (s *Service) notify(key string, st State, snap Snapshot) {
	if s.observe != nil {
		s.observe(key, st, snap)
	}
}

func actorKey(actor ownership.Actor) string {
	return string(identity.Normalize(actor.ID)) + "|" + string(identity.Normalize(actor.Username))
}
