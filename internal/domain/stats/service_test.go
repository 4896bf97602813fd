package stats

import (
	"context"
	"errors"
	"sync"
	"testing"

	"campus-dashboard/internal/adapters/storage/memory"
	"campus-dashboard/internal/domain/ownership"
	"campus-dashboard/internal/domain/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var plee = ownership.Actor{ID: 42, Username: "plee"}

func scenarioSource(t *testing.T) *memory.Source {
	t.Helper()

	src := memory.NewSource()
	src.SetPayload(records.CollectionCourses, []byte(`{
		"success": true,
		"courses": [
			{"id": 1, "facultyId": 42, "enrollments": ["a", "b"]},
			{"id": 2, "faculty": {"id": "42"}, "enrollments": []},
			{"id": 3, "faculty": {"username": "other"}, "enrollments": ["x"]}
		]
	}`))
	src.SetPayload(records.CollectionAnnouncements, []byte(`{
		"success": true,
		"announcements": [
			{"id": 10, "createdBy": "42"},
			{"id": 11, "author": {"username": "plee"}},
			{"id": 12, "createdBy": 7}
		]
	}`))
	src.SetPayload(records.CollectionEvents, []byte(`{
		"success": true,
		"events": [
			{"id": 20, "createdBy": {"id": 42, "username": "plee"}},
			{"id": 21}
		]
	}`))
	return src
}

func TestComputeStats_EndToEndScenario(t *testing.T) {
	svc := NewService(scenarioSource(t), zap.NewNop())

	got := svc.ComputeStats(context.Background(), plee)
	assert.Equal(t, Snapshot{Courses: 2, Announcements: 2, Events: 1, TotalStudents: 2}, got)

	st, snap := svc.State(plee)
	assert.Equal(t, StateReady, st)
	assert.Equal(t, got, snap)
}

func TestComputeStats_ActorByUsernameOnly(t *testing.T) {
	svc := NewService(scenarioSource(t), zap.NewNop())

	got := svc.ComputeStats(context.Background(), ownership.Actor{Username: "plee"})
	// solo los registros con referencia por username
	assert.Equal(t, Snapshot{Courses: 0, Announcements: 1, Events: 1, TotalStudents: 0}, got)
}

func TestComputeStats_NumericFormsAndTitles(t *testing.T) {
	src := memory.NewSource()
	src.SetPayload(records.CollectionCourses, []byte(`{
		"success": true,
		"courses": [
			{"id": 1, "title": 101, "facultyId": 42.0, "enrollments": ["a"]},
			{"id": 2, "facultyId": 4.2e1}
		]
	}`))
	src.SetPayload(records.CollectionAnnouncements, []byte(`{
		"success": true,
		"announcements": [{"id": 10, "title": 2024, "createdBy": 42}]
	}`))

	svc := NewService(src, zap.NewNop())

	snap, err := svc.Compute(context.Background(), plee)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Courses: 2, Announcements: 1, Events: 0, TotalStudents: 1}, snap)
}

func TestComputeStats_AllOrNothing(t *testing.T) {
	src := scenarioSource(t)
	src.Fail(records.CollectionAnnouncements, errors.New("connection reset"))

	svc := NewService(src, zap.NewNop())

	snap, err := svc.Compute(context.Background(), plee)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailure)
	assert.Equal(t, Zero, snap)

	st, published := svc.State(plee)
	assert.Equal(t, StateFailed, st)
	assert.Equal(t, Zero, published)
}

func TestCompute_FailureLoggedOnceWithCycleID(t *testing.T) {
	src := scenarioSource(t)
	src.Fail(records.CollectionCourses, errors.New("timeout"))

	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewService(src, zap.New(core))

	_, err := svc.Compute(context.Background(), plee)
	require.Error(t, err)

	entries := logs.FilterMessage("dashboard stats cycle failed").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.NotEmpty(t, ctx["cycle_id"])
	assert.Equal(t, "42|plee", ctx["actor"])
}

func TestComputeStats_ShapeMismatchIsFailure(t *testing.T) {
	src := scenarioSource(t)
	src.SetPayload(records.CollectionEvents, []byte(`{"success": true, "items": []}`))

	svc := NewService(src, zap.NewNop())

	snap, err := svc.Compute(context.Background(), plee)
	assert.ErrorIs(t, err, records.ErrShapeMismatch)
	assert.Equal(t, Zero, snap)
	assert.Equal(t, Zero, svc.ComputeStats(context.Background(), plee))
}

func TestComputeStats_NilSource(t *testing.T) {
	svc := NewService(nil, nil)

	snap, err := svc.Compute(context.Background(), plee)
	assert.ErrorIs(t, err, ErrFetchFailure)
	assert.Equal(t, Zero, snap)
}

func TestComputeStats_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(scenarioSource(t), zap.NewNop())
	snap, err := svc.Compute(ctx, plee)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Zero, snap)
}

func TestComputeStats_Idempotent(t *testing.T) {
	svc := NewService(scenarioSource(t), zap.NewNop())

	first := svc.ComputeStats(context.Background(), plee)
	second := svc.ComputeStats(context.Background(), plee)
	assert.Equal(t, first, second)
}

func TestComputeStats_RecoversAfterFailure(t *testing.T) {
	src := scenarioSource(t)
	src.Fail(records.CollectionCourses, errors.New("timeout"))
	svc := NewService(src, zap.NewNop())

	assert.Equal(t, Zero, svc.ComputeStats(context.Background(), plee))

	src.SetPayload(records.CollectionCourses, []byte(`{"success": true, "courses": [{"id": 1, "facultyId": 42, "enrollments": [1, 2, 3]}]}`))
	got := svc.ComputeStats(context.Background(), plee)
	assert.Equal(t, Snapshot{Courses: 1, Announcements: 2, Events: 1, TotalStudents: 3}, got)

	st, _ := svc.State(plee)
	assert.Equal(t, StateReady, st)
}

func TestComputeStats_Transitions(t *testing.T) {
	src := scenarioSource(t)
	svc := NewService(src, zap.NewNop())

	var (
		mu     sync.Mutex
		states []State
	)
	svc.observe = func(_ string, st State, _ Snapshot) {
		mu.Lock()
		states = append(states, st)
		mu.Unlock()
	}

	svc.ComputeStats(context.Background(), plee)
	src.Fail(records.CollectionEvents, errors.New("503"))
	svc.ComputeStats(context.Background(), plee)

	assert.Equal(t, []State{StateLoading, StateReady, StateLoading, StateFailed}, states)
}

func TestState_UnknownActorIsIdle(t *testing.T) {
	svc := NewService(memory.NewSource(), zap.NewNop())

	st, snap := svc.State(plee)
	assert.Equal(t, StateIdle, st)
	assert.Equal(t, Zero, snap)
}

func TestState_IsPerActor(t *testing.T) {
	svc := NewService(scenarioSource(t), zap.NewNop())
	svc.ComputeStats(context.Background(), plee)

	st, _ := svc.State(ownership.Actor{ID: 7, Username: "other"})
	assert.Equal(t, StateIdle, st)

	// mismo actor con el id como string
	st, _ = svc.State(ownership.Actor{ID: "42", Username: "plee"})
	assert.Equal(t, StateReady, st)
}

func TestState_EvictsLeastRecentlyUsedActor(t *testing.T) {
	svc := NewService(scenarioSource(t), zap.NewNop())
	svc.maxBoards = 2

	a := ownership.Actor{ID: 1, Username: "a"}
	b := ownership.Actor{ID: 2, Username: "b"}
	c := ownership.Actor{ID: 3, Username: "c"}

	svc.ComputeStats(context.Background(), a)
	svc.ComputeStats(context.Background(), b)
	svc.ComputeStats(context.Background(), a) // a pasa a ser el más reciente
	svc.ComputeStats(context.Background(), c)

	assert.Len(t, svc.boards, 2)

	st, _ := svc.State(b)
	assert.Equal(t, StateIdle, st, "least recently used actor is evicted")
	st, _ = svc.State(a)
	assert.Equal(t, StateReady, st)
	st, _ = svc.State(c)
	assert.Equal(t, StateReady, st)
}

// gatedSource bloquea la próxima lectura de cursos hasta que se cierra release.
// Lee el payload antes de bloquear, así el ciclo lento trabaja con datos viejos.
type gatedSource struct {
	*memory.Source

	mu      sync.Mutex
	release chan struct{}
	entered chan struct{}
}

func (g *gatedSource) Fetch(ctx context.Context, c records.Collection) ([]byte, error) {
	raw, err := g.Source.Fetch(ctx, c)
	if c != records.CollectionCourses {
		return raw, err
	}

	g.mu.Lock()
	release, entered := g.release, g.entered
	g.release, g.entered = nil, nil
	g.mu.Unlock()

	if release != nil {
		close(entered)
		<-release
	}
	return raw, err
}

func TestComputeStats_StaleCycleDoesNotOverwriteNewer(t *testing.T) {
	src := &gatedSource{
		Source:  scenarioSource(t),
		release: make(chan struct{}),
		entered: make(chan struct{}),
	}
	release, entered := src.release, src.entered
	svc := NewService(src, zap.NewNop())

	slow := make(chan Snapshot, 1)
	go func() {
		slow <- svc.ComputeStats(context.Background(), plee)
	}()
	<-entered

	st, _ := svc.State(plee)
	require.Equal(t, StateLoading, st)

	// Ciclo nuevo con datos distintos: termina antes que el lento.
	src.SetPayload(records.CollectionCourses, []byte(`{"success": true, "courses": []}`))
	fresh := svc.ComputeStats(context.Background(), plee)
	assert.Equal(t, Snapshot{Courses: 0, Announcements: 2, Events: 1, TotalStudents: 0}, fresh)

	close(release)
	old := <-slow
	assert.Equal(t, Snapshot{Courses: 2, Announcements: 2, Events: 1, TotalStudents: 2}, old, "slow cycle still returns its own result")

	st, published := svc.State(plee)
	assert.Equal(t, StateReady, st)
	assert.Equal(t, fresh, published, "stale cycle must not overwrite the newer one")
}
