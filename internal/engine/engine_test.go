package engine

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrylab/shelfmatch/internal/catalog"
	"github.com/pantrylab/shelfmatch/internal/notify"
	"github.com/pantrylab/shelfmatch/internal/store"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// jobStore is an in-memory Store implementing what the engine and the
// catalog service touch during a revaluation run.
type jobStore struct {
	store.Store

	entries []domain.Entry
	derived map[string]*domain.DerivedSize

	runs map[string]*domain.JobRun

	insertJobErr error
	listAllErr   error
}

func newJobStore(entries ...domain.Entry) *jobStore {
	return &jobStore{
		entries: entries,
		derived: make(map[string]*domain.DerivedSize),
		runs:    make(map[string]*domain.JobRun),
	}
}

func (s *jobStore) ListAllEntries(_ context.Context) ([]domain.Entry, error) {
	if s.listAllErr != nil {
		return nil, s.listAllErr
	}
	return s.entries, nil
}

func (s *jobStore) UpdateEntryDerived(_ context.Context, id string, d *domain.DerivedSize) error {
	s.derived[id] = d
	return nil
}

func (s *jobStore) CountUnparseableEntries(_ context.Context) (int, error) {
	return 0, nil
}

func (s *jobStore) InsertJobRun(_ context.Context, jobName string) (string, error) {
	if s.insertJobErr != nil {
		return "", s.insertJobErr
	}
	id := "run-1"
	s.runs[id] = &domain.JobRun{ID: id, JobName: jobName, Status: domain.JobStatusRunning}
	return id, nil
}

func (s *jobStore) CompleteJobRun(
	_ context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	r, ok := s.runs[id]
	if !ok {
		return errors.New("unknown job run")
	}
	r.Status = status
	r.ErrorText = errText
	r.RowsAffected = &rowsAffected
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestEngine(s store.Store) *Engine {
	svc := catalog.New(s, nil, 0, quietLogger())
	return NewEngine(s, svc, WithLogger(quietLogger()))
}

func TestEngine_RunRevalue_Success(t *testing.T) {
	t.Parallel()

	js := newJobStore(
		domain.Entry{ID: "e1", ProductID: "p1", Store: "tesco", SizeText: "2 pints", Price: 1.30},
		domain.Entry{ID: "e2", ProductID: "p1", Store: "asda", SizeText: "1L", Price: 1.10},
	)
	eng := newTestEngine(js)

	require.NoError(t, eng.RunRevalue(context.Background()))

	run := js.runs["run-1"]
	require.NotNil(t, run)
	assert.Equal(t, JobRevalue, run.JobName)
	assert.Equal(t, domain.JobStatusSucceeded, run.Status)
	assert.Empty(t, run.ErrorText)
	require.NotNil(t, run.RowsAffected)
	assert.Equal(t, 2, *run.RowsAffected)

	assert.Len(t, js.derived, 2)
}

func TestEngine_RunRevalue_CatalogFailureRecorded(t *testing.T) {
	t.Parallel()

	js := newJobStore()
	js.listAllErr = errors.New("connection refused")
	eng := newTestEngine(js)

	err := eng.RunRevalue(context.Background())
	require.Error(t, err)

	run := js.runs["run-1"]
	require.NotNil(t, run)
	assert.Equal(t, domain.JobStatusFailed, run.Status)
	assert.Contains(t, run.ErrorText, "connection refused")
}

func TestEngine_RunRevalue_JobInsertFailure(t *testing.T) {
	t.Parallel()

	js := newJobStore()
	js.insertJobErr = errors.New("db down")
	eng := newTestEngine(js)

	err := eng.RunRevalue(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recording job start")
}

// captureNotifier records the alerts it is asked to send.
type captureNotifier struct {
	alerts []*notify.JobAlert
	err    error
}

func (n *captureNotifier) SendJobAlert(_ context.Context, alert *notify.JobAlert) error {
	n.alerts = append(n.alerts, alert)
	return n.err
}

func TestEngine_RunRevalue_FailureAlertsNotifier(t *testing.T) {
	t.Parallel()

	js := newJobStore()
	js.listAllErr = errors.New("connection refused")

	n := &captureNotifier{}
	svc := catalog.New(js, nil, 0, quietLogger())
	eng := NewEngine(js, svc, WithLogger(quietLogger()), WithNotifier(n))

	require.Error(t, eng.RunRevalue(context.Background()))

	require.Len(t, n.alerts, 1)
	assert.Equal(t, JobRevalue, n.alerts[0].JobName)
	assert.Equal(t, domain.JobStatusFailed, n.alerts[0].Status)
	assert.Contains(t, n.alerts[0].Error, "connection refused")
}

func TestEngine_RunRevalue_SuccessDoesNotAlert(t *testing.T) {
	t.Parallel()

	js := newJobStore(
		domain.Entry{ID: "e1", ProductID: "p1", Store: "tesco", SizeText: "1L", Price: 1.00},
	)

	n := &captureNotifier{}
	svc := catalog.New(js, nil, 0, quietLogger())
	eng := NewEngine(js, svc, WithLogger(quietLogger()), WithNotifier(n))

	require.NoError(t, eng.RunRevalue(context.Background()))
	assert.Empty(t, n.alerts)
}

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(newJobStore())

	sched, err := NewScheduler(eng, 15*time.Minute, quietLogger())
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 1)
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(newJobStore())

	sched, err := NewScheduler(eng, 1*time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}
