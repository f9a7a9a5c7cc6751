package service

import (
	"context"
	"sync"
	"testing"

	"orbit/cmd/internal/domain/database/repository"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/testutil"
	"orbit/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu         sync.Mutex
	dispatched []events.SocketEvent
	terminated []int64
}

func (r *recordingNotifier) Dispatch(_ context.Context, _ int64, evt events.SocketEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatched = append(r.dispatched, evt)
}

func (r *recordingNotifier) TerminateUserConnections(_ context.Context, userID int64, _ *events.ConnectionKill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminated = append(r.terminated, userID)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dispatched)
}

type fixture struct {
	db       *gorm.DB
	validate *validator.Validate
	notifier *recordingNotifier
	user     *entity.User

	users    *repository.DefaultUserRepository
	prefs    *repository.DefaultPreferencesRepository
	tasks    *repository.DefaultTaskRepository
	notes    *repository.DefaultNoteRepository
	expenses *repository.DefaultExpenseRepository
	events   *repository.DefaultEventRepository
	checkIns *repository.DefaultCheckInRepository
	states   *repository.DefaultOAuthStateRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	return &fixture{
		db:       db,
		validate: validators.New(),
		notifier: &recordingNotifier{},
		user:     testutil.NewUser(t, db, "ana@example.com"),
		users:    repository.NewUserRepository(db),
		prefs:    repository.NewPreferencesRepository(db),
		tasks:    repository.NewTaskRepository(db),
		notes:    repository.NewNoteRepository(db),
		expenses: repository.NewExpenseRepository(db),
		events:   repository.NewEventRepository(db),
		checkIns: repository.NewCheckInRepository(db),
		states:   repository.NewOAuthStateRepository(db),
	}
}

func ptr[T any](v T) *T {
	return &v
}
