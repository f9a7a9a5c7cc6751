package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/database/repository"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/infrastructure/aws/websocket"
	"orbit/cmd/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu      sync.Mutex
	posted  map[string][]contract.EventType
	deleted []string
	gone    map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{posted: map[string][]contract.EventType{}, gone: map[string]bool{}}
}

func (g *fakeGateway) PostToConnection(_ context.Context, connID string, data any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gone[connID] {
		return websocket.ErrGone
	}
	if msg, ok := data.(*contract.OutgoingSocketMessage); ok {
		g.posted[connID] = append(g.posted[connID], msg.Type)
	}
	return nil
}

func (g *fakeGateway) DeleteConnection(_ context.Context, connID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, connID)
	return nil
}

func (g *fakeGateway) postedTo(connID string) []contract.EventType {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]contract.EventType(nil), g.posted[connID]...)
}

func newWebSocketFixture(t *testing.T) (*fixture, *repository.DefaultConnectionRepository, *fakeGateway, *WebSocketService) {
	f := newFixture(t)
	repo := repository.NewConnectionRepository(f.db)
	gateway := newFakeGateway()
	return f, repo, gateway, NewWebSocketService(repo, gateway)
}

func TestWebSocketService_PingUpdatesHeartbeat(t *testing.T) {
	f, repo, gateway, svc := newWebSocketFixture(t)
	exp := time.Now().Add(time.Hour).Unix()
	require.Nil(t, svc.RegisterConnection(f.user.ID, "conn-1", exp))

	svc.HandleMessage(context.Background(), &contract.IncomingSocketMessage{Type: contract.EventPing}, "conn-1")
	svc.HandleMessage(context.Background(), &contract.IncomingSocketMessage{Type: "unknown"}, "conn-1")

	assert.Equal(t, []contract.EventType{contract.EventAck}, gateway.postedTo("conn-1"))

	ids, err := repo.FindByUserID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"conn-1"}, ids)
}

func TestWebSocketService_DispatchDropsGoneConnections(t *testing.T) {
	f, repo, gateway, svc := newWebSocketFixture(t)
	exp := time.Now().Add(time.Hour).Unix()
	require.Nil(t, svc.RegisterConnection(f.user.ID, "alive", exp))
	require.Nil(t, svc.RegisterConnection(f.user.ID, "gone", exp))
	gateway.gone["gone"] = true

	svc.Dispatch(context.Background(), f.user.ID, events.Changed(contract.EventTaskCreated, nil))

	assert.Equal(t, []contract.EventType{contract.EventTaskCreated}, gateway.postedTo("alive"))
	ids, err := repo.FindByUserID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alive"}, ids)
}

func TestWebSocketService_CloseStaleConnections(t *testing.T) {
	f, repo, gateway, svc := newWebSocketFixture(t)
	now := utils.NowUTC()

	require.NoError(t, repo.Save(&entity.Connection{ConnectionID: "fresh", UserID: f.user.ID, ExpiresAt: now + 60_000, LastHeartbeatAt: now, CreatedAt: now}))
	require.NoError(t, repo.Save(&entity.Connection{ConnectionID: "expired", UserID: f.user.ID, ExpiresAt: now - 1, LastHeartbeatAt: now, CreatedAt: now}))
	require.NoError(t, repo.Save(&entity.Connection{ConnectionID: "silent", UserID: f.user.ID, ExpiresAt: now + 60_000, LastHeartbeatAt: now - 5*60_000, CreatedAt: now}))

	assert.Equal(t, 2, svc.CloseStaleConnections(context.Background()))
	assert.ElementsMatch(t, []string{"expired", "silent"}, gateway.deleted)
	assert.Equal(t, []contract.EventType{contract.EventSessionExpired}, gateway.postedTo("silent"))

	ids, err := repo.FindByUserID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, ids)
}

func TestWebSocketService_TerminateUserConnections(t *testing.T) {
	f, repo, gateway, svc := newWebSocketFixture(t)
	require.Nil(t, svc.RegisterConnection(f.user.ID, "conn-1", time.Now().Add(time.Hour).Unix()))

	svc.TerminateUserConnections(context.Background(), f.user.ID, &events.ConnectionKill{Code: contract.KillCodeAccountDeleted})

	assert.Equal(t, []contract.EventType{contract.EventConnectionKill}, gateway.postedTo("conn-1"))
	assert.Eventually(t, func() bool {
		ids, err := repo.FindByUserID(f.user.ID)
		return err == nil && len(ids) == 0
	}, 2*time.Second, 20*time.Millisecond)
}
