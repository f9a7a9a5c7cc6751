package service

import (
	"context"
	"errors"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/infrastructure/aws/websocket"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"time"

	"github.com/labstack/gommon/log"
)

// Notifier pushes live updates to the dashboards a user has open.
type Notifier interface {
	Dispatch(ctx context.Context, userID int64, evt events.SocketEvent)
	TerminateUserConnections(ctx context.Context, userID int64, ck *events.ConnectionKill)
}

// NopNotifier is used when no WebSocket gateway is configured.
type NopNotifier struct{}

func (NopNotifier) Dispatch(context.Context, int64, events.SocketEvent) {}

func (NopNotifier) TerminateUserConnections(context.Context, int64, *events.ConnectionKill) {}

type ConnectionRepository interface {
	Save(conn *entity.Connection) error
	Delete(connID string) error
	FindByUserID(userID int64) ([]string, error)
	FindStale(now int64, hbLimit int64) ([]*entity.Connection, error)
	UpdateHeartbeat(connID string, now int64) error
}

type WebSocketService struct {
	ConnRepo ConnectionRepository
	Gateway  websocket.GatewayClient
}

func NewWebSocketService(repo ConnectionRepository, gateway websocket.GatewayClient) *WebSocketService {
	return &WebSocketService{
		ConnRepo: repo,
		Gateway:  gateway,
	}
}

func (s *WebSocketService) RegisterConnection(userID int64, connectionID string, exp int64) apierror.ErrorResponse {
	now := utils.NowUTC()
	conn := &entity.Connection{
		ConnectionID:    connectionID,
		UserID:          userID,
		ExpiresAt:       exp * 1000, // "exp" is stored in seconds, our app uses millis
		LastHeartbeatAt: now,        // Avoid users getting disconnected immediately
		CreatedAt:       now,
	}

	if err := s.ConnRepo.Save(conn); err != nil {
		log.Errorf("failed to save connection: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *WebSocketService) RemoveConnection(connectionID string) {
	// Not the client's fault if this fails, the cleaner catches it later
	_ = s.ConnRepo.Delete(connectionID)
}

func (s *WebSocketService) HandleMessage(ctx context.Context, msg *contract.IncomingSocketMessage, connID string) {
	switch msg.Type {
	case contract.EventPing:
		s.handlePing(ctx, connID)
	default:
		log.Debugf("ignoring socket message of type %q from %s", msg.Type, connID)
	}
}

func (s *WebSocketService) PushToUser(ctx context.Context, userID int64, payload any) {
	conns, err := s.ConnRepo.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch connections for user %d: %v", userID, err)
		return
	}

	for _, connID := range conns {
		// One stale connection must not block the others
		if err := s.Gateway.PostToConnection(ctx, connID, payload); errors.Is(err, websocket.ErrGone) {
			_ = s.ConnRepo.Delete(connID)
		}
	}
}

func (s *WebSocketService) Dispatch(ctx context.Context, userID int64, evt events.SocketEvent) {
	s.PushToUser(ctx, userID, envelope(evt))
}

// TerminateUserConnections sends a "poison pill" message and then disconnects.
func (s *WebSocketService) TerminateUserConnections(ctx context.Context, userID int64, ck *events.ConnectionKill) {
	conns, err := s.ConnRepo.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch connections for user %d: %v", userID, err)
		return
	}

	msg := envelope(ck)
	for _, connID := range conns {
		_ = s.Gateway.PostToConnection(ctx, connID, msg)

		go func(cid string) {
			time.Sleep(200 * time.Millisecond)
			_ = s.Gateway.DeleteConnection(context.Background(), cid)
			_ = s.ConnRepo.Delete(cid)
		}(connID)
	}
}

// CloseStaleConnections drops connections whose token expired or that
// stopped sending heartbeats, and returns how many were closed.
func (s *WebSocketService) CloseStaleConnections(ctx context.Context) int {
	now := utils.NowUTC()
	hbLimit := entity.HeartbeatCutoff(now)

	conns, err := s.ConnRepo.FindStale(now, hbLimit)
	if err != nil {
		log.Errorf("failed to fetch stale connections: %v", err)
		return 0
	}

	msg := envelope(&events.SessionExpired{})
	for _, conn := range conns {
		// Tell the client first so it knows NOT to reconnect
		_ = s.Gateway.PostToConnection(ctx, conn.ConnectionID, msg)
		_ = s.Gateway.DeleteConnection(ctx, conn.ConnectionID)
		_ = s.ConnRepo.Delete(conn.ConnectionID)
	}
	return len(conns)
}

func (s *WebSocketService) handlePing(ctx context.Context, connID string) {
	if err := s.ConnRepo.UpdateHeartbeat(connID, utils.NowUTC()); err != nil {
		log.Errorf("failed to update heartbeat: %v", err)
		return
	}

	if err := s.Gateway.PostToConnection(ctx, connID, envelope(&events.Ack{})); err != nil {
		log.Errorf("failed to post ack to conn %s: %v", connID, err)
	}
}

func envelope(evt events.SocketEvent) *contract.OutgoingSocketMessage {
	return &contract.OutgoingSocketMessage{
		Type: evt.GetType(),
		Data: evt,
	}
}

// dispatchAsync fires the event detached from the request lifetime.
func dispatchAsync(n Notifier, userID int64, evt events.SocketEvent) {
	go n.Dispatch(context.Background(), userID, evt)
}
