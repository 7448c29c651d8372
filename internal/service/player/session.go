package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/myvideo/server/internal/domain"
	"github.com/myvideo/server/internal/repository/session"
)

type ConnectParams struct {
	// SessionID resumes a stored session when set.
	SessionID string
}

type ConnectResponse struct {
	SessionID string
	State     domain.PlayerState
}

// Connect attaches a screen. A known session id restores the stored target
// and status; an unknown or empty one starts a fresh session.
func (s *service) Connect(ctx context.Context, params *ConnectParams) (ConnectResponse, error) {
	ps := &playerSession{
		target: domain.NoTarget(),
	}

	stored, err := s.loadSession(ctx, params.SessionID)
	switch {
	case err == nil:
		ps.id = params.SessionID
		ps.inputText = stored.InputText
		ps.target = stored.Target
		ps.status = stored.Status
	case errors.Is(err, session.ErrSessionNotFound):
		ps.id = uuid.NewString()
		if err := s.sessionRepo.SetSession(ctx, &session.SetSessionParams{SessionID: ps.id}); err != nil {
			return ConnectResponse{}, fmt.Errorf("failed to set session: %w", err)
		}
	default:
		return ConnectResponse{}, fmt.Errorf("failed to get session: %w", err)
	}

	s.mu.Lock()
	if _, ok := s.sessions[ps.id]; ok {
		s.mu.Unlock()
		return ConnectResponse{}, ErrSessionConnected
	}
	s.sessions[ps.id] = ps
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session connected", "session_id", ps.id, "target_kind", ps.target.Kind)

	ps.mu.Lock()
	defer ps.mu.Unlock()

	// a restored direct target that never loaded gets a fresh deadline
	if ps.target.IsDirect() && !ps.status.Loaded() {
		s.armWatchdog(ps, ps.target.ID)
	}

	return ConnectResponse{
		SessionID: ps.id,
		State:     ps.state(),
	}, nil
}

func (s *service) loadSession(ctx context.Context, sessionID string) (session.Session, error) {
	if sessionID == "" {
		return session.Session{}, session.ErrSessionNotFound
	}

	return s.sessionRepo.GetSession(ctx, sessionID)
}

// Disconnect detaches a screen. Its stored state outlives the connection.
func (s *service) Disconnect(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	ps, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	ps.mu.Lock()
	ps.stopWatchdog()
	ps.mu.Unlock()

	s.logger.InfoContext(ctx, "session disconnected", "session_id", sessionID)

	return nil
}

func (s *service) State(_ context.Context, sessionID string) (domain.PlayerState, error) {
	ps, err := s.getSession(sessionID)
	if err != nil {
		return domain.PlayerState{}, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	return ps.state(), nil
}
