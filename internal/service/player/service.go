package player

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/myvideo/server/internal/domain"
	"github.com/myvideo/server/internal/repository/session"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionConnected = errors.New("session already connected")
)

const (
	youtubeStateEnded = "ended"

	msgVideoEnded       = "video has finished playing!"
	msgMediaLoadTimeout = "media failed to load"
)

type iSessionRepo interface {
	SetSession(context.Context, *session.SetSessionParams) error
	GetSession(context.Context, string) (session.Session, error)
	UpdateTarget(context.Context, *session.UpdateTargetParams) error
	UpdateStatus(context.Context, *session.UpdateStatusParams) error
}

// iWidget is the client side player a session drives. Every call is a
// request: the client reports the outcome through later status updates.
type iWidget interface {
	Mount(ctx context.Context, sessionID string, target domain.PlaybackTarget) error
	RenderControls(ctx context.Context, sessionID string, controls domain.Controls) error
	Play(ctx context.Context, sessionID, targetID string) error
	Pause(ctx context.Context, sessionID, targetID string) error
	SeekTo(ctx context.Context, sessionID, targetID string, positionMillis int64) error
}

type iNotifier interface {
	Notify(ctx context.Context, sessionID, message string) error
}

type Config struct {
	SeekStep    time.Duration
	LoadTimeout time.Duration
}

type service struct {
	sessionRepo iSessionRepo
	widget      iWidget
	notifier    iNotifier
	seekStep    time.Duration
	loadTimeout time.Duration
	logger      *slog.Logger

	mu       sync.Mutex
	sessions map[string]*playerSession
}

func NewService(sessionRepo iSessionRepo, widget iWidget, notifier iNotifier, cfg *Config, logger *slog.Logger) *service {
	return &service{
		sessionRepo: sessionRepo,
		widget:      widget,
		notifier:    notifier,
		seekStep:    cfg.SeekStep,
		loadTimeout: cfg.LoadTimeout,
		logger:      logger,
		sessions:    make(map[string]*playerSession),
	}
}

// playerSession is the in-memory state of one connected screen. Every field
// below mu is guarded by it.
type playerSession struct {
	id string

	mu        sync.Mutex
	inputText string
	target    domain.PlaybackTarget
	status    domain.PlaybackStatus
	watchdog  *time.Timer
}

func (ps *playerSession) state() domain.PlayerState {
	return domain.PlayerState{
		InputText: ps.inputText,
		Target:    ps.target,
		Status:    ps.status,
		Controls:  domain.ProjectControls(ps.target, ps.status),
	}
}

func (ps *playerSession) stopWatchdog() {
	if ps.watchdog != nil {
		ps.watchdog.Stop()
		ps.watchdog = nil
	}
}

func (s *service) getSession(sessionID string) (*playerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ps, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return ps, nil
}
