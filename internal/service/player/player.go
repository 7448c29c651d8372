package player

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/myvideo/server/internal/classifier"
	"github.com/myvideo/server/internal/domain"
	"github.com/myvideo/server/internal/repository/session"
)

type SubmitParams struct {
	SessionID string
	InputText string
}

type SubmitResponse struct {
	Target domain.PlaybackTarget
}

// Submit classifies the input and mounts the matching player. Input that is
// not recognised as YouTube is played as a direct media URL.
func (s *service) Submit(ctx context.Context, params *SubmitParams) (SubmitResponse, error) {
	ps, err := s.getSession(params.SessionID)
	if err != nil {
		return SubmitResponse{}, err
	}

	var target domain.PlaybackTarget
	if videoID, ok := classifier.VideoID(params.InputText); ok {
		target = domain.NewYoutubeTarget(videoID)
	} else {
		target = domain.NewDirectTarget(params.InputText)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if err := s.sessionRepo.UpdateTarget(ctx, &session.UpdateTargetParams{
		SessionID: ps.id,
		InputText: params.InputText,
		Target:    target,
	}); err != nil {
		return SubmitResponse{}, fmt.Errorf("failed to update target: %w", err)
	}

	ps.stopWatchdog()
	ps.inputText = params.InputText
	ps.target = target
	ps.status = domain.PlaybackStatus{}

	s.logger.InfoContext(ctx, "target submitted",
		"session_id", ps.id,
		"target_id", target.ID,
		"target_kind", target.Kind,
	)

	if err := s.widget.Mount(ctx, ps.id, target); err != nil {
		s.logger.WarnContext(ctx, "failed to mount target", "session_id", ps.id, "error", err)
	}
	s.renderControls(ctx, ps)

	if target.IsDirect() {
		s.armWatchdog(ps, target.ID)
	}

	return SubmitResponse{Target: target}, nil
}

type UpdateStatusParams struct {
	SessionID string
	TargetID  string
	Status    domain.PlaybackStatus
}

// UpdateStatus replaces the status snapshot of the mounted direct target.
// Snapshots stamped with any other target are stale and dropped.
func (s *service) UpdateStatus(ctx context.Context, params *UpdateStatusParams) error {
	ps, err := s.getSession(params.SessionID)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.target.IsDirect() || !ps.target.Owns(params.TargetID) {
		s.logger.DebugContext(ctx, "dropping stale status", "session_id", ps.id, "target_id", params.TargetID)
		return nil
	}

	if err := s.sessionRepo.UpdateStatus(ctx, &session.UpdateStatusParams{
		SessionID: ps.id,
		Status:    params.Status,
	}); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	ps.status = params.Status
	if ps.status.Loaded() {
		ps.stopWatchdog()
	}

	s.renderControls(ctx, ps)

	return nil
}

type UpdateYoutubeStateParams struct {
	SessionID string
	TargetID  string
	State     string
}

// UpdateYoutubeState observes the embedded player. Only "ended" has an effect.
func (s *service) UpdateYoutubeState(ctx context.Context, params *UpdateYoutubeStateParams) error {
	ps, err := s.getSession(params.SessionID)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.target.IsYoutube() || !ps.target.Owns(params.TargetID) {
		s.logger.DebugContext(ctx, "dropping stale youtube state", "session_id", ps.id, "target_id", params.TargetID)
		return nil
	}

	s.logger.DebugContext(ctx, "youtube state changed", "session_id", ps.id, "state", params.State)
	if params.State != youtubeStateEnded {
		return nil
	}

	if err := s.notifier.Notify(ctx, ps.id, msgVideoEnded); err != nil {
		s.logger.WarnContext(ctx, "failed to notify", "session_id", ps.id, "error", err)
	}

	return nil
}

// TogglePlayPause pauses when the last snapshot says playing and plays otherwise.
func (s *service) TogglePlayPause(ctx context.Context, sessionID string) error {
	return s.withDirectTarget(sessionID, func(ps *playerSession) {
		var err error
		if ps.status.Playing() {
			err = s.widget.Pause(ctx, ps.id, ps.target.ID)
		} else {
			err = s.widget.Play(ctx, ps.id, ps.target.ID)
		}
		if err != nil {
			s.logger.WarnContext(ctx, "failed to send play/pause", "session_id", ps.id, "error", err)
		}
	})
}

// SeekRelative moves the position by deltaMillis, never below zero. The upper
// bound is left to the player.
func (s *service) SeekRelative(ctx context.Context, sessionID string, deltaMillis int64) error {
	return s.withDirectTarget(sessionID, func(ps *playerSession) {
		position := max(0, addMillis(ps.status.Position(), deltaMillis))
		s.seekTo(ctx, ps, position)
	})
}

// addMillis saturates instead of wrapping around.
func addMillis(a, b int64) int64 {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return math.MaxInt64
	case b < 0 && sum > a:
		return math.MinInt64
	}

	return sum
}

func (s *service) Rewind(ctx context.Context, sessionID string) error {
	return s.SeekRelative(ctx, sessionID, -s.seekStep.Milliseconds())
}

func (s *service) Forward(ctx context.Context, sessionID string) error {
	return s.SeekRelative(ctx, sessionID, s.seekStep.Milliseconds())
}

// SeekToFraction seeks to fraction of the duration. Nothing is sent while the
// duration is unknown.
func (s *service) SeekToFraction(ctx context.Context, sessionID string, fraction float64) error {
	return s.withDirectTarget(sessionID, func(ps *playerSession) {
		duration, ok := ps.status.Duration()
		if !ok {
			return
		}

		position := int64(math.Round(fraction * float64(duration)))
		s.seekTo(ctx, ps, position)
	})
}

func (s *service) seekTo(ctx context.Context, ps *playerSession, positionMillis int64) {
	if err := s.widget.SeekTo(ctx, ps.id, ps.target.ID, positionMillis); err != nil {
		s.logger.WarnContext(ctx, "failed to send seek", "session_id", ps.id, "error", err)
	}
}

// withDirectTarget runs fn under the session lock when a direct target is
// mounted. Without one, control gestures are no-ops.
func (s *service) withDirectTarget(sessionID string, fn func(ps *playerSession)) error {
	ps, err := s.getSession(sessionID)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.target.IsDirect() {
		return nil
	}

	fn(ps)

	return nil
}

func (s *service) renderControls(ctx context.Context, ps *playerSession) {
	controls := domain.ProjectControls(ps.target, ps.status)
	if err := s.widget.RenderControls(ctx, ps.id, controls); err != nil {
		s.logger.WarnContext(ctx, "failed to render controls", "session_id", ps.id, "error", err)
	}
}

// armWatchdog must be called with ps.mu held.
func (s *service) armWatchdog(ps *playerSession, targetID string) {
	if s.loadTimeout <= 0 {
		return
	}

	ps.watchdog = time.AfterFunc(s.loadTimeout, func() {
		s.loadTimedOut(ps, targetID)
	})
}

func (s *service) loadTimedOut(ps *playerSession, targetID string) {
	ctx := context.Background()

	ps.mu.Lock()
	defer ps.mu.Unlock()

	// The timer may fire after being replaced or stopped.
	if ps.watchdog == nil || !ps.target.Owns(targetID) || ps.status.Loaded() {
		return
	}
	ps.watchdog = nil

	s.logger.WarnContext(ctx, "media load timed out", "session_id", ps.id, "target_id", targetID, "timeout", s.loadTimeout)
	if err := s.notifier.Notify(ctx, ps.id, msgMediaLoadTimeout); err != nil {
		s.logger.WarnContext(ctx, "failed to notify", "session_id", ps.id, "error", err)
	}
}
