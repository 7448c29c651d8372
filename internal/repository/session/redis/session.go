package redis

import (
	"context"
	"fmt"

	"github.com/myvideo/server/internal/domain"
	"github.com/myvideo/server/internal/repository/session"
	omitnilpointers "github.com/myvideo/server/pkg/omit-nil-pointers"
)

const (
	inputTextField      = "input_text"
	targetIDField       = "target_id"
	targetKindField     = "target_kind"
	videoIDField        = "video_id"
	urlField            = "url"
	isLoadedField       = "is_loaded"
	isPlayingField      = "is_playing"
	positionMillisField = "position_millis"
	durationMillisField = "duration_millis"
)

var statusFields = []string{isLoadedField, isPlayingField, positionMillisField, durationMillisField}

func (r repo) getSessionKey(sessionID string) string {
	return "session:" + sessionID + ":player"
}

func (r repo) SetSession(ctx context.Context, params *session.SetSessionParams) error {
	sessionKey := r.getSessionKey(params.SessionID)

	created, err := r.rc.HSetNX(ctx, sessionKey, targetKindField, string(domain.TargetKindNone)).Result()
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	if !created {
		return session.ErrSessionAlreadyExists
	}

	if err := r.rc.Expire(ctx, sessionKey, r.expireDuration).Err(); err != nil {
		return fmt.Errorf("failed to set session expiry: %w", err)
	}

	return nil
}

func (r repo) GetSession(ctx context.Context, sessionID string) (session.Session, error) {
	sessionKey := r.getSessionKey(sessionID)
	pipe := r.rc.TxPipeline()
	hGetAllCmd := pipe.HGetAll(ctx, sessionKey)
	pipe.Expire(ctx, sessionKey, r.expireDuration)

	if err := r.executePipe(ctx, pipe); err != nil {
		return session.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	fields := hGetAllCmd.Val()
	if len(fields) == 0 {
		return session.Session{}, session.ErrSessionNotFound
	}

	target := domain.PlaybackTarget{
		ID:      fields[targetIDField],
		Kind:    domain.TargetKind(fields[targetKindField]),
		VideoID: fields[videoIDField],
		URL:     fields[urlField],
	}
	if target.Kind == "" {
		target.Kind = domain.TargetKindNone
	}

	return session.Session{
		InputText: fields[inputTextField],
		Target:    target,
		Status: domain.PlaybackStatus{
			IsLoaded:       r.optionalBool(fields, isLoadedField),
			IsPlaying:      r.optionalBool(fields, isPlayingField),
			PositionMillis: r.optionalInt64(fields, positionMillisField),
			DurationMillis: r.optionalInt64(fields, durationMillisField),
		},
	}, nil
}

func (r repo) checkSessionExists(ctx context.Context, sessionKey string) error {
	cmd := r.rc.Exists(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		return err
	}

	if cmd.Val() == 0 {
		return session.ErrSessionNotFound
	}

	return nil
}

// UpdateTarget replaces the mounted target and drops the status of the previous one.
func (r repo) UpdateTarget(ctx context.Context, params *session.UpdateTargetParams) error {
	sessionKey := r.getSessionKey(params.SessionID)
	if err := r.checkSessionExists(ctx, sessionKey); err != nil {
		return err
	}

	pipe := r.rc.TxPipeline()
	pipe.HDel(ctx, sessionKey, statusFields...)
	pipe.HSet(ctx, sessionKey,
		inputTextField, params.InputText,
		targetIDField, params.Target.ID,
		targetKindField, string(params.Target.Kind),
		videoIDField, params.Target.VideoID,
		urlField, params.Target.URL,
	)
	pipe.Expire(ctx, sessionKey, r.expireDuration)

	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to update target: %w", err)
	}

	return nil
}

// UpdateStatus stores status as a replacement: fields absent from it are removed.
func (r repo) UpdateStatus(ctx context.Context, params *session.UpdateStatusParams) error {
	sessionKey := r.getSessionKey(params.SessionID)
	if err := r.checkSessionExists(ctx, sessionKey); err != nil {
		return err
	}

	fields := omitnilpointers.OmitNilPointers(map[string]any{
		isLoadedField:       params.Status.IsLoaded,
		isPlayingField:      params.Status.IsPlaying,
		positionMillisField: params.Status.PositionMillis,
		durationMillisField: params.Status.DurationMillis,
	})

	pipe := r.rc.TxPipeline()
	pipe.HDel(ctx, sessionKey, statusFields...)
	if len(fields) > 0 {
		pipe.HSet(ctx, sessionKey, fields)
	}
	pipe.Expire(ctx, sessionKey, r.expireDuration)

	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}
