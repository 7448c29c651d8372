package redis

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/myvideo/server/internal/domain"
	"github.com/myvideo/server/internal/repository/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*repo, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	t.Cleanup(func() { rc.Close() })

	return NewRepo(rc, time.Hour, slog.Default()), s
}

func ptr[T any](v T) *T {
	return &v
}

func TestSetAndGetSession(t *testing.T) {
	r, s := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetSession(ctx, &session.SetSessionParams{SessionID: "s1"}))
	assert.ErrorIs(t, r.SetSession(ctx, &session.SetSessionParams{SessionID: "s1"}), session.ErrSessionAlreadyExists)

	got, err := r.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetKindNone, got.Target.Kind)
	assert.Nil(t, got.Status.IsLoaded)
	assert.Equal(t, time.Hour, s.TTL(r.getSessionKey("s1")))

	_, err = r.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestGetSessionSlidesExpiry(t *testing.T) {
	r, s := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetSession(ctx, &session.SetSessionParams{SessionID: "s1"}))
	s.FastForward(40 * time.Minute)
	assert.Equal(t, 20*time.Minute, s.TTL(r.getSessionKey("s1")))

	_, err := r.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, s.TTL(r.getSessionKey("s1")))

	_, err = r.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.False(t, s.Exists(r.getSessionKey("missing")))
}

func TestSessionRedisUnavailable(t *testing.T) {
	r, s := newTestRepo(t)
	ctx := context.Background()
	s.Close()

	err := r.SetSession(ctx, &session.SetSessionParams{SessionID: "s1"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrSessionAlreadyExists)

	_, err = r.GetSession(ctx, "s1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrSessionNotFound)
}

func TestUpdateStatusReplacesSnapshot(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.SetSession(ctx, &session.SetSessionParams{SessionID: "s1"}))

	target := domain.NewDirectTarget("https://example.com/a.mp4")
	require.NoError(t, r.UpdateTarget(ctx, &session.UpdateTargetParams{
		SessionID: "s1",
		InputText: target.URL,
		Target:    target,
	}))

	require.NoError(t, r.UpdateStatus(ctx, &session.UpdateStatusParams{
		SessionID: "s1",
		Status: domain.PlaybackStatus{
			IsLoaded:       ptr(true),
			IsPlaying:      ptr(true),
			PositionMillis: ptr(int64(1500)),
			DurationMillis: ptr(int64(60000)),
		},
	}))

	require.NoError(t, r.UpdateStatus(ctx, &session.UpdateStatusParams{
		SessionID: "s1",
		Status: domain.PlaybackStatus{
			IsPlaying: ptr(false),
		},
	}))

	got, err := r.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, target, got.Target)
	assert.Equal(t, target.URL, got.InputText)
	require.NotNil(t, got.Status.IsPlaying)
	assert.False(t, *got.Status.IsPlaying)
	assert.Nil(t, got.Status.IsLoaded, "previous snapshot fields must not survive")
	assert.Nil(t, got.Status.PositionMillis)
	assert.Nil(t, got.Status.DurationMillis)
}

func TestUpdateTargetClearsStatus(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.SetSession(ctx, &session.SetSessionParams{SessionID: "s1"}))

	require.NoError(t, r.UpdateStatus(ctx, &session.UpdateStatusParams{
		SessionID: "s1",
		Status:    domain.PlaybackStatus{IsLoaded: ptr(true), DurationMillis: ptr(int64(10))},
	}))

	target := domain.NewYoutubeTarget("dQw4w9WgXcQ")
	require.NoError(t, r.UpdateTarget(ctx, &session.UpdateTargetParams{
		SessionID: "s1",
		InputText: "https://youtu.be/dQw4w9WgXcQ",
		Target:    target,
	}))

	got, err := r.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, target, got.Target)
	assert.Equal(t, domain.PlaybackStatus{}, got.Status)
}

func TestUpdateMissingSession(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	err := r.UpdateTarget(ctx, &session.UpdateTargetParams{SessionID: "nope", Target: domain.NoTarget()})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	err = r.UpdateStatus(ctx, &session.UpdateStatusParams{SessionID: "nope"})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
