package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestTargetsAreExclusive(t *testing.T) {
	yt := NewYoutubeTarget("dQw4w9WgXcQ")
	assert.True(t, yt.IsYoutube())
	assert.False(t, yt.IsDirect())
	assert.Empty(t, yt.URL)

	direct := NewDirectTarget("https://example.com/video.mp4")
	assert.True(t, direct.IsDirect())
	assert.False(t, direct.IsYoutube())
	assert.Empty(t, direct.VideoID)

	assert.NotEqual(t, yt.ID, direct.ID)
}

func TestTargetOwns(t *testing.T) {
	target := NewDirectTarget("https://example.com/a.mp4")
	assert.True(t, target.Owns(target.ID))
	assert.False(t, target.Owns("other"))
	assert.False(t, NoTarget().Owns(""))
}

func TestStatusUnknownFields(t *testing.T) {
	var s PlaybackStatus
	assert.False(t, s.Loaded())
	assert.False(t, s.Playing())
	assert.Equal(t, int64(0), s.Position())

	_, ok := s.Duration()
	assert.False(t, ok)

	s.DurationMillis = ptr(int64(0))
	_, ok = s.Duration()
	assert.False(t, ok, "zero duration must count as unknown")
}

func TestProjectControls(t *testing.T) {
	target := NewDirectTarget("https://example.com/a.mp4")

	tests := []struct {
		name   string
		status PlaybackStatus
		slider float64
		label  string
	}{
		{
			name:   "empty",
			status: PlaybackStatus{},
			slider: 0,
			label:  LabelPlay,
		},
		{
			name: "playing halfway",
			status: PlaybackStatus{
				IsLoaded:       ptr(true),
				IsPlaying:      ptr(true),
				PositionMillis: ptr(int64(5000)),
				DurationMillis: ptr(int64(10000)),
			},
			slider: 0.5,
			label:  LabelPause,
		},
		{
			name: "not loaded",
			status: PlaybackStatus{
				IsLoaded:       ptr(false),
				PositionMillis: ptr(int64(5000)),
				DurationMillis: ptr(int64(10000)),
			},
			slider: 0,
			label:  LabelPlay,
		},
		{
			name: "zero duration",
			status: PlaybackStatus{
				IsLoaded:       ptr(true),
				PositionMillis: ptr(int64(5000)),
				DurationMillis: ptr(int64(0)),
			},
			slider: 0,
			label:  LabelPlay,
		},
		{
			name: "position past duration",
			status: PlaybackStatus{
				IsLoaded:       ptr(true),
				PositionMillis: ptr(int64(12000)),
				DurationMillis: ptr(int64(10000)),
			},
			slider: 1,
			label:  LabelPlay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controls := ProjectControls(target, tt.status)
			assert.True(t, controls.Visible)
			assert.InDelta(t, tt.slider, controls.SliderValue, 1e-9)
			assert.Equal(t, tt.label, controls.PlayPauseLabel)
		})
	}
}

func TestProjectControlsHiddenForYoutube(t *testing.T) {
	controls := ProjectControls(NewYoutubeTarget("dQw4w9WgXcQ"), PlaybackStatus{})
	assert.False(t, controls.Visible)
}
