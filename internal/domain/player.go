package domain

import "github.com/google/uuid"

type TargetKind string

const (
	TargetKindNone    TargetKind = "none"
	TargetKindYoutube TargetKind = "youtube"
	TargetKindDirect  TargetKind = "direct"
)

// PlaybackTarget is the media currently mounted on a screen. A single value
// holds either a YouTube video id or a direct media URL, never both.
type PlaybackTarget struct {
	ID      string     `json:"id,omitempty"`
	Kind    TargetKind `json:"kind"`
	VideoID string     `json:"video_id,omitempty"`
	URL     string     `json:"url,omitempty"`
}

func NoTarget() PlaybackTarget {
	return PlaybackTarget{Kind: TargetKindNone}
}

func NewYoutubeTarget(videoID string) PlaybackTarget {
	return PlaybackTarget{
		ID:      uuid.NewString(),
		Kind:    TargetKindYoutube,
		VideoID: videoID,
	}
}

func NewDirectTarget(url string) PlaybackTarget {
	return PlaybackTarget{
		ID:   uuid.NewString(),
		Kind: TargetKindDirect,
		URL:  url,
	}
}

func (t PlaybackTarget) IsYoutube() bool {
	return t.Kind == TargetKindYoutube
}

func (t PlaybackTarget) IsDirect() bool {
	return t.Kind == TargetKindDirect
}

// Owns reports whether an event stamped with targetID belongs to t.
func (t PlaybackTarget) Owns(targetID string) bool {
	return t.ID != "" && t.ID == targetID
}

// PlaybackStatus is a snapshot reported by the direct media player. Nil
// fields are not known yet.
type PlaybackStatus struct {
	IsLoaded       *bool  `json:"is_loaded,omitempty"`
	IsPlaying      *bool  `json:"is_playing,omitempty"`
	PositionMillis *int64 `json:"position_millis,omitempty"`
	DurationMillis *int64 `json:"duration_millis,omitempty"`
}

func (s PlaybackStatus) Loaded() bool {
	return s.IsLoaded != nil && *s.IsLoaded
}

func (s PlaybackStatus) Playing() bool {
	return s.IsPlaying != nil && *s.IsPlaying
}

func (s PlaybackStatus) Position() int64 {
	if s.PositionMillis == nil {
		return 0
	}

	return *s.PositionMillis
}

// Duration returns the media duration and whether it is known and non-zero.
func (s PlaybackStatus) Duration() (int64, bool) {
	if s.DurationMillis == nil || *s.DurationMillis <= 0 {
		return 0, false
	}

	return *s.DurationMillis, true
}

// Controls are the affordances derived from a status snapshot.
type Controls struct {
	Visible        bool    `json:"visible"`
	SliderValue    float64 `json:"slider_value"`
	PlayPauseLabel string  `json:"play_pause_label"`
}

const (
	LabelPlay  = "Play"
	LabelPause = "Pause"
)

func ProjectControls(target PlaybackTarget, status PlaybackStatus) Controls {
	controls := Controls{
		Visible:        target.IsDirect(),
		PlayPauseLabel: LabelPlay,
	}

	if status.Playing() {
		controls.PlayPauseLabel = LabelPause
	}

	if duration, ok := status.Duration(); ok && status.Loaded() && status.PositionMillis != nil {
		v := float64(status.Position()) / float64(duration)
		controls.SliderValue = min(max(v, 0), 1)
	}

	return controls
}

// PlayerState is everything a client needs to render a screen.
type PlayerState struct {
	InputText string         `json:"input_text"`
	Target    PlaybackTarget `json:"target"`
	Status    PlaybackStatus `json:"status"`
	Controls  Controls       `json:"controls"`
}
