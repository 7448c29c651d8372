package controller

import (
	"context"
	"fmt"

	"github.com/myvideo/server/internal/domain"
)

const (
	commandPlay  = "play"
	commandPause = "pause"
	commandSeek  = "seek"
)

type playerCommand struct {
	TargetID       string `json:"target_id"`
	Command        string `json:"command"`
	PositionMillis *int64 `json:"position_millis,omitempty"`
}

// widget forwards player requests to the browser client of a session.
type widget struct {
	connRepo iConnRepo
}

func NewWidget(connRepo iConnRepo) *widget {
	return &widget{connRepo: connRepo}
}

func (w widget) send(sessionID string, output *Output) error {
	if err := w.connRepo.WriteJSON(sessionID, output); err != nil {
		return fmt.Errorf("failed to send %s: %w", output.Type, err)
	}

	return nil
}

func (w widget) Mount(_ context.Context, sessionID string, target domain.PlaybackTarget) error {
	return w.send(sessionID, &Output{
		Type: "TARGET_UPDATED",
		Payload: map[string]any{
			"target": target,
		},
	})
}

func (w widget) RenderControls(_ context.Context, sessionID string, controls domain.Controls) error {
	return w.send(sessionID, &Output{
		Type: "CONTROLS_UPDATED",
		Payload: map[string]any{
			"controls": controls,
		},
	})
}

func (w widget) Play(_ context.Context, sessionID, targetID string) error {
	return w.send(sessionID, &Output{
		Type:    "PLAYER_COMMAND",
		Payload: playerCommand{TargetID: targetID, Command: commandPlay},
	})
}

func (w widget) Pause(_ context.Context, sessionID, targetID string) error {
	return w.send(sessionID, &Output{
		Type:    "PLAYER_COMMAND",
		Payload: playerCommand{TargetID: targetID, Command: commandPause},
	})
}

func (w widget) SeekTo(_ context.Context, sessionID, targetID string, positionMillis int64) error {
	return w.send(sessionID, &Output{
		Type:    "PLAYER_COMMAND",
		Payload: playerCommand{TargetID: targetID, Command: commandSeek, PositionMillis: &positionMillis},
	})
}

func (w widget) Notify(_ context.Context, sessionID, message string) error {
	return w.send(sessionID, &Output{
		Type: "NOTIFICATION",
		Payload: map[string]any{
			"message": message,
		},
	})
}
