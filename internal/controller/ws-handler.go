package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/myvideo/server/internal/domain"
	"github.com/myvideo/server/internal/service/player"
)

type EmptyInput struct{}

func (c controller) handleAlive(_ context.Context, _ *websocket.Conn, _ EmptyInput) error {
	return nil
}

type SubmitInput struct {
	InputText string `json:"input_text" validate:"required,max=4096"`
}

func (c controller) handleSubmit(ctx context.Context, _ *websocket.Conn, input SubmitInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if _, err := c.playerService.Submit(ctx, &player.SubmitParams{
		SessionID: c.getSessionIDFromCtx(ctx),
		InputText: input.InputText,
	}); err != nil {
		return fmt.Errorf("failed to submit: %w", err)
	}

	return nil
}

type UpdateStatusInput struct {
	TargetID       string `json:"target_id" validate:"required"`
	IsLoaded       *bool  `json:"is_loaded"`
	IsPlaying      *bool  `json:"is_playing"`
	PositionMillis *int64 `json:"position_millis"`
	DurationMillis *int64 `json:"duration_millis"`
}

func (c controller) handleUpdateStatus(ctx context.Context, _ *websocket.Conn, input UpdateStatusInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.playerService.UpdateStatus(ctx, &player.UpdateStatusParams{
		SessionID: c.getSessionIDFromCtx(ctx),
		TargetID:  input.TargetID,
		Status: domain.PlaybackStatus{
			IsLoaded:       input.IsLoaded,
			IsPlaying:      input.IsPlaying,
			PositionMillis: input.PositionMillis,
			DurationMillis: input.DurationMillis,
		},
	}); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

type UpdateYoutubeStateInput struct {
	TargetID string `json:"target_id" validate:"required"`
	State    string `json:"state" validate:"required"`
}

func (c controller) handleUpdateYoutubeState(ctx context.Context, _ *websocket.Conn, input UpdateYoutubeStateInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.playerService.UpdateYoutubeState(ctx, &player.UpdateYoutubeStateParams{
		SessionID: c.getSessionIDFromCtx(ctx),
		TargetID:  input.TargetID,
		State:     input.State,
	}); err != nil {
		return fmt.Errorf("failed to update youtube state: %w", err)
	}

	return nil
}

func (c controller) handleTogglePlayPause(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	if err := c.playerService.TogglePlayPause(ctx, c.getSessionIDFromCtx(ctx)); err != nil {
		return fmt.Errorf("failed to toggle play/pause: %w", err)
	}

	return nil
}

func (c controller) handleRewind(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	if err := c.playerService.Rewind(ctx, c.getSessionIDFromCtx(ctx)); err != nil {
		return fmt.Errorf("failed to rewind: %w", err)
	}

	return nil
}

func (c controller) handleForward(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	if err := c.playerService.Forward(ctx, c.getSessionIDFromCtx(ctx)); err != nil {
		return fmt.Errorf("failed to forward: %w", err)
	}

	return nil
}

type SeekRelativeInput struct {
	DeltaMillis *int64 `json:"delta_millis" validate:"required"`
}

func (c controller) handleSeekRelative(ctx context.Context, _ *websocket.Conn, input SeekRelativeInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.playerService.SeekRelative(ctx, c.getSessionIDFromCtx(ctx), *input.DeltaMillis); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	return nil
}

type SeekToFractionInput struct {
	Fraction *float64 `json:"fraction" validate:"required,gte=0,lte=1"`
}

func (c controller) handleSeekToFraction(ctx context.Context, _ *websocket.Conn, input SeekToFractionInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.playerService.SeekToFraction(ctx, c.getSessionIDFromCtx(ctx), *input.Fraction); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	return nil
}
