package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/myvideo/server/pkg/validator"
	"github.com/myvideo/server/pkg/wsrouter"
)

var ErrValidationError = errors.New("validation error")

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type validationError struct {
	errors []validator.ValidationError
}

func (e *validationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrValidationError, e.errors)
}

func (e *validationError) Unwrap() error {
	return ErrValidationError
}

func (c controller) validateInput(input any) error {
	if errs, ok := c.validate.Validate(input); !ok {
		return &validationError{errors: errs}
	}

	return nil
}

func (c controller) generateTimeBasedId() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

func (c controller) writeToSession(ctx context.Context, sessionID string, output *Output) error {
	if err := c.connRepo.WriteJSON(sessionID, output); err != nil {
		return fmt.Errorf("failed to write %s: %w", output.Type, err)
	}

	c.logger.DebugContext(ctx, "message sent", "session_id", sessionID, "type", output.Type)

	return nil
}

// handleWSError reports a failed message back to its sender.
func (c controller) handleWSError(ctx context.Context, _ *websocket.Conn, err error) {
	c.logger.InfoContext(ctx, "failed to handle message", "error", err)

	payload := map[string]any{"error": err.Error()}

	var vErr *validationError
	switch {
	case errors.As(err, &vErr):
		payload = map[string]any{"errors": vErr.errors}
	case errors.Is(err, wsrouter.ErrUnknownMessageType):
		payload = map[string]any{"error": "unknown message type"}
	case errors.Is(err, wsrouter.ErrInvalidPayload):
		payload = map[string]any{"error": "invalid payload"}
	}

	if err := c.writeToSession(ctx, c.getSessionIDFromCtx(ctx), &Output{
		Type:    "ERROR",
		Payload: payload,
	}); err != nil {
		c.logger.WarnContext(ctx, "failed to write error", "error", err)
	}
}
