package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/myvideo/server/internal/service/player"
	"github.com/myvideo/server/pkg/ctxlogger"
)

const closeCodeSessionConnected = 4009

func (c controller) connectPlayer(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	connectResp, err := c.playerService.Connect(r.Context(), &player.ConnectParams{
		SessionID: r.URL.Query().Get("session-id"),
	})
	if err != nil {
		c.logger.InfoContext(r.Context(), "failed to connect player", "error", err)
		code := websocket.CloseInternalServerErr
		if errors.Is(err, player.ErrSessionConnected) {
			code = closeCodeSessionConnected
		}
		conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, err.Error()), time.Now().Add(time.Second*5))
		return
	}

	sessionID := connectResp.SessionID
	ctx := context.WithValue(r.Context(), sessionIDCtxKey, sessionID)
	ctx = ctxlogger.AppendCtx(ctx, slog.String("session_id", sessionID))
	defer c.disconnect(ctx, sessionID)

	if err := c.connRepo.Add(conn, sessionID); err != nil {
		c.logger.WarnContext(ctx, "failed to add connection", "error", err)
		return
	}

	if err := c.writeToSession(ctx, sessionID, &Output{
		Type: "SESSION_STARTED",
		Payload: map[string]any{
			"session_id": sessionID,
			"state":      connectResp.State,
		},
	}); err != nil {
		c.logger.WarnContext(ctx, "failed to write session started", "error", err)
		return
	}

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			c.logger.InfoContext(ctx, "connection closed", "error", err)
		}
	}
}

func (c controller) disconnect(ctx context.Context, sessionID string) {
	if err := c.connRepo.RemoveBySessionID(sessionID); err != nil {
		c.logger.DebugContext(ctx, "failed to remove connection", "error", err)
	}

	// shutdown may have detached the session already
	if err := c.playerService.Disconnect(ctx, sessionID); err != nil && !errors.Is(err, player.ErrSessionNotFound) {
		c.logger.WarnContext(ctx, "failed to disconnect player", "error", err)
	}
}
