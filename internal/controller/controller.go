package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/myvideo/server/internal/domain"
	"github.com/myvideo/server/internal/repository/connection"
	"github.com/myvideo/server/internal/service/player"
	"github.com/myvideo/server/pkg/validator"
	"github.com/myvideo/server/pkg/wsrouter"
	"github.com/myvideo/server/pkg/ytvideodata"
)

type iPlayerService interface {
	Connect(context.Context, *player.ConnectParams) (player.ConnectResponse, error)
	Disconnect(ctx context.Context, sessionID string) error
	State(ctx context.Context, sessionID string) (domain.PlayerState, error)
	Submit(context.Context, *player.SubmitParams) (player.SubmitResponse, error)
	UpdateStatus(context.Context, *player.UpdateStatusParams) error
	UpdateYoutubeState(context.Context, *player.UpdateYoutubeStateParams) error
	TogglePlayPause(ctx context.Context, sessionID string) error
	SeekRelative(ctx context.Context, sessionID string, deltaMillis int64) error
	Rewind(ctx context.Context, sessionID string) error
	Forward(ctx context.Context, sessionID string) error
	SeekToFraction(ctx context.Context, sessionID string, fraction float64) error
}

type iConnRepo interface {
	Add(connection.Conn, string) error
	RemoveBySessionID(string) error
	WriteJSON(sessionID string, v any) error
}

type iVideoDataClient interface {
	Get(ctx context.Context, videoID string) (*ytvideodata.VideoData, error)
}

type controller struct {
	playerService iPlayerService
	connRepo      iConnRepo
	videoData     iVideoDataClient
	upgrader      websocket.Upgrader
	validate      *validator.Validator
	wsmux         *wsrouter.WSRouter
	logger        *slog.Logger
}

func NewController(playerService iPlayerService, connRepo iConnRepo, videoData iVideoDataClient, logger *slog.Logger) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		playerService: playerService,
		connRepo:      connRepo,
		videoData:     videoData,
		validate:      validator.NewValidator(),
		logger:        logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
