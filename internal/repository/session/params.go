package session

import "github.com/myvideo/server/internal/domain"

type SetSessionParams struct {
	SessionID string
}

type UpdateTargetParams struct {
	SessionID string
	InputText string
	Target    domain.PlaybackTarget
}

type UpdateStatusParams struct {
	SessionID string
	Status    domain.PlaybackStatus
}
