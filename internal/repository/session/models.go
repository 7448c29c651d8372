package session

import "github.com/myvideo/server/internal/domain"

type Session struct {
	InputText string
	Target    domain.PlaybackTarget
	Status    domain.PlaybackStatus
}
