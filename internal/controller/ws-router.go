package controller

import (
	"github.com/myvideo/server/pkg/wsrouter"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()
	mux.Use(c.wsRequestIdMw(), c.loggerWSMw())
	mux.OnError(c.handleWSError)

	wsrouter.Handle(mux, "ALIVE", c.handleAlive)
	wsrouter.Handle(mux, "SUBMIT", c.handleSubmit)

	// widget reports
	wsrouter.Handle(mux, "UPDATE_STATUS", c.handleUpdateStatus)
	wsrouter.Handle(mux, "UPDATE_YOUTUBE_STATE", c.handleUpdateYoutubeState)

	// controls
	wsrouter.Handle(mux, "TOGGLE_PLAY_PAUSE", c.handleTogglePlayPause)
	wsrouter.Handle(mux, "REWIND", c.handleRewind)
	wsrouter.Handle(mux, "FORWARD", c.handleForward)
	wsrouter.Handle(mux, "SEEK_RELATIVE", c.handleSeekRelative)
	wsrouter.Handle(mux, "SEEK_TO_FRACTION", c.handleSeekToFraction)

	return mux
}
