package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/myvideo/server/internal/classifier"
	"github.com/myvideo/server/internal/domain"
	"github.com/myvideo/server/pkg/rest"
	"github.com/myvideo/server/pkg/ytvideodata"
)

func (c controller) healthz(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"status": "ok"})
}

type classifyRequest struct {
	InputText string `json:"input_text" validate:"required,max=4096"`
}

type classifyResponse struct {
	Kind    domain.TargetKind `json:"kind"`
	VideoID string            `json:"video_id,omitempty"`
	URL     string            `json:"url,omitempty"`
}

// classify reports how a submit of the given input would be played.
func (c controller) classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest

	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.InfoContext(r.Context(), "failed to read json", "error", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	resp := classifyResponse{Kind: domain.TargetKindDirect, URL: req.InputText}
	if videoID, ok := classifier.VideoID(req.InputText); ok {
		resp = classifyResponse{Kind: domain.TargetKindYoutube, VideoID: videoID}
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": resp})
}

func (c controller) getVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "video-id")
	if !classifier.IsVideoID(videoID) {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": "invalid video id"})
		return
	}

	videoData, err := c.videoData.Get(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, ytvideodata.ErrVideoNotFound) {
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "video not found"})
			return
		}

		c.logger.WarnContext(r.Context(), "failed to get video data", "video_id", videoID, "error", err)
		rest.WriteJSON(w, http.StatusBadGateway, rest.Envelope{"error": "failed to get video data"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": videoData})
}
