package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/doodlemate-companion/internal/application/push"
	"github.com/doodlemate-companion/internal/domain"
)

// PushHandler handles the push dispatch function.
type PushHandler struct {
	svc push.Service
}

func NewPushHandler(svc push.Service) *PushHandler { return &PushHandler{svc: svc} }

func (h *PushHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req domain.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.Dispatch(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "no registered device tokens")
		return
	case errors.Is(err, domain.ErrConfig):
		writeError(w, http.StatusInternalServerError, "push signing not configured")
		return
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("X-Dispatch-Id", res.DispatchID)
	writeJSON(w, http.StatusOK, PushEnvelope{Tokens: res.Tokens})
}
