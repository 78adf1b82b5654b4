package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/doodlemate-companion/internal/application/account"
	"github.com/doodlemate-companion/internal/domain"
)

// AccountHandler handles the account deletion function.
type AccountHandler struct {
	svc account.Service
}

func NewAccountHandler(svc account.Service) *AccountHandler { return &AccountHandler{svc: svc} }

// Delete serves every method on the delete-user route. OPTIONS preflights get
// an unconditional 200; everything else requires a bearer token.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ok"})
		return
	}

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		writeError(w, http.StatusUnauthorized, "missing or invalid authorization header")
		return
	}
	bearer := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.svc.Delete(r.Context(), bearer); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true})
}
