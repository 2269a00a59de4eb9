package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"lendly/internal/apperrors"
	"lendly/internal/service"
)

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetBulk resolves several users at once: ?userIDs=a,b,c
func (h *UserHandler) GetBulk(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("userIDs")
	if raw == "" {
		writeError(w, apperrors.NewValidation("userIDs query parameter is required", "userIDs"))
		return
	}

	users, err := h.users.GetUsersBulk(r.Context(), strings.Split(raw, ","))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
