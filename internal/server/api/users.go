package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/models"
)

// ListUsers godoc
// @Summary      List users
// @Description  Returns id and display name of every registered user.
// @Tags         users
// @Produce      json
// @Success      200 {array}  models.UserSummary
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/user [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.Users.List(r.Context())
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list users failed", "error", err)
		WriteError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, models.UserSummary{ID: u.ID, Name: u.Name})
	}
	WriteJSON(w, http.StatusOK, out)
}
