package handler

import (
	"net/http"

	"book_repository/internal/api/middleware"
	"book_repository/internal/app/service"
	"book_repository/internal/common"

	"github.com/go-chi/chi/v5"
)

// AccountHandler covers self-service account operations.
type AccountHandler struct {
	adminService *service.AdminService
}

func NewAccountHandler(adminService *service.AdminService) *AccountHandler {
	return &AccountHandler{adminService: adminService}
}

func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Delete("/", h.deleteAccount)
}

// deleteAccount removes the requesting user's account and every book they
// own. The issued token becomes useless once the account row is gone.
func (h *AccountHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.adminService.DeleteAccount(r.Context(), username); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "We're sad to see you go "+username+"!")
}
