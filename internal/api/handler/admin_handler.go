package handler

import (
	"encoding/json"
	"net/http"

	"book_repository/internal/api/middleware"
	"book_repository/internal/app/service"
	"book_repository/internal/common"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	adminService     *service.AdminService
	bootstrapService *service.BootstrapService
}

func NewAdminHandler(adminService *service.AdminService, bootstrapService *service.BootstrapService) *AdminHandler {
	return &AdminHandler{adminService: adminService, bootstrapService: bootstrapService}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/dashboard/{page}", h.dashboard)
	r.Put("/users/{userID}", h.updateUser)
	r.Delete("/users/{userID}", h.deleteUser)
	r.Post("/load-genres", h.loadGenres)
	r.Post("/load-books", h.loadBooks)
}

type dashboardResponse struct {
	*service.Dashboard
	pagination
}

func (h *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	page := parsePage(chi.URLParam(r, "page"))

	dashboard, err := h.adminService.Dashboard(r.Context(), page)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, dashboardResponse{
		Dashboard:  dashboard,
		pagination: paginate(page, service.UsersPageSize, dashboard.UserCount),
	})
}

func (h *AdminHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.adminService.UpdateUser(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUsernameFromContext(r.Context())

	if err := h.adminService.DeleteUser(r.Context(), actor, chi.URLParam(r, "userID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "The user is deleted!")
}

func (h *AdminHandler) loadGenres(w http.ResponseWriter, r *http.Request) {
	if err := h.bootstrapService.LoadGenres(r.Context()); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Genres Collection loaded.")
}

func (h *AdminHandler) loadBooks(w http.ResponseWriter, r *http.Request) {
	if err := h.bootstrapService.LoadBooks(r.Context()); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Sample Book Collection loaded.")
}
