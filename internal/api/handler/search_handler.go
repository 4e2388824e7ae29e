package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"book_repository/internal/api/middleware"
	"book_repository/internal/app/service"
	"book_repository/internal/common"
	"book_repository/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.saveSearch)
	r.Get("/results", h.searchResults)
	r.Get("/results/{page}", h.searchResults)
}

// saveSearch stores the submitted criteria in the session store; the results
// endpoint replays them page by page.
func (h *SearchHandler) saveSearch(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var criteria model.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.searchService.SaveCriteria(r.Context(), username, criteria); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Search criteria saved.")
}

func (h *SearchHandler) searchResults(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	page := parsePage(chi.URLParam(r, "page"))

	results, total, err := h.searchService.Results(r.Context(), username, page)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusBadRequest, "No search criteria saved; submit the search form first")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, bookListResponse{
		Books:      results,
		pagination: paginate(page, service.BooksPageSize, total),
	})
}
