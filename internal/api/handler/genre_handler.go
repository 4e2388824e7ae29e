package handler

import (
	"net/http"

	"book_repository/internal/app/service"
	"book_repository/internal/common"

	"github.com/go-chi/chi/v5"
)

// GenreHandler exposes the static genre reference list for the add/edit and
// search forms.
type GenreHandler struct {
	bookService *service.BookService
}

func NewGenreHandler(bookService *service.BookService) *GenreHandler {
	return &GenreHandler{bookService: bookService}
}

func (h *GenreHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listGenres)
}

func (h *GenreHandler) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.bookService.ListGenres(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, genres)
}
