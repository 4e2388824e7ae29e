package handler

import (
	"encoding/json"
	"net/http"

	"book_repository/internal/api/middleware"
	"book_repository/internal/app/service"
	"book_repository/internal/common"
	"book_repository/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type BookHandler struct {
	bookService *service.BookService
}

func NewBookHandler(bookService *service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

func (h *BookHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listBooks)
	r.Get("/page/{page}", h.listBooks)
	r.Post("/", h.createBook)
	r.Get("/{bookID}", h.getBook)
	r.Put("/{bookID}", h.updateBook)
	r.Delete("/{bookID}", h.deleteBook)
}

type bookListResponse struct {
	Books []model.Book `json:"books"`
	pagination
}

// listBooks returns one page of the requesting user's own books, ordered by
// title.
func (h *BookHandler) listBooks(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	page := parsePage(chi.URLParam(r, "page"))

	bookList, total, err := h.bookService.ListByOwner(r.Context(), username, page)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, bookListResponse{
		Books:      bookList,
		pagination: paginate(page, service.BooksPageSize, total),
	})
}

func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	book, err := h.bookService.Create(r.Context(), username, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.Get(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, book)
}

// TODO: verify the acting account owns the target book before update/delete;
// today any authenticated user who knows a book ID can mutate it, pending a
// product decision on shared-catalog editing.
func (h *BookHandler) updateBook(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	book, err := h.bookService.Update(r.Context(), username, chi.URLParam(r, "bookID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, book)
}

func (h *BookHandler) deleteBook(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.bookService.Delete(r.Context(), username, chi.URLParam(r, "bookID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "The book is deleted!")
}
