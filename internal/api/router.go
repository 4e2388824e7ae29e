package api

import (
	"net/http"
	"time"

	"book_repository/internal/api/handler"
	"book_repository/internal/api/middleware"
	"book_repository/internal/app/service"
	"book_repository/internal/common"
	"book_repository/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokens *security.TokenIssuer,
	production bool,
	authService *service.AuthService,
	bookService *service.BookService,
	searchService *service.SearchService,
	adminService *service.AdminService,
	bootstrapService *service.BootstrapService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(middleware.Recoverer(production))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies token, puts claims in context. Looks for
	// "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(tokens.Auth))

	// Routing dead ends get the fixed excuse texts rather than bare codes.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, common.NotFoundExcuse)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusMethodNotAllowed, common.NotFoundExcuse)
	})

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Everything below requires an authenticated session.
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.Authenticator)

			bookHandler := handler.NewBookHandler(bookService)
			authed.Route("/books", bookHandler.RegisterRoutes)

			genreHandler := handler.NewGenreHandler(bookService)
			authed.Route("/genres", genreHandler.RegisterRoutes)

			searchHandler := handler.NewSearchHandler(searchService)
			authed.Route("/search", searchHandler.RegisterRoutes)

			accountHandler := handler.NewAccountHandler(adminService)
			authed.Route("/account", accountHandler.RegisterRoutes)

			// Admin area (role-gated)
			adminHandler := handler.NewAdminHandler(adminService, bootstrapService)
			authed.Route("/admin", func(admin chi.Router) {
				admin.Use(middleware.AdminOnly)
				adminHandler.RegisterRoutes(admin)
			})
		})
	})

	return r
}
