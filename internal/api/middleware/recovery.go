package middleware

import (
	"fmt"
	"log"
	"net/http"

	"book_repository/internal/common"
)

// Recoverer converts panics into the fixed internal-error response. Outside
// production the panic detail is appended to help local debugging.
func Recoverer(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
					message := common.InternalErrorExcuse
					if !production {
						message = fmt.Sprintf("%s (%v)", message, rec)
					}
					common.RespondWithError(w, http.StatusInternalServerError, message)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
