package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"reelhouse/utils"
)

// AdminAuth guards write and admin endpoints with the shared editor
// secret, presented as an X-Admin-Secret header or a bearer token. The
// rejection body is fixed; nothing about the guess leaks.
func AdminAuth(secretHash string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-Admin-Secret")
			if presented == "" {
				if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
					presented = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			if !utils.VerifySecret(secretHash, presented) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
