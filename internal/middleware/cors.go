// Package middleware provides reusable HTTP middleware for the planner API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsMaxAge is how long browsers may cache a preflight answer, in seconds.
const corsMaxAge = 300

// NewCORSHandler lets the map frontend at allowedOrigins call the API.
// Origins are full "scheme://host[:port]" strings. The planner only reads with
// GET and mutates preferences with PUT/DELETE, always with JSON bodies.
// X-Request-Id is exposed so the frontend can quote it in bug reports.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         corsMaxAge,
	})
	return c.Handler
}
