package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacation-backend-go/internal/handler/http/response"
)

// sessionFromRequest returns the session placed by middleware.AuthRequired,
// writing a 401 when there is none.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrMissingSession)
		return auth.Session{}, false
	}
	return session, true
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// optionalQueryParam returns nil when the parameter is absent or empty.
func optionalQueryParam(r *http.Request, key string) *string {
	if val := r.URL.Query().Get(key); val != "" {
		return &val
	}
	return nil
}
