package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/vacation-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/sse"
)

type EventHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	authService       auth.AuthService
	jwtService        jwt.Service
	hub               *sse.Hub
	keepaliveInterval time.Duration
}

func NewEventHandler(authService auth.AuthService, jwtService jwt.Service, hub *sse.Hub) EventHandler {
	return &eventHandlerImpl{
		authService:       authService,
		jwtService:        jwtService,
		hub:               hub,
		keepaliveInterval: 30 * time.Second,
	}
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *eventHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	token, err := h.authService.IssueSSEToken(r.Context(), session)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, token)
}

// Stream handles the SSE connection for vacation events. Employees receive
// reviews of their own requests; managers also receive new submissions.
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (EventSource can't send headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	claims, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	topics := []string{claims.UserID}
	if claims.Role == user.RoleManager {
		topics = append(topics, vacation.ManagersTopic)
	}
	events, cleanup := h.hub.Subscribe(topics...)
	defer cleanup()

	slog.Debug("SSE client connected", "user_id", claims.UserID, "topics", topics)

	// Send initial connection event
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", claims.UserID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("SSE marshal error", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			slog.Debug("SSE client disconnected", "user_id", claims.UserID)
			return
		}
	}
}
