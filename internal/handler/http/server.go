package http

import (
	"context"
	"net"
	"net/http"
	"time"
)

// NewServer builds the API server. Shutdown cancels the context of every
// in-flight request so event streams return instead of holding it open.
func NewServer(addr string, handler http.Handler) *http.Server {
	baseCtx, cancel := context.WithCancel(context.Background())

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}
	server.RegisterOnShutdown(cancel)

	return server
}
