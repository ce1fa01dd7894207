package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	mu           sync.Mutex
	httpServer   *http.Server
	writeTimeout time.Duration
}

const (
	maxHeaderBytes      = 1 << 20 // 1 MB
	readHeaderTimeout   = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	idleTimeout         = 60 * time.Second

	// Headroom added on top of the printer timeout so a slow read still gets its error reply out.
	writeHeadroom = 5 * time.Second
)

// New returns a server whose write timeout outlasts a printer request of deviceTimeout.
func New(deviceTimeout time.Duration) *Server {
	wt := defaultWriteTimeout
	if deviceTimeout > 0 && deviceTimeout+writeHeadroom > wt {
		wt = deviceTimeout + writeHeadroom
	}
	return &Server{writeTimeout: wt}
}

func (s *Server) newHTTPServer(addr string, handler http.Handler) *http.Server {
	wt := s.writeTimeout
	if wt <= 0 {
		wt = defaultWriteTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      wt,
		IdleTimeout:       idleTimeout,
	}
}

// normalizeAddr accepts "8080" or ":8080".
func normalizeAddr(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Run listens on port and serves handler until Shutdown.
func (s *Server) Run(port string, handler http.Handler) error {
	l, err := net.Listen("tcp", normalizeAddr(port))
	if err != nil {
		return err
	}
	return s.Serve(l, handler)
}

// Serve serves handler on l. It returns nil after a graceful Shutdown.
func (s *Server) Serve(l net.Listener, handler http.Handler) error {
	s.mu.Lock()
	s.httpServer = s.newHTTPServer(l.Addr().String(), handler)
	srv := s.httpServer
	s.mu.Unlock()

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
