// package server contains the local HTTP listener used for OAuth authorization callbacks
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers.
// Implementations handle specific endpoints (the OAuth callback).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// CallbackServer is a short-lived HTTP server bound to an ephemeral local port.
//
// Bind before building the authorization URL so the redirect URI carries the
// real port, then Serve in the background and Shutdown once the callback
// arrives.
type CallbackServer struct {
	listener net.Listener
	srv      *http.Server
}

// NewCallbackServer binds a listener on host:port. Port 0 selects an ephemeral port.
func NewCallbackServer(host string, port int, handler http.Handler) (*CallbackServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to bind callback listener: %w", err)
	}

	return &CallbackServer{
		listener: listener,
		srv:      &http.Server{Handler: handler},
	}, nil
}

// Addr returns the bound address, including the resolved port.
func (c *CallbackServer) Addr() string {
	return c.listener.Addr().String()
}

// RedirectURL returns the http URL of path on the bound listener.
func (c *CallbackServer) RedirectURL(path string) string {
	return fmt.Sprintf("http://%s%s", c.Addr(), path)
}

// Serve blocks serving requests until Shutdown is called.
//
// Returns nil after a clean shutdown.
func (c *CallbackServer) Serve() error {
	if err := c.srv.Serve(c.listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (c *CallbackServer) Shutdown(ctx context.Context) error {
	return c.srv.Shutdown(ctx)
}
