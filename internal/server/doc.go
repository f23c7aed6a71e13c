// Package server provides the short-lived local HTTP infrastructure for the OAuth authorization flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Ephemeral Listener
//
// [CallbackServer] binds 127.0.0.1:0 before the authorization URL is built, so the
// OAuth redirect URI carries the real port. When the user runs `ytag auth login`
// the server starts, handles the single callback, and shuts down after the token
// exchange completes.
package server
