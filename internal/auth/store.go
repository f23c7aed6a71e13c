// Package auth implements the OAuth credential store for the YouTube Data API.
//
// A [Store] owns the persisted token: it loads it at startup, refreshes it in
// place when expired, replaces it wholesale after an interactive
// authorization, and persists it after every change. Other components borrow
// the credential for the duration of one API session and re-invoke
// [Store.Obtain] if a downstream call reports an auth failure.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytag/internal/server"
	"github.com/desertthunder/ytag/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// authTimeout bounds the interactive browser flow.
const authTimeout = 2 * time.Minute

// Store persists and refreshes the OAuth credential for a single user.
type Store struct {
	secretsPath string
	tokenPath   string
	host        string
	port        int
	logger      *log.Logger

	// seams for tests
	openBrowser func(url string) error
	endpoint    *oauth2.Endpoint
}

// Opts configures a [Store].
type Opts struct {
	SecretsPath string
	TokenPath   string
	Host        string // callback listener host, defaults to 127.0.0.1
	Port        int    // callback listener port, 0 binds an ephemeral port
	Logger      *log.Logger
}

// NewStore creates a credential store reading the client descriptor from
// SecretsPath and persisting tokens at TokenPath.
func NewStore(opts Opts) *Store {
	if opts.Host == "" {
		opts.Host = "127.0.0.1"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Store{
		secretsPath: opts.SecretsPath,
		tokenPath:   opts.TokenPath,
		host:        opts.Host,
		port:        opts.Port,
		logger:      opts.Logger,
		openBrowser: shared.OpenBrowser,
	}
}

// Obtain returns a usable credential, refreshing or re-acquiring as needed.
//
// Returns [shared.ErrConfigMissing] when no client descriptor is available to
// mint a new token, and [shared.ErrReauthRequired] when a silent refresh
// fails; the stale persisted token is deleted in that case.
func (s *Store) Obtain(ctx context.Context) (*oauth2.Token, error) {
	token, err := s.loadToken()
	if err != nil {
		s.logger.Warn("ignoring unreadable token file", "path", s.tokenPath, "error", err)
		token = nil
	}

	if token.Valid() {
		return token, nil
	}

	config, err := s.oauthConfig()
	if err != nil {
		return nil, err
	}

	if token != nil && token.RefreshToken != "" {
		refreshed, err := s.refresh(ctx, config, token)
		if err == nil {
			return refreshed, nil
		}
		s.logger.Warn("token refresh failed, removing stale token", "error", err)
		if rmErr := os.Remove(s.tokenPath); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("failed to remove stale token file", "error", rmErr)
		}
		return nil, fmt.Errorf("%w: token refresh failed: %v", shared.ErrReauthRequired, err)
	}

	token, err = s.authorize(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := s.saveToken(token); err != nil {
		return nil, err
	}

	return token, nil
}

// Client returns an HTTP client that authorizes requests with the credential.
func (s *Store) Client(ctx context.Context, token *oauth2.Token) (*http.Client, error) {
	config, err := s.oauthConfig()
	if err != nil {
		return nil, err
	}
	return config.Client(ctx, token), nil
}

// Status describes the persisted credential without refreshing it.
func (s *Store) Status() string {
	token, err := s.loadToken()
	if err != nil || token == nil {
		return "no stored credential"
	}
	if token.Valid() {
		return fmt.Sprintf("credential valid until %s", token.Expiry.Format(time.RFC3339))
	}
	if token.RefreshToken != "" {
		return "credential expired, refresh token available"
	}
	return "credential expired, reauthorization required"
}

// Clear deletes the persisted token.
func (s *Store) Clear() error {
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// oauthConfig parses the OAuth client descriptor.
func (s *Store) oauthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(s.secretsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (download the OAuth client JSON from https://console.cloud.google.com/apis/credentials and place it there)", shared.ErrConfigMissing, s.secretsPath)
		}
		return nil, fmt.Errorf("failed to read client secrets: %w", err)
	}

	config, err := google.ConfigFromJSON(data, youtube.YoutubeScope)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse client secrets: %v", shared.ErrInvalidConfig, err)
	}

	if s.endpoint != nil {
		config.Endpoint = *s.endpoint
	}

	return config, nil
}

// refresh exchanges the refresh token for a fresh access token and persists it.
func (s *Store) refresh(ctx context.Context, config *oauth2.Config, token *oauth2.Token) (*oauth2.Token, error) {
	refreshed, err := config.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, err
	}

	// TokenSource drops the refresh token when the server does not echo it
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = token.RefreshToken
	}

	if err := s.saveToken(refreshed); err != nil {
		return nil, err
	}

	return refreshed, nil
}

// authorize runs the interactive browser-based authorization flow against an
// ephemeral local callback listener.
func (s *Store) authorize(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	router := server.NewBasicRouter()
	handler := server.NewOAuthHandler(config, state)
	router.Handler(handler)

	callback, err := server.NewCallbackServer(s.host, s.port, router)
	if err != nil {
		return nil, err
	}
	config.RedirectURL = callback.RedirectURL("/callback")

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("starting OAuth callback listener", "addr", callback.Addr())
		if err := callback.Serve(); err != nil {
			serverErrors <- err
		}
	}()

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	if err := s.openBrowser(authURL); err != nil {
		s.logger.Warn("failed to open browser automatically", "error", err)
		s.logger.Info("open this URL in your browser", "url", authURL)
	}

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.OAuthResult
	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("callback server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after %s", shared.ErrTimeout, authTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := callback.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("error shutting down callback server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}

// loadToken reads the persisted token. A missing file returns (nil, nil).
func (s *Store) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

// saveToken persists the token with owner-only permissions.
func (s *Store) saveToken(token *oauth2.Token) error {
	if token == nil {
		return errors.New("token cannot be nil")
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if dir := filepath.Dir(s.tokenPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
	}

	if err := os.WriteFile(s.tokenPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}
