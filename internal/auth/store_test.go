package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ytag/internal/shared"
	"golang.org/x/oauth2"
)

const secretsJSON = `{
  "installed": {
    "client_id": "client-id.apps.googleusercontent.com",
    "client_secret": "client-secret",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://localhost"]
  }
}`

func writeSecrets(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "client_secrets.json")
	if err := os.WriteFile(path, []byte(secretsJSON), 0600); err != nil {
		t.Fatalf("Failed to write secrets file: %v", err)
	}
	return path
}

func writeToken(t *testing.T, dir string, token *oauth2.Token) string {
	t.Helper()
	path := filepath.Join(dir, "token.json")
	data, err := json.Marshal(token)
	if err != nil {
		t.Fatalf("Failed to marshal token: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to write token file: %v", err)
	}
	return path
}

func TestStore_Obtain(t *testing.T) {
	t.Run("valid stored token is returned as-is", func(t *testing.T) {
		dir := t.TempDir()
		tokenPath := writeToken(t, dir, &oauth2.Token{
			AccessToken: "valid-token",
			TokenType:   "Bearer",
			Expiry:      time.Now().Add(time.Hour),
		})

		store := NewStore(Opts{
			SecretsPath: filepath.Join(dir, "does-not-matter.json"),
			TokenPath:   tokenPath,
		})

		token, err := store.Obtain(context.Background())
		if err != nil {
			t.Fatalf("Obtain() error = %v", err)
		}
		if token.AccessToken != "valid-token" {
			t.Errorf("Obtain() accessToken = %q, want %q", token.AccessToken, "valid-token")
		}
	})

	t.Run("missing secrets file fails with ConfigMissing", func(t *testing.T) {
		dir := t.TempDir()

		store := NewStore(Opts{
			SecretsPath: filepath.Join(dir, "missing.json"),
			TokenPath:   filepath.Join(dir, "token.json"),
		})

		_, err := store.Obtain(context.Background())
		if !errors.Is(err, shared.ErrConfigMissing) {
			t.Fatalf("Obtain() error = %v, want ErrConfigMissing", err)
		}
		if !strings.Contains(err.Error(), "console.cloud.google.com") {
			t.Errorf("Obtain() error should include remediation instructions, got: %v", err)
		}
	})

	t.Run("refresh failure deletes stale token and fails with ReauthRequired", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid_grant"}`))
		}))
		defer ts.Close()

		dir := t.TempDir()
		secretsPath := writeSecrets(t, dir)
		tokenPath := writeToken(t, dir, &oauth2.Token{
			AccessToken:  "stale-token",
			TokenType:    "Bearer",
			RefreshToken: "refresh-token",
			Expiry:       time.Now().Add(-time.Hour),
		})

		store := NewStore(Opts{SecretsPath: secretsPath, TokenPath: tokenPath})
		store.endpoint = &oauth2.Endpoint{AuthURL: ts.URL + "/auth", TokenURL: ts.URL + "/token"}

		_, err := store.Obtain(context.Background())
		if !errors.Is(err, shared.ErrReauthRequired) {
			t.Fatalf("Obtain() error = %v, want ErrReauthRequired", err)
		}

		if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
			t.Error("Obtain() should delete the stale token file after a failed refresh")
		}
	})

	t.Run("successful refresh persists the new token", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "fresh-token", "token_type": "Bearer", "expires_in": 3600}`))
		}))
		defer ts.Close()

		dir := t.TempDir()
		secretsPath := writeSecrets(t, dir)
		tokenPath := writeToken(t, dir, &oauth2.Token{
			AccessToken:  "stale-token",
			TokenType:    "Bearer",
			RefreshToken: "refresh-token",
			Expiry:       time.Now().Add(-time.Hour),
		})

		store := NewStore(Opts{SecretsPath: secretsPath, TokenPath: tokenPath})
		store.endpoint = &oauth2.Endpoint{AuthURL: ts.URL + "/auth", TokenURL: ts.URL + "/token"}

		token, err := store.Obtain(context.Background())
		if err != nil {
			t.Fatalf("Obtain() error = %v", err)
		}
		if token.AccessToken != "fresh-token" {
			t.Errorf("Obtain() accessToken = %q, want %q", token.AccessToken, "fresh-token")
		}
		if token.RefreshToken != "refresh-token" {
			t.Errorf("Obtain() should retain the refresh token when the server omits it, got %q", token.RefreshToken)
		}

		var persisted oauth2.Token
		data, err := os.ReadFile(tokenPath)
		if err != nil {
			t.Fatalf("Failed to read persisted token: %v", err)
		}
		if err := json.Unmarshal(data, &persisted); err != nil {
			t.Fatalf("Failed to parse persisted token: %v", err)
		}
		if persisted.AccessToken != "fresh-token" {
			t.Errorf("persisted accessToken = %q, want %q", persisted.AccessToken, "fresh-token")
		}
	})

	t.Run("corrupt token file falls through to authorization", func(t *testing.T) {
		dir := t.TempDir()
		tokenPath := filepath.Join(dir, "token.json")
		if err := os.WriteFile(tokenPath, []byte("{not json"), 0600); err != nil {
			t.Fatalf("Failed to write token file: %v", err)
		}

		store := NewStore(Opts{
			SecretsPath: filepath.Join(dir, "missing.json"),
			TokenPath:   tokenPath,
		})

		// With no secrets file, the fallthrough surfaces ConfigMissing rather
		// than crashing on the unreadable token.
		_, err := store.Obtain(context.Background())
		if !errors.Is(err, shared.ErrConfigMissing) {
			t.Errorf("Obtain() error = %v, want ErrConfigMissing", err)
		}
	})
}

func TestStore_Status(t *testing.T) {
	t.Run("no stored credential", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(Opts{TokenPath: filepath.Join(dir, "token.json")})
		if got := store.Status(); got != "no stored credential" {
			t.Errorf("Status() = %q", got)
		}
	})

	t.Run("valid credential", func(t *testing.T) {
		dir := t.TempDir()
		tokenPath := writeToken(t, dir, &oauth2.Token{
			AccessToken: "tok",
			Expiry:      time.Now().Add(time.Hour),
		})
		store := NewStore(Opts{TokenPath: tokenPath})
		if got := store.Status(); !strings.HasPrefix(got, "credential valid until") {
			t.Errorf("Status() = %q", got)
		}
	})

	t.Run("expired with refresh token", func(t *testing.T) {
		dir := t.TempDir()
		tokenPath := writeToken(t, dir, &oauth2.Token{
			AccessToken:  "tok",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(-time.Hour),
		})
		store := NewStore(Opts{TokenPath: tokenPath})
		if got := store.Status(); got != "credential expired, refresh token available" {
			t.Errorf("Status() = %q", got)
		}
	})

	t.Run("expired without refresh token", func(t *testing.T) {
		dir := t.TempDir()
		tokenPath := writeToken(t, dir, &oauth2.Token{
			AccessToken: "tok",
			Expiry:      time.Now().Add(-time.Hour),
		})
		store := NewStore(Opts{TokenPath: tokenPath})
		if got := store.Status(); got != "credential expired, reauthorization required" {
			t.Errorf("Status() = %q", got)
		}
	})
}

func TestStore_Clear(t *testing.T) {
	t.Run("removes the token file", func(t *testing.T) {
		dir := t.TempDir()
		tokenPath := writeToken(t, dir, &oauth2.Token{AccessToken: "tok"})

		store := NewStore(Opts{TokenPath: tokenPath})
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
			t.Error("Clear() should remove the token file")
		}
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(Opts{TokenPath: filepath.Join(dir, "never-created.json")})
		if err := store.Clear(); err != nil {
			t.Errorf("Clear() error = %v", err)
		}
	})
}
