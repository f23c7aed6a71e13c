package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// AuthLogin obtains a credential, running the interactive browser flow when
// no valid token is stored. With --force the stored token is discarded first.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("force") {
		if err := r.store.Clear(); err != nil {
			return err
		}
		r.logger.Info("stored credential discarded")
	}

	r.logger.Info("obtaining credential")

	token, err := r.store.Obtain(ctx)
	if err != nil {
		return err
	}

	r.writePlain("✓ Authenticated with YouTube\n")
	if !token.Expiry.IsZero() {
		r.writePlain("Token valid until: %s\n", token.Expiry.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// AuthStatus shows the stored credential state without refreshing it.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	return r.writePlain("%s\n", r.store.Status())
}

// AuthLogout deletes the stored credential.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("failed to remove credential: %w", err)
	}
	return r.writePlain("✓ Logged out\n")
}
