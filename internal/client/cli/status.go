package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/sitekeeper/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	isAuth, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Session: not authenticated")
		c.io.Println()
		c.io.Println("Run 'sitekeeper login' to authenticate.")
	} else {
		authData, err := c.authService.GetAuth(ctx)
		if err != nil {
			return fmt.Errorf("failed to get auth data: %w", err)
		}

		expiresAt := time.Unix(authData.ExpiresAt, 0)
		c.io.Println("Session: authenticated")
		c.io.Printf("Username:      %s\n", authData.Username)
		c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
	}

	replica, err := c.loadReplica(ctx)
	if err != nil {
		return err
	}

	status := replica.Status()
	c.io.Println()
	c.io.Printf("Replica state: %s\n", status.State)
	if status.State == models.SyncStateFailed && status.Reason != "" {
		c.io.Printf("Failure:       %s\n", status.Reason)
	}
	c.io.Printf("Logical clock: %d\n", replica.Clock())

	if last := replica.LastSync(); last != nil {
		c.io.Printf("Last sync:     %s\n", time.Unix(*last, 0).Format(time.RFC3339))
	} else {
		c.io.Println("Last sync:     never")
	}

	if replica.NeedsSync() {
		c.io.Println()
		c.io.Println("⚠️  Local changes pending. Run 'sitekeeper sync'.")
	}

	return nil
}
