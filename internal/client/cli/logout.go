package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	// Локальная реплика без сессии бесполезна: новый логин
	// начнется с полного pull
	if err := c.snapshots.ClearSnapshot(ctx); err != nil {
		c.io.Printf("Warning: failed to clear local snapshot: %v\n", err)
	}

	c.io.Println("✓ Logged out.")
	return nil
}
