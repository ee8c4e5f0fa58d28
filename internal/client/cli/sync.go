package cli

import (
	"context"
	"fmt"
	"time"
)

// syncTimeout ограничивает цикл синхронизации: брошенная
// по дедлайну попытка переводит реплику в failed("timeout")
const syncTimeout = 60 * time.Second

func (c *Cli) runSync(ctx context.Context) error {
	if _, err := c.requireAuth(ctx); err != nil {
		return err
	}

	replica, err := c.loadReplica(ctx)
	if err != nil {
		return err
	}

	c.io.Println("Synchronizing...")

	syncCtx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	result, err := c.syncService.Sync(syncCtx, replica)
	if err != nil {
		// Статус с причиной уже выставлен сервисом, фиксируем его локально
		if saveErr := c.saveReplica(ctx, replica); saveErr != nil {
			c.io.Printf("Warning: failed to save replica: %v\n", saveErr)
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Sync completed")
	c.io.Printf("Pulled: %v  Pushed: %v  Clock: %d\n", result.Pulled, result.Pushed, result.Clock)

	return nil
}

func (c *Cli) runWatch(ctx context.Context) error {
	if _, err := c.requireAuth(ctx); err != nil {
		return err
	}

	replica, err := c.loadReplica(ctx)
	if err != nil {
		return err
	}

	c.io.Println("Watching for changes. Press Ctrl+C to stop.")

	if err := c.syncService.Watch(ctx, replica); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
