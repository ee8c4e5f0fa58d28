package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: sitekeeper delete <event|track|image|article> <id>")
	}

	if _, err := c.requireAuth(ctx); err != nil {
		return err
	}

	replica, err := c.loadReplica(ctx)
	if err != nil {
		return err
	}

	kind, id := args[0], args[1]

	switch kind {
	case "event":
		replica.DeleteEvent(id)
	case "track":
		replica.DeleteTrack(id)
	case "image":
		replica.DeleteImage(id)
	case "article":
		replica.DeleteArticle(id)
	default:
		return fmt.Errorf("unknown content kind: %s", kind)
	}

	if err := c.saveReplica(ctx, replica); err != nil {
		return err
	}

	c.io.Printf("✓ Deleted %s %s\n", kind, id)
	c.io.Println("Run 'sitekeeper sync' to push the change.")
	return nil
}
