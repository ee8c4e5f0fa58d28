package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: sitekeeper get <event|track|image|article> <id>")
	}

	replica, err := c.loadReplica(ctx)
	if err != nil {
		return err
	}

	kind, id := args[0], args[1]

	switch kind {
	case "event":
		e, ok := replica.GetEvent(id)
		if !ok {
			return fmt.Errorf("event %s not found", id)
		}
		c.io.Printf("Title:       %s\n", e.Title)
		c.io.Printf("Venue:       %s\n", e.Venue)
		if e.Address != "" {
			c.io.Printf("Address:     %s\n", e.Address)
		}
		c.io.Printf("Date:        %s %s\n", time.Unix(e.Date, 0).Format("2006-01-02"), e.StartTime)
		if e.TicketURL != "" {
			c.io.Printf("Tickets:     %s\n", e.TicketURL)
		}
		if e.Description != "" {
			c.io.Printf("Description: %s\n", e.Description)
		}
		c.io.Printf("Status:      %s\n", e.Status)
	case "track":
		tr, ok := replica.GetTrack(id)
		if !ok {
			return fmt.Errorf("track %s not found", id)
		}
		c.io.Printf("Title:    %s\n", tr.Title)
		if !tr.IsOriginal {
			c.io.Printf("Cover of: %s\n", tr.Artist)
		}
		if len(tr.Genres) > 0 {
			c.io.Printf("Genres:   %v\n", tr.Genres)
		}
		if tr.DurationSeconds > 0 {
			c.io.Printf("Duration: %ds\n", tr.DurationSeconds)
		}
		if tr.Notes != "" {
			c.io.Printf("Notes:    %s\n", tr.Notes)
		}
	case "image":
		img, ok := replica.GetImage(id)
		if !ok {
			return fmt.Errorf("image %s not found", id)
		}
		c.io.Printf("Filename:  %s\n", img.Filename)
		c.io.Printf("Full URL:  %s\n", img.URLFull)
		c.io.Printf("Thumbnail: %s\n", img.URLThumb)
		if img.Width > 0 {
			c.io.Printf("Size:      %dx%d, %d bytes\n", img.Width, img.Height, img.SizeBytes)
		}
	case "article":
		a, ok := replica.GetArticle(id)
		if !ok {
			return fmt.Errorf("article %s not found", id)
		}
		c.io.Printf("Title:  %s\n", a.Title)
		c.io.Printf("Slug:   %s\n", a.Slug)
		c.io.Printf("Status: %s\n", a.Status)
		if a.PublishedAt != nil {
			c.io.Printf("Published: %s\n", time.Unix(*a.PublishedAt, 0).Format(time.RFC3339))
		}
		c.io.Println()
		c.io.Println(a.Content)
	default:
		return fmt.Errorf("unknown content kind: %s", kind)
	}

	return nil
}
