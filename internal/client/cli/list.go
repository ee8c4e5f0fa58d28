package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: sitekeeper list <events|tracks|images|articles> <site-id>")
	}

	replica, err := c.loadReplica(ctx)
	if err != nil {
		return err
	}

	kind, siteID := args[0], args[1]

	switch kind {
	case "events", "event":
		events := replica.ListSiteEvents(siteID)
		if len(events) == 0 {
			c.io.Println("No events found.")
			return nil
		}
		c.io.Printf("Found %d event(s):\n\n", len(events))
		for i, e := range events {
			c.io.Printf("%d. %s\n", i+1, e.Title)
			c.io.Printf("   ID:    %s\n", e.ID)
			c.io.Printf("   Venue: %s\n", e.Venue)
			c.io.Printf("   Date:  %s %s\n", time.Unix(e.Date, 0).Format("2006-01-02"), e.StartTime)
			c.io.Printf("   Status: %s\n", e.Status)
			c.io.Println()
		}
	case "tracks", "track":
		tracks := replica.ListSiteTracks(siteID)
		if len(tracks) == 0 {
			c.io.Println("No tracks found.")
			return nil
		}
		c.io.Printf("Found %d track(s):\n\n", len(tracks))
		for i, tr := range tracks {
			c.io.Printf("%d. %s\n", i+1, tr.Title)
			c.io.Printf("   ID: %s\n", tr.ID)
			if !tr.IsOriginal {
				c.io.Printf("   Cover of: %s\n", tr.Artist)
			}
			c.io.Println()
		}
	case "images", "image":
		images := replica.ListSiteImages(siteID)
		if len(images) == 0 {
			c.io.Println("No images found.")
			return nil
		}
		c.io.Printf("Found %d image(s):\n\n", len(images))
		for i, img := range images {
			c.io.Printf("%d. %s\n", i+1, img.Filename)
			c.io.Printf("   ID:  %s\n", img.ID)
			c.io.Printf("   URL: %s\n", img.URLFull)
			c.io.Println()
		}
	case "articles", "article":
		articles := replica.ListSiteArticles(siteID)
		if len(articles) == 0 {
			c.io.Println("No articles found.")
			return nil
		}
		c.io.Printf("Found %d article(s):\n\n", len(articles))
		for i, a := range articles {
			c.io.Printf("%d. %s\n", i+1, a.Title)
			c.io.Printf("   ID:     %s\n", a.ID)
			c.io.Printf("   Slug:   %s\n", a.Slug)
			c.io.Printf("   Status: %s\n", a.Status)
			c.io.Println()
		}
	default:
		return fmt.Errorf("unknown content kind: %s", kind)
	}

	return nil
}
