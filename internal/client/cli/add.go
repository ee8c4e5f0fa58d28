package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/sitekeeper/internal/models"
	"github.com/iudanet/sitekeeper/internal/state"
	"github.com/iudanet/sitekeeper/internal/validation"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing content kind. Usage: sitekeeper add <event|track|image|article>")
	}

	if _, err := c.requireAuth(ctx); err != nil {
		return err
	}

	replica, err := c.loadReplica(ctx)
	if err != nil {
		return err
	}

	var id string
	switch args[0] {
	case "event":
		id, err = c.addEvent(replica)
	case "track":
		id, err = c.addTrack(replica)
	case "image":
		id, err = c.addImage(replica)
	case "article":
		id, err = c.addArticle(replica)
	default:
		return fmt.Errorf("unknown content kind: %s. Use: event, track, image or article", args[0])
	}
	if err != nil {
		return err
	}

	if err := c.saveReplica(ctx, replica); err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ Added. ID: %s\n", id)
	c.io.Println("Run 'sitekeeper sync' to push the change.")
	return nil
}

func (c *Cli) addEvent(replica *state.Replica) (string, error) {
	c.io.Println("=== New Event ===")

	siteID, err := c.io.ReadInput("Site ID: ")
	if err != nil {
		return "", err
	}
	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return "", err
	}
	venue, err := c.io.ReadInput("Venue: ")
	if err != nil {
		return "", err
	}
	dateStr, err := c.io.ReadInput("Date (YYYY-MM-DD): ")
	if err != nil {
		return "", err
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", fmt.Errorf("invalid date: %w", err)
	}
	startTime, err := c.io.ReadInput("Start time (HH:MM): ")
	if err != nil {
		return "", err
	}
	ticketURL, err := c.io.ReadInput("Ticket URL (optional): ")
	if err != nil {
		return "", err
	}

	now := time.Now().Unix()
	event := models.Event{
		ID:        uuid.New().String(),
		SiteID:    siteID,
		Title:     title,
		Venue:     venue,
		Date:      date.Unix(),
		StartTime: startTime,
		TicketURL: ticketURL,
		Status:    models.EventStatusUpcoming,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := replica.AddEvent(event); err != nil {
		return "", err
	}
	return event.ID, nil
}

func (c *Cli) addTrack(replica *state.Replica) (string, error) {
	c.io.Println("=== New Track ===")

	siteID, err := c.io.ReadInput("Site ID: ")
	if err != nil {
		return "", err
	}
	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return "", err
	}
	artist, err := c.io.ReadInput("Original artist (empty for original): ")
	if err != nil {
		return "", err
	}
	genres, err := c.io.ReadInput("Genres (comma separated): ")
	if err != nil {
		return "", err
	}
	durationStr, err := c.io.ReadInput("Duration seconds (optional): ")
	if err != nil {
		return "", err
	}

	duration := 0
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			return "", fmt.Errorf("invalid duration: %w", err)
		}
	}

	track := models.Track{
		ID:              uuid.New().String(),
		SiteID:          siteID,
		Title:           title,
		Artist:          artist,
		Genres:          splitList(genres),
		DurationSeconds: duration,
		IsOriginal:      artist == "",
		CreatedAt:       time.Now().Unix(),
	}
	if err := replica.AddTrack(track); err != nil {
		return "", err
	}
	return track.ID, nil
}

func (c *Cli) addImage(replica *state.Replica) (string, error) {
	c.io.Println("=== New Image ===")

	siteID, err := c.io.ReadInput("Site ID: ")
	if err != nil {
		return "", err
	}
	filename, err := c.io.ReadInput("Filename: ")
	if err != nil {
		return "", err
	}
	urlFull, err := c.io.ReadInput("CDN URL (full size): ")
	if err != nil {
		return "", err
	}
	urlThumb, err := c.io.ReadInput("CDN URL (thumbnail): ")
	if err != nil {
		return "", err
	}
	tags, err := c.io.ReadInput("Tags (comma separated): ")
	if err != nil {
		return "", err
	}

	image := models.Image{
		ID:         uuid.New().String(),
		SiteID:     siteID,
		Filename:   filename,
		URLFull:    urlFull,
		URLThumb:   urlThumb,
		Tags:       splitList(tags),
		UploadedAt: time.Now().Unix(),
	}
	if err := replica.AddImage(image); err != nil {
		return "", err
	}
	return image.ID, nil
}

func (c *Cli) addArticle(replica *state.Replica) (string, error) {
	c.io.Println("=== New Article ===")

	siteID, err := c.io.ReadInput("Site ID: ")
	if err != nil {
		return "", err
	}
	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return "", err
	}
	slug, err := c.io.ReadInput("Slug: ")
	if err != nil {
		return "", err
	}
	if err := validation.ValidateSlug(slug); err != nil {
		return "", err
	}
	content, err := c.io.ReadInput("Content (Markdown): ")
	if err != nil {
		return "", err
	}

	now := time.Now().Unix()
	article := models.Article{
		ID:        uuid.New().String(),
		SiteID:    siteID,
		Title:     title,
		Slug:      slug,
		Content:   content,
		Status:    models.ArticleStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := replica.AddArticle(article); err != nil {
		return "", err
	}
	return article.ID, nil
}

// splitList разбирает ввод вида "rock, indie" в слайс тегов
func splitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
