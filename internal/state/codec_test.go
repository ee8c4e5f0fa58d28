package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sitekeeper/internal/models"
)

// fullSnapshot собирает snapshot с хотя бы одной записью каждого вида,
// включая записи с пустыми опциональными полями.
func fullSnapshot() *Snapshot {
	publishedAt := int64(1700000500)
	lastLogin := int64(1700000900)
	lastSync := int64(1700001000)

	s := NewSnapshot()
	s.Events["e1"] = models.Event{
		ID: "e1", SiteID: "s1", Title: "Show", Venue: "Club",
		Address: "Main st. 1", Date: 1700002000, StartTime: "21:00",
		TicketURL: "https://tickets.example/e1", Description: "desc",
		Status: models.EventStatusUpcoming, CreatedBy: "u1",
		CreatedAt: 100, UpdatedAt: 200,
	}
	// Событие без опциональных полей
	s.Events["e2"] = models.Event{
		ID: "e2", SiteID: "s1", Title: "Show 2", Venue: "Bar",
		Date: 1700003000, StartTime: "19:30",
		Status: models.EventStatusCompleted, CreatedBy: "u1",
		CreatedAt: 110, UpdatedAt: 110,
	}
	s.Tracks["t1"] = models.Track{
		ID: "t1", SiteID: "s1", Title: "Anthem",
		Genres: []string{"rock", "indie"}, DurationSeconds: 245,
		IsOriginal: true, MusicalKey: "Am", CreatedAt: 120,
	}
	s.Images["i1"] = models.Image{
		ID: "i1", SiteID: "s1", Filename: "live.jpg",
		URLFull: "https://cdn.example/live.jpg", URLThumb: "https://cdn.example/live_t.jpg",
		SizeBytes: 123456, Width: 1920, Height: 1080,
		Tags: []string{"live"}, UploadedBy: "u1", UploadedAt: 130,
	}
	s.Videos["v1"] = models.Video{
		ID: "v1", SiteID: "s1", Title: "Live set",
		SourceURL: "https://youtube.com/watch?v=abc",
		ViewCount: 42, PublishedAt: 140,
	}
	s.Articles["a1"] = models.Article{
		ID: "a1", SiteID: "s1", Title: "News", Slug: "news",
		Content: "# News", AuthorID: "u1",
		Status: models.ArticleStatusPublished, PublishedAt: &publishedAt,
		CreatedAt: 150, UpdatedAt: 160,
	}
	// Статья-черновик: PublishedAt nil, опциональные поля пустые
	s.Articles["a2"] = models.Article{
		ID: "a2", SiteID: "s1", Title: "Draft", Slug: "draft",
		Content: "wip", AuthorID: "u1",
		Status: models.ArticleStatusDraft, CreatedAt: 170, UpdatedAt: 170,
	}
	s.Sites["s1"] = models.Site{
		ID: "s1", Slug: "band", Name: "The Band",
		OwnerID: "u1", MemberIDs: []string{"u1", "u2"},
		Theme: "dark", Status: models.SiteStatusActive, CreatedAt: 90,
	}
	s.Users["u1"] = models.User{
		ID: "u1", Email: "owner@example.com", Name: "Owner",
		Roles: []string{"admin"}, Status: models.UserStatusActive,
		CreatedAt: 80, LastLogin: &lastLogin,
	}
	// Пользователь, который еще не входил: LastLogin nil
	s.Users["u2"] = models.User{
		ID: "u2", Email: "member@example.com", Name: "Member",
		Status: models.UserStatusPending, CreatedAt: 85,
	}
	s.SyncStatus = models.StatusFailed("remote unreachable")
	s.LastSync = &lastSync
	s.Clock = 17
	return s
}

func TestCodec_RoundTrip(t *testing.T) {
	original := fullSnapshot()

	data, err := Encode(original)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, original, decoded)
}

func TestCodec_RoundTripEmpty(t *testing.T) {
	original := NewSnapshot()

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, original, decoded)
}

func TestDecode_MalformedBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "not json", data: []byte("definitely not json")},
		{name: "truncated", data: []byte(`{"events":{`)},
		{name: "wrong type", data: []byte(`{"clock":"not-a-number"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)

			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindSerialization, kind)
		})
	}
}

func TestDecode_MissingCollectionsBecomeEmpty(t *testing.T) {
	decoded, err := Decode([]byte(`{"clock":3,"sync_status":{"state":"synced"},"last_sync":null}`))
	require.NoError(t, err)

	assert.NotNil(t, decoded.Events)
	assert.NotNil(t, decoded.Users)
	assert.Equal(t, uint64(3), decoded.Clock)

	// Decoded snapshot готов к merge без паник по nil map
	r := New()
	require.NoError(t, r.Merge(decoded))
}
