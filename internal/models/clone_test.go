package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_CloneIndependentGenres(t *testing.T) {
	original := Track{
		ID:     "trk-1",
		SiteID: "site-1",
		Title:  "Midnight Drive",
		Genres: []string{"rock", "indie"},
	}

	clone := original.Clone()
	clone.Genres[0] = "metal"

	assert.Equal(t, "rock", original.Genres[0])
	assert.Equal(t, "metal", clone.Genres[0])
}

func TestSite_CloneIndependentMembers(t *testing.T) {
	original := Site{
		ID:        "site-1",
		Slug:      "black-mill",
		Name:      "Black Mill",
		MemberIDs: []string{"usr-1", "usr-2"},
	}

	clone := original.Clone()
	clone.MemberIDs = append(clone.MemberIDs, "usr-3")

	assert.Len(t, original.MemberIDs, 2)
	assert.Len(t, clone.MemberIDs, 3)
}

func TestArticle_CloneIndependentPublishedAt(t *testing.T) {
	publishedAt := int64(1700000000)
	original := Article{
		ID:          "art-1",
		SiteID:      "site-1",
		Title:       "Tour Diary",
		Slug:        "tour-diary",
		Status:      ArticleStatusPublished,
		PublishedAt: &publishedAt,
	}

	clone := original.Clone()
	require.NotNil(t, clone.PublishedAt)
	*clone.PublishedAt = 1800000000

	assert.Equal(t, int64(1700000000), *original.PublishedAt)
}

func TestUser_CloneIndependent(t *testing.T) {
	lastLogin := int64(1700000000)
	original := User{
		ID:        "usr-1",
		Roles:     []string{"admin"},
		LastLogin: &lastLogin,
	}

	clone := original.Clone()
	clone.Roles[0] = "editor"
	*clone.LastLogin = 0

	assert.Equal(t, "admin", original.Roles[0])
	assert.Equal(t, int64(1700000000), *original.LastLogin)
}

func TestClone_NilSlicesStayNil(t *testing.T) {
	clone := Track{ID: "trk-1"}.Clone()
	assert.Nil(t, clone.Genres)

	siteClone := Site{ID: "site-1"}.Clone()
	assert.Nil(t, siteClone.MemberIDs)
}
