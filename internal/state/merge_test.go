package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/sitekeeper/internal/models"
)

func TestMerge_Scenario(t *testing.T) {
	// Сценарий из жизни: локальная правка события, затем merge
	// с foreign snapshot, где то же событие правили позже.
	r := New()

	local := testEvent("e1", "s1", 5)
	require.NoError(t, r.AddEvent(local))
	assert.Equal(t, uint64(1), r.Clock())
	assert.True(t, r.Status().IsPending())
	require.Len(t, r.ListSiteEvents("s1"), 1)

	foreign := NewSnapshot()
	foreignEvent := testEvent("e1", "s1", 10)
	foreignEvent.Venue = "Foreign Venue"
	foreign.Events["e1"] = foreignEvent
	foreign.Events["e2"] = testEvent("e2", "s1", 3)
	foreign.Clock = 7

	require.NoError(t, r.Merge(foreign))

	events := r.ListSiteEvents("s1")
	assert.Len(t, events, 2)

	got, ok := r.GetEvent("e1")
	require.True(t, ok)
	assert.Equal(t, "Foreign Venue", got.Venue)
	assert.Equal(t, int64(10), got.UpdatedAt)

	assert.True(t, r.Status().IsSynced())
	assert.Equal(t, uint64(7), r.Clock())
	assert.NotNil(t, r.LastSync())
}

func TestMerge_LWWTieBreakKeepsLocal(t *testing.T) {
	r := New()

	local := testEvent("e1", "s1", 1000)
	local.Venue = "Local Venue"
	require.NoError(t, r.AddEvent(local))

	foreign := NewSnapshot()
	foreignEvent := testEvent("e1", "s1", 1000)
	foreignEvent.Venue = "Foreign Venue"
	foreign.Events["e1"] = foreignEvent

	require.NoError(t, r.Merge(foreign))

	// Равные updated_at: ложной перезаписи нет, локальная запись остается
	got, ok := r.GetEvent("e1")
	require.True(t, ok)
	assert.Equal(t, "Local Venue", got.Venue)
}

func TestMerge_OlderForeignLoses(t *testing.T) {
	r := New()

	local := testEvent("e1", "s1", 20)
	local.Venue = "Local Venue"
	require.NoError(t, r.AddEvent(local))

	foreign := NewSnapshot()
	foreignEvent := testEvent("e1", "s1", 10)
	foreignEvent.Venue = "Stale Venue"
	foreign.Events["e1"] = foreignEvent

	require.NoError(t, r.Merge(foreign))

	got, _ := r.GetEvent("e1")
	assert.Equal(t, "Local Venue", got.Venue)
}

func TestMerge_UntimestampedRemoteWins(t *testing.T) {
	r := New()
	require.NoError(t, r.AddTrack(testTrack("t1", "s1", "A")))

	foreign := NewSnapshot()
	foreign.Tracks["t1"] = testTrack("t1", "s1", "B")

	require.NoError(t, r.Merge(foreign))

	// Remote always wins для треков, независимо от каких-либо timestamp
	got, ok := r.GetTrack("t1")
	require.True(t, ok)
	assert.Equal(t, "B", got.Title)
}

func TestMerge_UntimestampedKeepsBothSides(t *testing.T) {
	r := New()
	require.NoError(t, r.AddTrack(testTrack("local-only", "s1", "L")))

	foreign := NewSnapshot()
	foreign.Tracks["foreign-only"] = testTrack("foreign-only", "s1", "F")

	require.NoError(t, r.Merge(foreign))

	assert.Len(t, r.ListSiteTracks("s1"), 2)
}

func TestMerge_SitesComparedByCreatedAt(t *testing.T) {
	older := models.Site{
		ID: "site-1", Slug: "band", Name: "Old Name",
		OwnerID: "u1", Theme: "dark", Status: models.SiteStatusActive,
		CreatedAt: 100,
	}
	newer := older
	newer.Name = "New Name"
	newer.CreatedAt = 200

	localSnap := NewSnapshot()
	localSnap.Sites["site-1"] = older
	r, err := FromSnapshot(localSnap)
	require.NoError(t, err)

	foreign := NewSnapshot()
	foreign.Sites["site-1"] = newer
	require.NoError(t, r.Merge(foreign))

	got, ok := r.GetSite("site-1")
	require.True(t, ok)
	assert.Equal(t, "New Name", got.Name)

	// Обратное направление: более старый created_at не замещает
	stale := older
	stale.Name = "Stale Name"
	foreign2 := NewSnapshot()
	foreign2.Sites["site-1"] = stale
	require.NoError(t, r.Merge(foreign2))

	got, _ = r.GetSite("site-1")
	assert.Equal(t, "New Name", got.Name)
}

func TestMerge_Idempotent(t *testing.T) {
	r := New()
	require.NoError(t, r.AddEvent(testEvent("e1", "s1", 5)))
	require.NoError(t, r.AddTrack(testTrack("t1", "s1", "A")))

	foreign := NewSnapshot()
	foreign.Events["e1"] = testEvent("e1", "s1", 10)
	foreign.Events["e2"] = testEvent("e2", "s1", 3)
	foreign.Tracks["t1"] = testTrack("t1", "s1", "B")
	foreign.Users["u1"] = models.User{ID: "u1", Email: "a@b.c", Name: "A", Status: models.UserStatusActive}
	foreign.Clock = 9

	require.NoError(t, r.Merge(foreign))
	first := r.Snapshot()

	// Повторный merge того же snapshot ничего не меняет, кроме last_sync
	require.NoError(t, r.Merge(foreign))
	second := r.Snapshot()

	first.LastSync = nil
	second.LastSync = nil
	assert.Equal(t, first, second)
}

func TestMerge_CommutativeOutcome(t *testing.T) {
	s1 := NewSnapshot()
	s1.Events["e1"] = testEvent("e1", "s1", 10)
	s1.Events["e2"] = testEvent("e2", "s1", 3)
	s1.Articles["a1"] = models.Article{ID: "a1", SiteID: "s1", Title: "v1", UpdatedAt: 50}
	s1.Clock = 4

	s2 := NewSnapshot()
	s2.Events["e1"] = testEvent("e1", "s1", 7)
	s2.Events["e3"] = testEvent("e3", "s1", 1)
	s2.Articles["a1"] = models.Article{ID: "a1", SiteID: "s1", Title: "v2", UpdatedAt: 60}
	s2.Clock = 11

	mergeBoth := func(first, second *Snapshot) *Snapshot {
		r := New()
		require.NoError(t, r.Merge(first))
		require.NoError(t, r.Merge(second))
		snap := r.Snapshot()
		snap.LastSync = nil
		return snap
	}

	forward := mergeBoth(s1, s2)
	backward := mergeBoth(s2, s1)

	// LWW по updated_at не зависит от порядка слияния
	assert.Equal(t, forward, backward)
	assert.Equal(t, int64(10), forward.Events["e1"].UpdatedAt)
	assert.Equal(t, "v2", forward.Articles["a1"].Title)
	assert.Equal(t, uint64(11), forward.Clock)
}

func TestMerge_ClockTakesMax(t *testing.T) {
	tests := []struct {
		name         string
		localClock   int
		foreignClock uint64
		want         uint64
	}{
		{name: "foreign ahead", localClock: 2, foreignClock: 10, want: 10},
		{name: "local ahead", localClock: 5, foreignClock: 1, want: 5},
		{name: "equal", localClock: 3, foreignClock: 3, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			for i := 0; i < tt.localClock; i++ {
				r.DeleteEvent("warmup")
			}

			foreign := NewSnapshot()
			foreign.Clock = tt.foreignClock

			require.NoError(t, r.Merge(foreign))
			assert.Equal(t, tt.want, r.Clock())
		})
	}
}

func TestMerge_RejectsInconsistentForeign(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(s *Snapshot)
	}{
		{
			name: "event key mismatch",
			corrupt: func(s *Snapshot) {
				s.Events["e1"] = testEvent("e-other", "s1", 1)
			},
		},
		{
			name: "empty track id",
			corrupt: func(s *Snapshot) {
				s.Tracks["t1"] = models.Track{SiteID: "s1", Title: "X"}
			},
		},
		{
			name: "user key mismatch",
			corrupt: func(s *Snapshot) {
				s.Users["u1"] = models.User{ID: "u2", Email: "a@b.c"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			require.NoError(t, r.AddEvent(testEvent("e-local", "s1", 5)))
			before := r.Snapshot()

			foreign := NewSnapshot()
			foreign.Events["e-good"] = testEvent("e-good", "s1", 2)
			tt.corrupt(foreign)

			err := r.Merge(foreign)
			require.Error(t, err)

			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindMergeConflict, kind)

			// Весь merge отклонен, локальная реплика не тронута
			assert.Equal(t, before, r.Snapshot())
		})
	}
}

func TestMerge_NilForeign(t *testing.T) {
	r := New()

	err := r.Merge(nil)
	require.Error(t, err)

	kind, _ := KindOf(err)
	assert.Equal(t, KindMergeConflict, kind)
}

func TestMerge_SubsetAndSuperset(t *testing.T) {
	r := New()
	require.NoError(t, r.AddEvent(testEvent("e1", "s1", 5)))
	require.NoError(t, r.AddEvent(testEvent("e2", "s1", 5)))

	// Строгое подмножество локального состояния
	subset := NewSnapshot()
	subset.Events["e1"] = testEvent("e1", "s1", 5)
	require.NoError(t, r.Merge(subset))
	assert.Len(t, r.ListSiteEvents("s1"), 2)

	// Надмножество
	superset := r.Snapshot()
	superset.Events["e3"] = testEvent("e3", "s1", 5)
	require.NoError(t, r.Merge(superset))
	assert.Len(t, r.ListSiteEvents("s1"), 3)
}

// staticResolver для проверки, что Merge использует подключенную стратегию.
type staticResolver struct {
	called bool
}

func (sr *staticResolver) Resolve(local, foreign *Snapshot) error {
	sr.called = true
	// Use-local: коллекции foreign игнорируются целиком
	return nil
}

func TestMerge_CustomResolver(t *testing.T) {
	resolver := &staticResolver{}
	r := NewWithResolver(resolver)
	require.NoError(t, r.AddEvent(testEvent("e1", "s1", 5)))

	foreign := NewSnapshot()
	foreign.Events["e2"] = testEvent("e2", "s1", 9)
	foreign.Clock = 42

	require.NoError(t, r.Merge(foreign))

	assert.True(t, resolver.called)
	// Стратегия use-local не взяла e2, но clock/status принадлежат Merge
	assert.Len(t, r.ListSiteEvents("s1"), 1)
	assert.Equal(t, uint64(42), r.Clock())
	assert.True(t, r.Status().IsSynced())
}
