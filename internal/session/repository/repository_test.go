package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skiff-term/skiff/internal/session"
)

func newStore(t *testing.T) (*TabRepo, *VisitRepo) {
	t.Helper()
	db, err := session.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTabRepo(db), NewVisitRepo(db, 0)
}

func TestTabLifecycle(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	tabs, _ := newStore(t)

	tab, err := tabs.Open(ctx, "https://example.com", "Example", false)
	require.NoError(t, err)
	require.NotEmpty(t, tab.ID)

	got, err := tabs.Get(ctx, tab.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "https://example.com", got.URL)
	require.False(t, got.IsPrivate)

	require.NoError(t, tabs.Touch(ctx, tab.ID, "https://example.com/page", "Page"))
	got, err = tabs.Get(ctx, tab.ID)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/page", got.URL)
	require.Equal(t, "Page", got.Title)

	require.NoError(t, tabs.Close(ctx, tab.ID))
	got, err = tabs.Get(ctx, tab.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCloseAllPrivate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tabs, _ := newStore(t)

	_, err := tabs.Open(ctx, "https://a.example", "", false)
	require.NoError(t, err)
	_, err = tabs.Open(ctx, "https://b.example", "", true)
	require.NoError(t, err)
	_, err = tabs.Open(ctx, "https://c.example", "", true)
	require.NoError(t, err)

	n, err := tabs.CloseAllPrivate(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	remaining, err := tabs.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "https://a.example", remaining[0].URL)
}

func TestListExcludesPrivate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tabs, _ := newStore(t)

	_, err := tabs.Open(ctx, "https://pub.example", "", false)
	require.NoError(t, err)
	_, err = tabs.Open(ctx, "https://priv.example", "", true)
	require.NoError(t, err)

	public, err := tabs.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, "https://pub.example", public[0].URL)

	all, err := tabs.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)

	count, err := tabs.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestVisitLog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, visits := newStore(t)

	base := session.Now().Add(-time.Minute)
	for i, url := range []string{"https://one.example", "https://two.example", "https://three.example"} {
		require.NoError(t, visits.Record(ctx, Visit{
			URL:       url,
			Title:     "t",
			VisitedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, visits.Record(ctx, Visit{URL: "https://secret.example", IsPrivate: true}))

	recent, err := visits.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, "https://three.example", recent[0].URL, "newest first")

	limited, err := visits.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)

	found, err := visits.Search(ctx, "two", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "https://two.example", found[0].URL)
}

func TestVisitLogHonorsCap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := session.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	visits := NewVisitRepo(db, 2)

	base := session.Now().Add(-time.Minute)
	for i, url := range []string{"https://old.example", "https://mid.example", "https://new.example"} {
		require.NoError(t, visits.Record(ctx, Visit{
			URL:       url,
			VisitedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	recent, err := visits.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "https://new.example", recent[0].URL)
	require.Equal(t, "https://mid.example", recent[1].URL, "oldest visit should be trimmed")
}

func TestPurgeAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, visits := newStore(t)

	require.NoError(t, visits.Record(ctx, Visit{URL: "https://pub.example"}))
	require.NoError(t, visits.Record(ctx, Visit{URL: "https://priv.example", IsPrivate: true}))

	require.NoError(t, visits.PurgePrivate(ctx))
	recent, err := visits.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	require.NoError(t, visits.Clear(ctx))
	recent, err = visits.Recent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, recent)
}
