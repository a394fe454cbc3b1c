package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/rerum-inbox/internal/domain"
)

func parse(t *testing.T, s string) domain.Announcement {
	t.Helper()
	doc, err := domain.ParseAnnouncement([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestStoreCreateRead(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, err := store.Create(ctx, parse(t, `{"motivation":"a"}`))
	require.NoError(t, err)
	second, err := store.Create(ctx, parse(t, `{"motivation":"b"}`))
	require.NoError(t, err)
	assert.NotEqual(t, first.Key, second.Key)

	doc, err := store.Read(ctx, first.Key)
	require.NoError(t, err)
	assert.Equal(t, "a", doc.StringField("motivation"))

	_, err = store.Read(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreListFiltersInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, body := range []string{
		`{"@type":"Announce","target":"t1"}`,
		`{"@type":"Offer","target":"t1"}`,
		`{"@type":"Announce","target":"t2"}`,
	} {
		_, err := store.Create(ctx, parse(t, body))
		require.NoError(t, err)
	}

	all, err := store.List(ctx, domain.StoreQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	announces, err := store.List(ctx, domain.StoreQuery{Field: "@type", Value: "Announce"})
	require.NoError(t, err)
	require.Len(t, announces, 2)
	assert.Equal(t, "t1", announces[0].Document.StringField("target"))
	assert.Equal(t, "t2", announces[1].Document.StringField("target"))

	byTarget, err := store.List(ctx, domain.StoreQuery{Field: "target", Value: "t1"})
	require.NoError(t, err)
	assert.Len(t, byTarget, 2)
}
