package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lib(ids ...string) Library {
	out := make(Library, 0, len(ids))
	for _, id := range ids {
		out = append(out, SavedVideo{ID: id, Title: "t" + id})
	}
	return out
}

func TestLibrary_Prepend(t *testing.T) {
	base := lib("7", "3")
	got := base.Prepend(SavedVideo{ID: "42"})

	require.Len(t, got, 3)
	assert.Equal(t, "42", got[0].ID)
	assert.Equal(t, "7", got[1].ID)
	assert.Equal(t, lib("7", "3"), base, "input must not change")
}

func TestLibrary_Without(t *testing.T) {
	base := lib("42", "7")

	assert.Equal(t, lib("7"), base.Without("42"))
	assert.Equal(t, lib("42", "7"), base.Without("missing"))
	assert.Equal(t, lib("42", "7"), base)
}

func TestLibrary_PrependWithoutRoundTrip(t *testing.T) {
	base := lib("9", "5", "1")
	r := SavedVideo{ID: "10"}

	assert.Equal(t, base, base.Prepend(r).Without(r.ID))
}

func TestLibrary_FindAndContains(t *testing.T) {
	l := lib("42", "7")

	v, ok := l.Find("7")
	require.True(t, ok)
	assert.Equal(t, "t7", v.Title)

	_, ok = l.Find("8")
	assert.False(t, ok)
	assert.True(t, l.Contains("42"))
	assert.False(t, Library(nil).Contains("42"))
}

func TestLibrary_Clone(t *testing.T) {
	l := lib("1")
	c := l.Clone()
	c[0].Title = "changed"
	assert.Equal(t, "t1", l[0].Title)
}

func TestLibrary_SyncedAndPending(t *testing.T) {
	base := lib("3", "2", "1")
	got := base.Synced("2", "missing")

	assert.True(t, got[1].CloudSynced)
	assert.False(t, got[0].CloudSynced)
	assert.False(t, base[1].CloudSynced, "input must not change")

	pending := got.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "3", pending[0].ID)
	assert.Equal(t, "1", pending[1].ID)
}

func TestNewSavedVideo(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

	v := NewSavedVideo("/videos/processed_1.mp4", now, nil)

	assert.Equal(t, "1792398600000", v.ID)
	assert.Contains(t, v.Title, "Workout ")
	assert.Equal(t, "2026-10-19T08:30:00.000Z", v.Date)
	assert.Equal(t, "/videos/processed_1.mp4", v.LocalURI)
	assert.False(t, v.CloudSynced)
}

func TestNewSavedVideo_AvoidsIDCollision(t *testing.T) {
	now := time.UnixMilli(1000)
	existing := lib("1000", "1001")

	v := NewSavedVideo("p", now, existing)
	assert.Equal(t, "1002", v.ID)
}

func TestSavedVideo_JSONLayout(t *testing.T) {
	b, err := json.Marshal(SavedVideo{ID: "42", Title: "Workout", Date: "2026-10-19T08:30:00Z", LocalURI: "/v.mp4"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42","title":"Workout","date":"2026-10-19T08:30:00Z","localUri":"/v.mp4"}`, string(b))

	var v SavedVideo
	require.NoError(t, json.Unmarshal([]byte(`{"id":"7","title":"x","date":"d","localUri":"u","cloudSynced":true}`), &v))
	assert.True(t, v.CloudSynced)
	assert.Equal(t, "u", v.LocalURI)
}

func TestLocalFile_Name(t *testing.T) {
	f := LocalFile{Path: "/tmp/videos/processed_5.mp4"}
	assert.Equal(t, "processed_5.mp4", f.Name())
	assert.Equal(t, "/tmp/videos/processed_5.mp4", f.String())
}
