package persist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-garden/internal/garden"
	"github.com/vovakirdan/tui-garden/internal/storage"
)

func TestOpenRecordsProgress(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "garden.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var after []float64
	cfg := SaverConfig{
		Quiet:      time.Hour,
		MaxDelay:   time.Hour,
		Logger:     quietLogger(),
		AfterWrite: func(st garden.State) { after = append(after, st.Suns) },
	}

	sess, err := Open(store, "garden:alice", cfg)
	require.NoError(t, err)
	assert.Equal(t, "garden:alice", sess.Key)

	_, err = sess.Economy.Purchase(1, 1)
	require.NoError(t, err)
	require.NoError(t, sess.Close())

	history, err := store.History("garden:alice", 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.InDelta(t, 350.0, history[0].Suns, 1e-9)
	assert.Equal(t, 1, history[0].Items)
	assert.Equal(t, []float64{350}, after, "caller hook still runs")

	// Reopening picks up the saved garden.
	again, err := Open(store, "garden:alice", cfg)
	require.NoError(t, err)
	assert.InDelta(t, 350.0, again.Economy.Suns(), 1e-9)
	require.NoError(t, again.Close())
}

func TestOpenThrottlesProgress(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "garden.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := SaverConfig{
		Quiet:           time.Hour,
		MaxDelay:        time.Hour,
		Logger:          quietLogger(),
		HistoryInterval: time.Minute,
	}
	st := garden.DefaultState()
	st.Suns = 10000
	require.NoError(t, Save(store, "garden:carol", st))
	sess, err := Open(store, "garden:carol", cfg)
	require.NoError(t, err)

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sess.progress.now = func() time.Time { return clock }

	rows := func() int {
		history, err := store.History("garden:carol", 10)
		require.NoError(t, err)
		return len(history)
	}
	buy := func() {
		_, err := sess.Economy.Purchase(1, 1)
		require.NoError(t, err)
		require.NoError(t, sess.Saver.Flush())
	}

	buy()
	assert.Equal(t, 1, rows(), "first write is recorded")
	buy()
	clock = clock.Add(30 * time.Second)
	buy()
	assert.Equal(t, 1, rows(), "writes inside the interval are held back")

	clock = clock.Add(time.Minute)
	buy()
	assert.Equal(t, 2, rows())

	buy()
	require.NoError(t, sess.Close())
	history, err := store.History("garden:carol", 10)
	require.NoError(t, err)
	require.Len(t, history, 3, "close records the held back write")
	assert.InDelta(t, 10000.0-5*150, history[0].Suns, 1e-9)
	assert.Equal(t, 5, history[0].Items)
}

func TestOpenCorruptSaveStartsFresh(t *testing.T) {
	kv := newMemKV()
	kv.data["garden"] = []byte("not json")

	sess, err := Open(kv, "garden", SaverConfig{Logger: quietLogger()})
	assert.ErrorIs(t, err, ErrCorruptData)
	require.NotNil(t, sess)
	assert.InDelta(t, garden.DefaultSuns, sess.Economy.Suns(), 1e-9)
	require.NoError(t, sess.Close())
}
