package todo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type memStorage struct {
	data    map[string][]byte
	writes  int
	failPut error
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Put(_ context.Context, key string, value []byte) error {
	if m.failPut != nil {
		return m.failPut
	}
	m.writes++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}
}

func TestBuyMilkScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemStorage()
	list, err := Open(ctx, store)
	require.NoError(t, err)

	milk, err := list.Add(ctx, "Buy milk")
	require.NoError(t, err)
	_, err = list.Add(ctx, "Walk dog")
	require.NoError(t, err)

	ok, err := list.Toggle(ctx, milk.ID)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, Stats{Total: 2, Active: 1, Completed: 1}, list.Stats())
	done := list.Filtered(FilterCompleted)
	require.Len(t, done, 1)
	require.Equal(t, "Buy milk", done[0].Text)
}

func TestPersistsWholeListUnderTasksKey(t *testing.T) {
	ctx := context.Background()
	store := newMemStorage()
	list, err := Open(ctx, store)
	require.NoError(t, err)

	_, err = list.Add(ctx, "one")
	require.NoError(t, err)
	_, err = list.Add(ctx, "two")
	require.NoError(t, err)
	require.Equal(t, 2, store.writes)

	var stored []map[string]any
	require.NoError(t, json.Unmarshal(store.data[StorageKey], &stored))
	require.Len(t, stored, 2)
	for _, field := range []string{"id", "text", "completed", "createdAt"} {
		require.Contains(t, stored[0], field)
	}

	reopened, err := Open(ctx, store)
	require.NoError(t, err)
	require.Equal(t, list.Tasks(), reopened.Tasks())
}

func TestReopenedTasksEqualInMemoryCopy(t *testing.T) {
	ctx := context.Background()
	store := newMemStorage()
	local := time.FixedZone("UTC+10", 10*60*60)
	list, err := Open(ctx, store, WithClock(func() time.Time { return time.Now().In(local) }))
	require.NoError(t, err)

	task, err := list.Add(ctx, "stamp")
	require.NoError(t, err)
	require.Equal(t, time.UTC, task.CreatedAt.Location())
	require.Equal(t, task.CreatedAt, task.CreatedAt.Round(0))

	reopened, err := Open(ctx, store)
	require.NoError(t, err)
	require.Equal(t, []Task{task}, reopened.Tasks())
}

func TestDeleteLastTaskWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	store := newMemStorage()
	list, err := Open(ctx, store)
	require.NoError(t, err)

	task, err := list.Add(ctx, "only")
	require.NoError(t, err)
	ok, err := list.Delete(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[]`, string(store.data[StorageKey]))
}

func TestMissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newMemStorage()
	list, err := Open(ctx, store)
	require.NoError(t, err)
	_, err = list.Add(ctx, "keep")
	require.NoError(t, err)
	writes := store.writes

	ok, err := list.Toggle(ctx, 42)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = list.Delete(ctx, 42)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, writes, store.writes)
	require.Len(t, list.Tasks(), 1)
}

func TestEmptyAndDuplicateTextAccepted(t *testing.T) {
	ctx := context.Background()
	list, err := Open(ctx, newMemStorage())
	require.NoError(t, err)
	for _, text := range []string{"", "dup", "dup"} {
		_, err := list.Add(ctx, text)
		require.NoError(t, err)
	}
	require.Equal(t, 3, list.Stats().Total)
}

func TestIDsUniqueWithinSameMillisecond(t *testing.T) {
	ctx := context.Background()
	frozen := time.UnixMilli(1_700_000_000_000)
	list, err := Open(ctx, newMemStorage(), WithClock(func() time.Time { return frozen }))
	require.NoError(t, err)

	a, err := list.Add(ctx, "a")
	require.NoError(t, err)
	b, err := list.Add(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, frozen.UnixMilli(), a.ID)
	require.Equal(t, a.ID+1, b.ID)
}

func TestCorruptStorageStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newMemStorage()
	store.data[StorageKey] = []byte("{not json")

	list, err := Open(ctx, store)
	require.NoError(t, err)
	require.Empty(t, list.Tasks())

	_, err = list.Add(ctx, "fresh")
	require.NoError(t, err)
	require.Len(t, list.Tasks(), 1)
}

func TestFailedWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newMemStorage()
	list, err := Open(ctx, store)
	require.NoError(t, err)
	task, err := list.Add(ctx, "stable")
	require.NoError(t, err)

	boom := errors.New("disk full")
	store.failPut = boom

	_, err = list.Add(ctx, "lost")
	require.ErrorIs(t, err, boom)
	_, err = list.Toggle(ctx, task.ID)
	require.ErrorIs(t, err, boom)
	_, err = list.Delete(ctx, task.ID)
	require.ErrorIs(t, err, boom)

	require.Equal(t, []Task{task}, list.Tasks())
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	store := newMemStorage()
	a, err := Open(ctx, store)
	require.NoError(t, err)
	b, err := Open(ctx, store)
	require.NoError(t, err)

	_, err = b.Add(ctx, "from elsewhere")
	require.NoError(t, err)
	require.Empty(t, a.Tasks())

	require.NoError(t, a.Reload(ctx))
	require.Len(t, a.Tasks(), 1)
}

func TestStatsAndFiltersHoldForAnyOperationSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		list, err := Open(ctx, newMemStorage(), WithClock(fixedClock(time.UnixMilli(0))))
		if err != nil {
			t.Fatal(err)
		}
		steps := rapid.IntRange(0, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			tasks := list.Tasks()
			op := rapid.IntRange(0, 2).Draw(t, "op")
			switch {
			case op == 0 || len(tasks) == 0:
				if _, err := list.Add(ctx, rapid.String().Draw(t, "text")); err != nil {
					t.Fatal(err)
				}
			case op == 1:
				id := rapid.SampledFrom(tasks).Draw(t, "toggle").ID
				if _, err := list.Toggle(ctx, id); err != nil {
					t.Fatal(err)
				}
			default:
				id := rapid.SampledFrom(tasks).Draw(t, "delete").ID
				if _, err := list.Delete(ctx, id); err != nil {
					t.Fatal(err)
				}
			}
		}

		all := list.Tasks()
		stats := list.Stats()
		if stats.Total != stats.Active+stats.Completed {
			t.Fatalf("stats %+v do not add up", stats)
		}
		if len(list.Filtered(FilterAll)) != len(all) {
			t.Fatalf("all filter dropped tasks")
		}
		active := list.Filtered(FilterActive)
		completed := list.Filtered(FilterCompleted)
		if len(active)+len(completed) != len(all) {
			t.Fatalf("active+completed = %d, want %d", len(active)+len(completed), len(all))
		}
		ids := make(map[int64]bool)
		for _, task := range all {
			if ids[task.ID] {
				t.Fatalf("duplicate id %d", task.ID)
			}
			ids[task.ID] = true
		}
		for _, task := range active {
			if task.Completed {
				t.Fatalf("completed task %d in active view", task.ID)
			}
		}
		for _, task := range completed {
			if !task.Completed {
				t.Fatalf("active task %d in completed view", task.ID)
			}
		}
	})
}
