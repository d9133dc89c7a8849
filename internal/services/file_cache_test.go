package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileCache_PutAndGet(t *testing.T) {
	cache := NewFileCache(30*time.Minute, nil, nil)

	file := cache.Put([]byte("order-id\n171-1\n"), "orders.csv", "text/csv")

	assert.NotEmpty(t, file.ID)
	assert.Equal(t, "orders.csv", file.Filename)

	got, ok := cache.Get(file.ID)
	assert.True(t, ok)
	assert.Equal(t, []byte("order-id\n171-1\n"), got.Content)
}

func TestFileCache_ExpiredEntryIsAMiss(t *testing.T) {
	current := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	cache := NewFileCache(30*time.Minute, clock, nil)

	file := cache.Put([]byte("data"), "orders.csv", "text/csv")

	// Still fresh just before the TTL.
	current = current.Add(29 * time.Minute)
	_, ok := cache.Get(file.ID)
	assert.True(t, ok)

	// Expired entries behave like they were never stored.
	current = current.Add(2 * time.Minute)
	_, ok = cache.Get(file.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestFileCache_Sweep(t *testing.T) {
	current := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	cache := NewFileCache(30*time.Minute, clock, nil)

	cache.Put([]byte("a"), "a.csv", "text/csv")
	cache.Put([]byte("b"), "b.csv", "text/csv")

	current = current.Add(10 * time.Minute)
	fresh := cache.Put([]byte("c"), "c.csv", "text/csv")

	current = current.Add(25 * time.Minute)
	evicted := cache.Sweep()

	assert.Equal(t, 2, evicted)
	assert.Equal(t, 1, cache.Len())

	_, ok := cache.Get(fresh.ID)
	assert.True(t, ok)
}

func TestFileCache_Delete(t *testing.T) {
	cache := NewFileCache(30*time.Minute, nil, nil)

	file := cache.Put([]byte("data"), "orders.csv", "text/csv")
	cache.Delete(file.ID)

	_, ok := cache.Get(file.ID)
	assert.False(t, ok)
}
