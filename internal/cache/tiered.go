package cache

import (
	"context"
	"log/slog"
)

// Tiered reads through a process-local LRU into an optional redis tier.
// Redis failures degrade to misses.
type Tiered[T any] struct {
	local  Cache[T]
	remote *RedisCache[T]
}

func NewTiered[T any](local Cache[T], remote *RedisCache[T]) *Tiered[T] {
	return &Tiered[T]{local: local, remote: remote}
}

func (t *Tiered[T]) Get(ctx context.Context, key string) (T, bool) {
	if v, ok := t.local.Get(key); ok {
		return v, true
	}
	var zero T
	if t.remote == nil {
		return zero, false
	}
	v, ok, err := t.remote.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Remote cache read failed", "key", key, "error", err)
		return zero, false
	}
	if ok {
		t.local.Set(key, v)
	}
	return v, ok
}

// Generation identifies the current invalidation epoch.
func (t *Tiered[T]) Generation() uint64 {
	return t.local.Generation()
}

func (t *Tiered[T]) Set(ctx context.Context, key string, v T) {
	t.local.Set(key, v)
	t.setRemote(ctx, key, v)
}

// SetIfCurrent stores v in both tiers unless Invalidate ran after
// generation was read.
func (t *Tiered[T]) SetIfCurrent(ctx context.Context, key string, v T, generation uint64) bool {
	if !t.local.SetIfCurrent(key, v, generation) {
		return false
	}
	t.setRemote(ctx, key, v)
	return true
}

func (t *Tiered[T]) setRemote(ctx context.Context, key string, v T) {
	if t.remote == nil {
		return
	}
	if err := t.remote.Set(ctx, key, v); err != nil {
		slog.WarnContext(ctx, "Remote cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops every cached value in both tiers.
func (t *Tiered[T]) Invalidate(ctx context.Context) {
	t.local.Clear()
	if t.remote == nil {
		return
	}
	if err := t.remote.Flush(ctx); err != nil {
		slog.WarnContext(ctx, "Remote cache flush failed", "error", err)
	}
}

func (t *Tiered[T]) Size() int {
	return t.local.Size()
}

// Stats describes the local tier.
func (t *Tiered[T]) Stats() Stats {
	return t.local.Stats()
}
