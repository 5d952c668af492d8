package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbank/internal/core/id"
	"quizbank/internal/lifecycle"
)

func TestMetadataCodec(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		meta := map[string]any{
			"deleted_at": "2026-08-31T10:00:00Z",
			"reason":     "dead_parent",
			"attempts":   float64(3),
		}

		raw, err := encodeMetadata(meta)
		require.NoError(t, err)
		require.NotEmpty(t, raw)

		got, err := decodeMetadata(raw)
		require.NoError(t, err)
		assert.Equal(t, meta, got)
	})

	t.Run("empty metadata encodes to nil", func(t *testing.T) {
		raw, err := encodeMetadata(nil)
		require.NoError(t, err)
		assert.Nil(t, raw)

		raw, err = encodeMetadata(map[string]any{})
		require.NoError(t, err)
		assert.Nil(t, raw)
	})

	t.Run("nil payload decodes to nil", func(t *testing.T) {
		got, err := decodeMetadata(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("garbage payload fails", func(t *testing.T) {
		_, err := decodeMetadata([]byte("not zstd"))
		assert.Error(t, err)
	})
}

type memEventRepo struct {
	events    []*Event
	insertErr error
}

func (r *memEventRepo) Insert(ctx context.Context, event *Event) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *memEventRepo) ListByEntity(ctx context.Context, entityType string, entityID id.ID, limit, offset int) ([]*Event, error) {
	var out []*Event
	// Stored oldest first; served newest first like the SQL repo.
	for i := len(r.events) - 1; i >= 0; i-- {
		ev := r.events[i]
		if ev.EntityType == entityType && ev.EntityID == entityID {
			out = append(out, ev)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestService_Append(t *testing.T) {
	ctx := context.Background()
	entityID := id.New()
	actor := id.New()

	t.Run("stamps id and compresses metadata", func(t *testing.T) {
		repo := &memEventRepo{}
		svc := NewService(repo)

		err := svc.Append(ctx, "topic", entityID, lifecycle.ActionDeleted, &actor, map[string]any{"k": "v"})
		require.NoError(t, err)

		require.Len(t, repo.events, 1)
		ev := repo.events[0]
		assert.False(t, id.IsNil(ev.ID))
		assert.Equal(t, "topic", ev.EntityType)
		assert.Equal(t, entityID, ev.EntityID)
		assert.Equal(t, lifecycle.ActionDeleted, ev.Action)
		require.NotNil(t, ev.ActorID)
		assert.Equal(t, actor, *ev.ActorID)
		assert.NotEmpty(t, ev.MetadataRaw)
	})

	t.Run("nil actor is preserved", func(t *testing.T) {
		repo := &memEventRepo{}
		svc := NewService(repo)

		require.NoError(t, svc.Append(ctx, "topic", entityID, lifecycle.ActionRestored, nil, nil))
		assert.Nil(t, repo.events[0].ActorID)
		assert.Nil(t, repo.events[0].MetadataRaw)
	})

	t.Run("repo failure surfaces", func(t *testing.T) {
		repo := &memEventRepo{insertErr: errors.New("db down")}
		svc := NewService(repo)

		err := svc.Append(ctx, "topic", entityID, lifecycle.ActionDeleted, nil, nil)
		assert.Error(t, err)
	})
}

func TestService_FindByEntity(t *testing.T) {
	ctx := context.Background()
	entityID := id.New()
	repo := &memEventRepo{}
	svc := NewService(repo)

	require.NoError(t, svc.Append(ctx, "topic", entityID, lifecycle.ActionDeleted, nil, map[string]any{"n": "first"}))
	require.NoError(t, svc.Append(ctx, "topic", entityID, lifecycle.ActionRestored, nil, map[string]any{"n": "second"}))
	require.NoError(t, svc.Append(ctx, "topic", id.New(), lifecycle.ActionDeleted, nil, nil))

	t.Run("newest first with metadata decoded", func(t *testing.T) {
		events, err := svc.FindByEntity(ctx, "topic", entityID, 10, 0)
		require.NoError(t, err)
		require.Len(t, events, 2)

		assert.Equal(t, lifecycle.ActionRestored, events[0].Action)
		assert.Equal(t, "second", events[0].Metadata["n"])
		assert.Equal(t, lifecycle.ActionDeleted, events[1].Action)
		assert.Equal(t, "first", events[1].Metadata["n"])
	})

	t.Run("out-of-range limit falls back to default", func(t *testing.T) {
		events, err := svc.FindByEntity(ctx, "topic", entityID, -5, -1)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})
}
