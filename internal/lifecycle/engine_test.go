package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/entity"
	"quizbank/internal/core/id"
)

type card struct {
	entity.Base
	Slug    string `db:"slug"`
	TopicID *id.ID `db:"topic_id"`
}

func newCard(slug string) *card {
	return &card{Base: entity.NewBase(), Slug: slug}
}

// memStore is an in-memory Store used to exercise the engine without a database.
type memStore struct {
	rows map[id.ID]*card

	// clearErr, when set, is returned by ClearDeleted to simulate the
	// schema-level unique index firing during commit.
	clearErr error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[id.ID]*card)}
}

func (s *memStore) put(c *card) *card {
	s.rows[c.ID] = c
	return c
}

func (s *memStore) GetLive(ctx context.Context, entityID id.ID) (*card, error) {
	c, ok := s.rows[entityID]
	if !ok || c.IsDeleted() {
		return nil, apperror.NewNotFound("card", entityID.String())
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) GetIncludingDeleted(ctx context.Context, entityID id.ID) (*card, error) {
	c, ok := s.rows[entityID]
	if !ok {
		return nil, apperror.NewNotFound("card", entityID.String())
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) SetDeleted(ctx context.Context, entityID, actor id.ID, at time.Time) error {
	c, ok := s.rows[entityID]
	if !ok || c.IsDeleted() {
		return apperror.NewNotFound("card", entityID.String())
	}
	c.MarkDeleted(actor, at)
	return nil
}

func (s *memStore) ClearDeleted(ctx context.Context, entityID id.ID) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	c, ok := s.rows[entityID]
	if !ok {
		return apperror.NewNotFound("card", entityID.String())
	}
	c.ClearDeleted()
	return nil
}

func (s *memStore) HasLiveConflict(ctx context.Context, values map[string]any, excludeID id.ID) (bool, error) {
	for _, c := range s.rows {
		if c.ID == excludeID || c.IsDeleted() {
			continue
		}
		candidate, err := FieldValues(c, keys(values))
		if err != nil {
			return false, err
		}
		if matches(candidate, values) {
			return true, nil
		}
	}
	return false, nil
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func matches(a, b map[string]any) bool {
	for k, v := range b {
		if a[k] != v {
			return false
		}
	}
	return true
}

type recordedEvent struct {
	entityType string
	entityID   id.ID
	action     Action
	actorID    *id.ID
	metadata   map[string]any
}

type memRecorder struct {
	events []recordedEvent
	err    error
}

func (r *memRecorder) Append(ctx context.Context, entityType string, entityID id.ID, action Action, actorID *id.ID, metadata map[string]any) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, recordedEvent{entityType, entityID, action, actorID, metadata})
	return nil
}

func (r *memRecorder) byAction(action Action) []recordedEvent {
	var out []recordedEvent
	for _, e := range r.events {
		if e.action == action {
			out = append(out, e)
		}
	}
	return out
}

func slugConstraint() UniqueConstraint {
	return UniqueConstraint{Label: "slug", Fields: []string{"slug"}}
}

func topicParent(topics *memStore) ParentRef[*card] {
	return ParentRef[*card]{
		Label:    "topic",
		ParentID: func(c *card) *id.ID { return c.TopicID },
		ResolveLive: func(ctx context.Context, parentID id.ID) (bool, error) {
			t, ok := topics.rows[parentID]
			return ok && !t.IsDeleted(), nil
		},
	}
}

func newTestEngine(store *memStore, rec EventRecorder, parents []ParentRef[*card], uniques []UniqueConstraint) *Engine[*card] {
	return NewEngine(Config[*card]{
		Store:      store,
		EntityType: "card",
		Parents:    parents,
		Uniques:    uniques,
		Events:     rec,
	})
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()
	actor := id.New()

	t.Run("stamps actor and timestamp", func(t *testing.T) {
		store := newMemStore()
		c := store.put(newCard("react"))
		eng := newTestEngine(store, nil, nil, nil)

		require.NoError(t, eng.SoftDelete(ctx, c.ID, actor))

		got := store.rows[c.ID]
		require.True(t, got.IsDeleted())
		require.NotNil(t, got.DeletedBy)
		assert.Equal(t, actor, *got.DeletedBy)
	})

	t.Run("absent row is not found", func(t *testing.T) {
		store := newMemStore()
		eng := newTestEngine(store, nil, nil, nil)

		err := eng.SoftDelete(ctx, id.New(), actor)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("nil actor is rejected before the row is touched", func(t *testing.T) {
		store := newMemStore()
		c := store.put(newCard("react"))
		eng := newTestEngine(store, nil, nil, nil)

		err := eng.SoftDelete(ctx, c.ID, id.Nil())
		assert.True(t, apperror.IsValidation(err))
		assert.False(t, store.rows[c.ID].IsDeleted())
	})

	t.Run("already-deleted row is not found, never double-marked", func(t *testing.T) {
		store := newMemStore()
		c := store.put(newCard("react"))
		eng := newTestEngine(store, nil, nil, nil)

		firstActor := id.New()
		require.NoError(t, eng.SoftDelete(ctx, c.ID, firstActor))
		firstStamp := *store.rows[c.ID].DeletedAt

		err := eng.SoftDelete(ctx, c.ID, actor)
		assert.True(t, apperror.IsNotFound(err))
		assert.Equal(t, firstStamp, *store.rows[c.ID].DeletedAt)
		assert.Equal(t, firstActor, *store.rows[c.ID].DeletedBy)
	})
}

func TestRestore_Preconditions(t *testing.T) {
	ctx := context.Background()
	actor := id.New()

	t.Run("live row is not a restore target", func(t *testing.T) {
		store := newMemStore()
		c := store.put(newCard("react"))
		eng := newTestEngine(store, nil, nil, nil)

		_, err := eng.Restore(ctx, c.ID, actor)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("absent row is not found", func(t *testing.T) {
		store := newMemStore()
		eng := newTestEngine(store, nil, nil, nil)

		_, err := eng.Restore(ctx, id.New(), actor)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestRestore_ParentGate(t *testing.T) {
	ctx := context.Background()
	actor := id.New()

	setup := func() (*memStore, *memStore, *card, *card) {
		topics := newMemStore()
		cards := newMemStore()
		topic := topics.put(newCard("topic"))
		child := newCard("q1")
		child.TopicID = &topic.ID
		cards.put(child)
		return topics, cards, topic, child
	}

	t.Run("deleted parent blocks restore", func(t *testing.T) {
		topics, cards, topic, child := setup()
		rec := &memRecorder{}
		eng := newTestEngine(cards, rec, []ParentRef[*card]{topicParent(topics)}, nil)

		topic.MarkDeleted(actor, time.Now().UTC())
		child.MarkDeleted(actor, time.Now().UTC())

		_, err := eng.Restore(ctx, child.ID, actor)
		require.True(t, apperror.IsRestoreBlocked(err))

		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, "topic", appErr.Details["parent"])
		assert.Equal(t, topic.ID.String(), appErr.Details["parent_id"])

		blocked := rec.byAction(ActionRestoreBlocked)
		require.Len(t, blocked, 1)
		assert.Equal(t, "dead_parent", blocked[0].metadata["reason"])
	})

	t.Run("absent parent blocks restore", func(t *testing.T) {
		topics, cards, topic, child := setup()
		eng := newTestEngine(cards, nil, []ParentRef[*card]{topicParent(topics)}, nil)

		delete(topics.rows, topic.ID)
		child.MarkDeleted(actor, time.Now().UTC())

		_, err := eng.Restore(ctx, child.ID, actor)
		assert.True(t, apperror.IsRestoreBlocked(err))
	})

	t.Run("nil foreign key skips the relation", func(t *testing.T) {
		topics, cards, _, child := setup()
		eng := newTestEngine(cards, nil, []ParentRef[*card]{topicParent(topics)}, nil)

		child.TopicID = nil
		child.MarkDeleted(actor, time.Now().UTC())

		restored, err := eng.Restore(ctx, child.ID, actor)
		require.NoError(t, err)
		assert.False(t, restored.IsDeleted())
	})

	t.Run("parent check precedes uniqueness check", func(t *testing.T) {
		topics, cards, topic, child := setup()
		eng := newTestEngine(cards, nil, []ParentRef[*card]{topicParent(topics)}, []UniqueConstraint{slugConstraint()})

		// Both blockers present: dead parent AND a live row with the same slug.
		topic.MarkDeleted(actor, time.Now().UTC())
		child.MarkDeleted(actor, time.Now().UTC())
		cards.put(newCard("q1"))

		_, err := eng.Restore(ctx, child.ID, actor)
		assert.True(t, apperror.IsRestoreBlocked(err), "structural blocker must surface first")
	})

	t.Run("restoring parent then child succeeds", func(t *testing.T) {
		topics, cards, topic, child := setup()
		topicEng := newTestEngine(topics, nil, nil, nil)
		cardEng := newTestEngine(cards, nil, []ParentRef[*card]{topicParent(topics)}, nil)

		topic.MarkDeleted(actor, time.Now().UTC())
		child.MarkDeleted(actor, time.Now().UTC())

		_, err := cardEng.Restore(ctx, child.ID, actor)
		require.True(t, apperror.IsRestoreBlocked(err))

		_, err = topicEng.Restore(ctx, topic.ID, actor)
		require.NoError(t, err)

		restored, err := cardEng.Restore(ctx, child.ID, actor)
		require.NoError(t, err)
		assert.False(t, restored.IsDeleted())
	})
}

func TestRestore_UniquenessGate(t *testing.T) {
	ctx := context.Background()
	actor := id.New()

	t.Run("live row with same value conflicts", func(t *testing.T) {
		store := newMemStore()
		deleted := store.put(newCard("react"))
		deleted.MarkDeleted(actor, time.Now().UTC())
		store.put(newCard("react")) // created after the delete

		eng := newTestEngine(store, nil, nil, []UniqueConstraint{slugConstraint()})

		_, err := eng.Restore(ctx, deleted.ID, actor)
		require.True(t, apperror.IsDuplicate(err))

		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, "slug", appErr.Details["constraint"])
		assert.Equal(t, "react", appErr.Details["value"])
	})

	t.Run("deleted row with same value never conflicts", func(t *testing.T) {
		store := newMemStore()
		a := store.put(newCard("react"))
		b := store.put(newCard("react"))
		a.MarkDeleted(actor, time.Now().UTC())
		b.MarkDeleted(actor, time.Now().UTC())

		eng := newTestEngine(store, nil, nil, []UniqueConstraint{slugConstraint()})

		restored, err := eng.Restore(ctx, a.ID, actor)
		require.NoError(t, err)
		assert.False(t, restored.IsDeleted())
	})

	t.Run("commit-time unique violation maps to conflict", func(t *testing.T) {
		store := newMemStore()
		c := store.put(newCard("react"))
		c.MarkDeleted(actor, time.Now().UTC())
		store.clearErr = apperror.NewDuplicate("card", "slug", "react")

		eng := newTestEngine(store, nil, nil, []UniqueConstraint{slugConstraint()})

		_, err := eng.Restore(ctx, c.ID, actor)
		assert.True(t, apperror.IsDuplicate(err))
	})
}

func TestRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	deleter := id.New()
	restorer := id.New()

	store := newMemStore()
	c := store.put(newCard("react"))
	before := *c
	eng := newTestEngine(store, nil, nil, []UniqueConstraint{slugConstraint()})

	require.NoError(t, eng.SoftDelete(ctx, c.ID, deleter))

	// While deleted: visible through the include-deleted path with both stamps.
	got, err := store.GetIncludingDeleted(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DeletedAt)
	require.NotNil(t, got.DeletedBy)
	assert.Equal(t, deleter, *got.DeletedBy)

	restored, err := eng.Restore(ctx, c.ID, restorer)
	require.NoError(t, err)

	assert.Nil(t, restored.DeletedAt)
	assert.Nil(t, restored.DeletedBy)
	assert.Equal(t, before.ID, restored.ID)
	assert.Equal(t, before.Slug, restored.Slug)
	assert.Equal(t, before.CreatedAt, restored.CreatedAt)
}

func TestRestore_Audit(t *testing.T) {
	ctx := context.Background()
	deleter := id.New()
	restorer := id.New()

	t.Run("successful restore appends exactly one RESTORED event", func(t *testing.T) {
		store := newMemStore()
		c := store.put(newCard("react"))
		rec := &memRecorder{}
		eng := newTestEngine(store, rec, nil, nil)

		require.NoError(t, eng.SoftDelete(ctx, c.ID, deleter))
		_, err := eng.Restore(ctx, c.ID, restorer)
		require.NoError(t, err)

		restoredEvents := rec.byAction(ActionRestored)
		require.Len(t, restoredEvents, 1)
		assert.Equal(t, "card", restoredEvents[0].entityType)
		assert.Equal(t, c.ID, restoredEvents[0].entityID)
		require.NotNil(t, restoredEvents[0].actorID)
		// The restoring actor may differ from the deleter.
		assert.Equal(t, restorer, *restoredEvents[0].actorID)
	})

	t.Run("audit failure does not undo or mask the restore", func(t *testing.T) {
		store := newMemStore()
		c := store.put(newCard("react"))
		c.MarkDeleted(deleter, time.Now().UTC())
		rec := &memRecorder{err: errors.New("event store down")}
		eng := newTestEngine(store, rec, nil, nil)

		restored, err := eng.Restore(ctx, c.ID, restorer)
		require.NoError(t, err)
		assert.False(t, restored.IsDeleted())
		assert.False(t, store.rows[c.ID].IsDeleted())
	})

	t.Run("no recorder attached restores silently", func(t *testing.T) {
		store := newMemStore()
		c := store.put(newCard("react"))
		c.MarkDeleted(deleter, time.Now().UTC())
		eng := newTestEngine(store, nil, nil, nil)

		_, err := eng.Restore(ctx, c.ID, restorer)
		assert.NoError(t, err)
	})
}

func TestFieldValues(t *testing.T) {
	topicID := id.New()
	c := newCard("react")
	c.TopicID = &topicID

	values, err := FieldValues(c, []string{"slug", "topic_id", "id"})
	require.NoError(t, err)
	assert.Equal(t, "react", values["slug"])
	assert.Equal(t, &topicID, values["topic_id"])
	assert.Equal(t, c.ID, values["id"])

	_, err = FieldValues(c, []string{"no_such_column"})
	assert.Error(t, err)
}
