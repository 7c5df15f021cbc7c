package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

type collectingRepo struct {
	mu      sync.Mutex
	entries []domain.ActivityEntry
	done    chan struct{}
	want    int
}

func newCollectingRepo(want int) *collectingRepo {
	return &collectingRepo{done: make(chan struct{}), want: want}
}

func (r *collectingRepo) Insert(_ context.Context, entry *domain.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	if len(r.entries) == r.want {
		close(r.done)
	}
	return nil
}

func (r *collectingRepo) Recent(_ context.Context, _ int) ([]*domain.ActivityEntry, error) {
	return nil, nil
}

func (r *collectingRepo) All(_ context.Context) ([]*domain.ActivityEntry, error) {
	return nil, nil
}

func TestDispatcher_DeliversEntries(t *testing.T) {
	repo := newCollectingRepo(3)
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := int64(1); i <= 3; i++ {
		d.Record(domain.ActivityEntry{ActorID: i, Action: domain.ActionLogin})
	}

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for entries, got %d", len(repo.entries))
	}
}

// Entries for the same actor always land on the same worker, so one user's
// trail is written in submission order.
func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, newCollectingRepo(0), zerolog.Nop())

	for _, id := range []int64{1, 7, 42, 1000} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for actor %d changed: %d then %d", id, first, got)
			}
		}
	}
}

func TestDispatcher_OrderPerActor(t *testing.T) {
	const n = 20
	repo := newCollectingRepo(n)
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		d.Record(domain.ActivityEntry{ActorID: 7, SubjectID: int64(i), Action: domain.ActionBorrow})
	}

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for entries, got %d", len(repo.entries))
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, e := range repo.entries {
		if e.SubjectID != int64(i) {
			t.Fatalf("entry %d out of order: subject %d", i, e.SubjectID)
		}
	}
}
