package kafka

import (
	"Fandium/internal/model"
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]bool)}
}

func likeMapKey(domain model.ContentDomain, contentID, userID uint64) string {
	return domain.Key() + ":" + strconv.FormatUint(contentID, 10) + ":" + strconv.FormatUint(userID, 10)
}

func (r *fakeLikeRepo) EnsureLiked(_ context.Context, domain model.ContentDomain, contentID, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.likes[likeMapKey(domain, contentID, userID)] = true
	return nil
}

func (r *fakeLikeRepo) EnsureUnliked(_ context.Context, domain model.ContentDomain, contentID, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, likeMapKey(domain, contentID, userID))
	return nil
}

func (r *fakeLikeRepo) Exists(_ context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[likeMapKey(domain, contentID, userID)], nil
}

func (r *fakeLikeRepo) CountByContent(_ context.Context, domain model.ContentDomain, contentID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	prefix := domain.Key() + ":" + strconv.FormatUint(contentID, 10) + ":"
	for key := range r.likes {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			n++
		}
	}
	return n, nil
}

func (r *fakeLikeRepo) ListLikerIDs(_ context.Context, _ model.ContentDomain, _ uint64) ([]uint64, error) {
	return nil, nil
}

func eventMessage(t *testing.T, ev LikeEvent) *sarama.ConsumerMessage {
	t.Helper()
	value, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return &sarama.ConsumerMessage{Topic: "engagement-post-likes", Value: value}
}

func TestLikeEventAppliedIdempotently(t *testing.T) {
	repo := newFakeLikeRepo()
	h := NewLikeEventsHandler(repo)
	ctx := context.Background()

	ev := LikeEvent{Domain: "post", ContentID: 100, UserID: 5, Liked: true, OccurredAt: time.Now().UnixMilli()}

	// 重复投递收敛到同一结果
	for i := 0; i < 3; i++ {
		if err := h.logic(ctx, eventMessage(t, ev)); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}
	if liked, _ := repo.Exists(ctx, model.DomainPost, 100, 5); !liked {
		t.Errorf("like record missing after apply")
	}
	if n, _ := repo.CountByContent(ctx, model.DomainPost, 100); n != 1 {
		t.Errorf("like records = %d, want 1", n)
	}
}

func TestLikeEventUnlikeRemovesRecord(t *testing.T) {
	repo := newFakeLikeRepo()
	h := NewLikeEventsHandler(repo)
	ctx := context.Background()

	repo.EnsureLiked(ctx, model.DomainPost, 100, 5)

	ev := LikeEvent{Domain: "post", ContentID: 100, UserID: 5, Liked: false}
	if err := h.logic(ctx, eventMessage(t, ev)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if liked, _ := repo.Exists(ctx, model.DomainPost, 100, 5); liked {
		t.Errorf("like record must be removed")
	}

	// 不存在时的取消同样幂等
	if err := h.logic(ctx, eventMessage(t, ev)); err != nil {
		t.Fatalf("re-apply: %v", err)
	}
}

func TestLikeEventBadPayloadDropped(t *testing.T) {
	repo := newFakeLikeRepo()
	h := NewLikeEventsHandler(repo)
	ctx := context.Background()

	msg := &sarama.ConsumerMessage{Topic: "engagement-post-likes", Value: []byte("{not json")}
	if err := h.logic(ctx, msg); err != nil {
		t.Errorf("bad payload must be dropped, got err %v", err)
	}
	if len(repo.likes) != 0 {
		t.Errorf("bad payload must not touch the repo")
	}
}

func TestLikeEventUnknownDomainDropped(t *testing.T) {
	repo := newFakeLikeRepo()
	h := NewLikeEventsHandler(repo)

	ev := LikeEvent{Domain: "comment", ContentID: 100, UserID: 5, Liked: true}
	if err := h.logic(context.Background(), eventMessage(t, ev)); err != nil {
		t.Errorf("unknown domain must be dropped, got err %v", err)
	}
	if len(repo.likes) != 0 {
		t.Errorf("unknown domain must not touch the repo")
	}
}
