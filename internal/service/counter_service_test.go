package service

import (
	"Fandium/internal/model"
	"Fandium/internal/pkg/consts"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newCounterFixture(t *testing.T) (CounterService, *fakeStatRepo) {
	t.Helper()
	contentRepo := &fakeContentRepo{existing: map[uint64]bool{100: true, 200: true}}
	statRepo := newFakeStatRepo()
	return NewCounterService(contentRepo, statRepo), statRepo
}

func TestIncrementViewCountDedupWithinCooldown(t *testing.T) {
	mr := setupTestEnv(t)
	svc, _ := newCounterFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := svc.IncrementViewCount(ctx, model.DomainPost, 100, 42, ""); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}

	got, err := mr.Get(consts.ViewCountKey("post", 100))
	if err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if got != "1" {
		t.Errorf("counter = %q, want 1 (same identity must dedup)", got)
	}
}

func TestIncrementViewCountAfterCooldownExpiry(t *testing.T) {
	mr := setupTestEnv(t)
	svc, _ := newCounterFixture(t)
	ctx := context.Background()

	if err := svc.IncrementViewCount(ctx, model.DomainPost, 100, 42, ""); err != nil {
		t.Fatalf("first increment: %v", err)
	}
	mr.FastForward(601 * time.Second)
	if err := svc.IncrementViewCount(ctx, model.DomainPost, 100, 42, ""); err != nil {
		t.Fatalf("second increment: %v", err)
	}

	got, _ := mr.Get(consts.ViewCountKey("post", 100))
	if got != "2" {
		t.Errorf("counter = %q, want 2 after cooldown expiry", got)
	}
}

func TestIncrementViewCountDistinctIdentities(t *testing.T) {
	mr := setupTestEnv(t)
	svc, _ := newCounterFixture(t)
	ctx := context.Background()

	// 三个登录用户加一个匿名来源
	for _, uid := range []uint64{1, 2, 3} {
		if err := svc.IncrementViewCount(ctx, model.DomainArchive, 200, uid, ""); err != nil {
			t.Fatalf("user %d: %v", uid, err)
		}
	}
	if err := svc.IncrementViewCount(ctx, model.DomainArchive, 200, 0, "10.0.0.8"); err != nil {
		t.Fatalf("anonymous: %v", err)
	}

	got, _ := mr.Get(consts.ViewCountKey("archive", 200))
	if got != "4" {
		t.Errorf("counter = %q, want 4", got)
	}
}

func TestIncrementViewCountAnonymousDedupByAddr(t *testing.T) {
	mr := setupTestEnv(t)
	svc, _ := newCounterFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.IncrementViewCount(ctx, model.DomainPost, 100, 0, "10.0.0.8"); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}

	got, _ := mr.Get(consts.ViewCountKey("post", 100))
	if got != "1" {
		t.Errorf("counter = %q, want 1 (same addr must dedup)", got)
	}
}

func TestIncrementViewCountConcurrentDistinctIdentities(t *testing.T) {
	mr := setupTestEnv(t)
	svc, _ := newCounterFixture(t)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(uid uint64) {
			defer wg.Done()
			if err := svc.IncrementViewCount(ctx, model.DomainPost, 100, uid, ""); err != nil {
				t.Errorf("user %d: %v", uid, err)
			}
		}(uint64(i))
	}
	wg.Wait()

	got, _ := mr.Get(consts.ViewCountKey("post", 100))
	if got != "50" {
		t.Errorf("counter = %q, want 50 (one per distinct identity)", got)
	}
}

func TestIncrementViewCountConcurrentSameIdentity(t *testing.T) {
	mr := setupTestEnv(t)
	svc, _ := newCounterFixture(t)
	ctx := context.Background()

	// SETNX 去重标记必须恰好放行一个并发请求
	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.IncrementViewCount(ctx, model.DomainPost, 100, 42, ""); err != nil {
				t.Errorf("increment: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := mr.Get(consts.ViewCountKey("post", 100))
	if got != "1" {
		t.Errorf("counter = %q, want 1 under concurrent same-identity views", got)
	}
}

func TestIncrementViewCountMissingContent(t *testing.T) {
	mr := setupTestEnv(t)
	svc, _ := newCounterFixture(t)

	err := svc.IncrementViewCount(context.Background(), model.DomainPost, 999, 42, "")
	if !errors.Is(err, ErrContentNotFound) {
		t.Errorf("err = %v, want ErrContentNotFound", err)
	}
	if mr.Exists(consts.ViewCountKey("post", 999)) {
		t.Errorf("counter must not be created for missing content")
	}
}

func TestGetViewCountMergesPendingDelta(t *testing.T) {
	mr := setupTestEnv(t)
	svc, statRepo := newCounterFixture(t)
	ctx := context.Background()

	statRepo.put(&model.ContentStat{Domain: "post", ContentID: 100, ViewCount: 1000})

	count, err := svc.GetViewCount(ctx, model.DomainPost, 100)
	if err != nil {
		t.Fatalf("get without pending: %v", err)
	}
	if count != 1000 {
		t.Errorf("count = %d, want 1000", count)
	}

	mr.Set(consts.ViewCountKey("post", 100), "7")
	count, err = svc.GetViewCount(ctx, model.DomainPost, 100)
	if err != nil {
		t.Fatalf("get with pending: %v", err)
	}
	if count != 1007 {
		t.Errorf("count = %d, want 1007", count)
	}
}

func TestGetViewCountMissingStat(t *testing.T) {
	setupTestEnv(t)
	svc, _ := newCounterFixture(t)

	_, err := svc.GetViewCount(context.Background(), model.DomainPost, 100)
	if !errors.Is(err, ErrContentNotFound) {
		t.Errorf("err = %v, want ErrContentNotFound", err)
	}
}
