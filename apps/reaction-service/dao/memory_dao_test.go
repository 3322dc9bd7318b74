package dao

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mindcare-social/apps/reaction-service/model"
)

// TestMemoryReactionDAODedup 测试四元组去重
func TestMemoryReactionDAODedup(t *testing.T) {
	d := NewMemoryReactionDAO()
	ctx := context.Background()

	r := &model.Reaction{ID: "r1", UserID: "u1", TargetType: model.TargetTypePost, TargetID: "p1", Type: model.ReactionTypeLike}
	if err := d.CreateReaction(ctx, r); err != nil {
		t.Fatalf("CreateReaction: %v", err)
	}
	if err := d.CreateReaction(ctx, r); !errors.Is(err, model.ErrDuplicateReaction) {
		t.Errorf("err = %v, want ErrDuplicateReaction", err)
	}

	// 不同类型不冲突
	r2 := &model.Reaction{ID: "r2", UserID: "u1", TargetType: model.TargetTypePost, TargetID: "p1", Type: model.ReactionTypeHeart}
	if err := d.CreateReaction(ctx, r2); err != nil {
		t.Errorf("CreateReaction distinct type: %v", err)
	}
}

// TestMemoryReactionDAOCounts 测试计数和用户反应查询
func TestMemoryReactionDAOCounts(t *testing.T) {
	d := NewMemoryReactionDAO()
	ctx := context.Background()

	reactions := []*model.Reaction{
		{ID: "r1", UserID: "u1", TargetType: model.TargetTypePost, TargetID: "p1", Type: model.ReactionTypeLike},
		{ID: "r2", UserID: "u2", TargetType: model.TargetTypePost, TargetID: "p1", Type: model.ReactionTypeLike},
		{ID: "r3", UserID: "u1", TargetType: model.TargetTypePost, TargetID: "p1", Type: model.ReactionTypeHelpful},
		{ID: "r4", UserID: "u1", TargetType: model.TargetTypePost, TargetID: "p2", Type: model.ReactionTypeLike},
	}
	for _, r := range reactions {
		if err := d.CreateReaction(ctx, r); err != nil {
			t.Fatalf("CreateReaction %s: %v", r.ID, err)
		}
	}

	counts, err := d.GetReactionCounts(ctx, model.TargetTypePost, "p1")
	if err != nil {
		t.Fatalf("GetReactionCounts: %v", err)
	}
	if counts[model.ReactionTypeLike] != 2 || counts[model.ReactionTypeHelpful] != 1 {
		t.Errorf("counts = %v", counts)
	}
	// 未出现的类型不在结果中
	if _, ok := counts[model.ReactionTypeHeart]; ok {
		t.Error("absent type should be omitted")
	}

	types, err := d.GetUserReactions(ctx, "u1", model.TargetTypePost, "p1")
	if err != nil {
		t.Fatalf("GetUserReactions: %v", err)
	}
	if len(types) != 2 {
		t.Errorf("types = %v, want 2 entries", types)
	}
}

// TestMemoryReactionDAODelete 测试删除
func TestMemoryReactionDAODelete(t *testing.T) {
	d := NewMemoryReactionDAO()
	ctx := context.Background()

	r := &model.Reaction{ID: "r1", UserID: "u1", TargetType: model.TargetTypePost, TargetID: "p1", Type: model.ReactionTypeLike}
	if err := d.CreateReaction(ctx, r); err != nil {
		t.Fatalf("CreateReaction: %v", err)
	}
	if err := d.DeleteReaction(ctx, "u1", model.TargetTypePost, "p1", model.ReactionTypeLike); err != nil {
		t.Fatalf("DeleteReaction: %v", err)
	}
	if err := d.DeleteReaction(ctx, "u1", model.TargetTypePost, "p1", model.ReactionTypeLike); !errors.Is(err, model.ErrReactionNotFound) {
		t.Errorf("err = %v, want ErrReactionNotFound", err)
	}
}

// TestMemoryStreakDAOVersionConflict 测试乐观锁版本冲突
func TestMemoryStreakDAOVersionConflict(t *testing.T) {
	d := NewMemoryStreakDAO()
	ctx := context.Background()

	a, err := d.GetOrCreateStreak(ctx, "u1")
	if err != nil {
		t.Fatalf("GetOrCreateStreak: %v", err)
	}
	b, err := d.GetOrCreateStreak(ctx, "u1")
	if err != nil {
		t.Fatalf("GetOrCreateStreak: %v", err)
	}

	a.TotalReactions = 1
	if err := d.SaveStreak(ctx, a); err != nil {
		t.Fatalf("SaveStreak a: %v", err)
	}

	// b持有过期版本
	b.TotalReactions = 5
	if err := d.SaveStreak(ctx, b); !errors.Is(err, model.ErrConcurrencyConflict) {
		t.Errorf("err = %v, want ErrConcurrencyConflict", err)
	}

	// a的版本已推进，可以继续保存
	a.TotalReactions = 2
	if err := d.SaveStreak(ctx, a); err != nil {
		t.Errorf("SaveStreak a again: %v", err)
	}

	stored, err := d.GetStreak(ctx, "u1")
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if stored.TotalReactions != 2 {
		t.Errorf("TotalReactions = %d, want 2", stored.TotalReactions)
	}
}

// TestMemoryStreakDAOConcurrent 测试并发写入只有版本匹配的成功
func TestMemoryStreakDAOConcurrent(t *testing.T) {
	d := NewMemoryStreakDAO()
	ctx := context.Background()

	if _, err := d.GetOrCreateStreak(ctx, "u1"); err != nil {
		t.Fatalf("GetOrCreateStreak: %v", err)
	}

	const writers = 8
	var wg sync.WaitGroup
	conflicts := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := d.GetStreak(ctx, "u1")
			if err != nil {
				conflicts <- err
				return
			}
			s.TotalReactions++
			conflicts <- d.SaveStreak(ctx, s)
		}()
	}
	wg.Wait()
	close(conflicts)

	succeeded := 0
	for err := range conflicts {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, model.ErrConcurrencyConflict) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded == 0 {
		t.Error("no writer succeeded")
	}

	stored, _ := d.GetStreak(ctx, "u1")
	if int(stored.TotalReactions) != succeeded {
		t.Errorf("TotalReactions = %d, want %d", stored.TotalReactions, succeeded)
	}
}
