package model

import "testing"

// TestNextMilestone 测试里程碑推进表
func TestNextMilestone(t *testing.T) {
	cases := []struct {
		current int
		want    int
	}{
		{0, 3},
		{1, 3},
		{3, 7},
		{5, 7},
		{7, 30},
		{29, 30},
		{30, 100},
		{99, 100},
		{100, 150},
		{150, 200},
	}

	for _, c := range cases {
		if got := NextMilestone(c.current); got != c.want {
			t.Errorf("NextMilestone(%d) = %d, want %d", c.current, got, c.want)
		}
	}
}

// TestAchievementRules 测试成就规则表的完整性
func TestAchievementRules(t *testing.T) {
	wantKeys := []string{
		AchievementFirstReaction,
		AchievementStreak3Days,
		AchievementStreak7Days,
		AchievementStreak30Days,
		AchievementStreak100Days,
		AchievementSocialButterflyWeekly,
		AchievementHelpfulMember,
		AchievementSupportiveUser,
	}

	if len(AchievementRules) != len(wantKeys) {
		t.Fatalf("rules = %d, want %d", len(AchievementRules), len(wantKeys))
	}
	for i, rule := range AchievementRules {
		if rule.Key != wantKeys[i] {
			t.Errorf("rule[%d].Key = %s, want %s", i, rule.Key, wantKeys[i])
		}
		if rule.Title == "" {
			t.Errorf("rule %s has empty title", rule.Key)
		}
		if rule.Predicate == nil {
			t.Errorf("rule %s has nil predicate", rule.Key)
		}
	}
}

// TestAchievementPredicates 测试各规则谓词的阈值
func TestAchievementPredicates(t *testing.T) {
	byKey := make(map[string]AchievementRule)
	for _, rule := range AchievementRules {
		byKey[rule.Key] = rule
	}

	s := &ReactionStreak{TotalReactions: 1}
	if !byKey[AchievementFirstReaction].Predicate(s) {
		t.Error("firstReaction should unlock at total=1")
	}

	s = &ReactionStreak{CurrentStreak: 2}
	if byKey[AchievementStreak3Days].Predicate(s) {
		t.Error("streak3Days should not unlock at streak=2")
	}
	s.CurrentStreak = 3
	if !byKey[AchievementStreak3Days].Predicate(s) {
		t.Error("streak3Days should unlock at streak=3")
	}

	s = &ReactionStreak{WeeklyReactions: 50}
	if !byKey[AchievementSocialButterflyWeekly].Predicate(s) {
		t.Error("socialButterflyWeekly should unlock at weekly=50")
	}

	s = &ReactionStreak{}
	s.SetTypeCounts(map[string]int64{ReactionTypeHelpful: 100})
	if !byKey[AchievementHelpfulMember].Predicate(s) {
		t.Error("helpfulMember should unlock at helpful=100")
	}
	s.SetTypeCounts(map[string]int64{ReactionTypeSupport: 99})
	if byKey[AchievementSupportiveUser].Predicate(s) {
		t.Error("supportiveUser should not unlock at support=99")
	}
}

// TestStreakJSONRoundTrip 测试JSON列的读写
func TestStreakJSONRoundTrip(t *testing.T) {
	s := &ReactionStreak{}

	counts := map[string]int64{ReactionTypeLike: 3, ReactionTypeHeart: 1}
	s.SetTypeCounts(counts)
	got := s.TypeCounts()
	if got[ReactionTypeLike] != 3 || got[ReactionTypeHeart] != 1 {
		t.Errorf("TypeCounts = %v", got)
	}

	s.SetAchievementSet(map[string]bool{
		AchievementStreak3Days:   true,
		AchievementFirstReaction: true,
	})
	set := s.AchievementSet()
	if !set[AchievementFirstReaction] || !set[AchievementStreak3Days] {
		t.Errorf("AchievementSet = %v", set)
	}
	if set[AchievementStreak7Days] {
		t.Error("unexpected achievement present")
	}
}
