package model

import "time"

// 反应类型
const (
	ReactionTypeLike     = "like"     // 点赞
	ReactionTypeHeart    = "heart"    // 爱心
	ReactionTypeHelpful  = "helpful"  // 有帮助
	ReactionTypeSupport  = "support"  // 支持
	ReactionTypeThumbsup = "thumbsup" // 竖拇指
)

// 目标类型
const (
	TargetTypePost     = "post"     // 帖子
	TargetTypeComment  = "comment"  // 评论
	TargetTypeJournal  = "journal"  // 日记
	TargetTypeResource = "resource" // 资源
)

// 有效的反应类型列表
var ValidReactionTypes = []string{
	ReactionTypeLike,
	ReactionTypeHeart,
	ReactionTypeHelpful,
	ReactionTypeSupport,
	ReactionTypeThumbsup,
}

// 有效的目标类型列表
var ValidTargetTypes = []string{
	TargetTypePost,
	TargetTypeComment,
	TargetTypeJournal,
	TargetTypeResource,
}

// 连续天数窗口
const (
	GraceWindow   = 48 * time.Hour      // 宽限窗口，超过则连续中断
	WeeklyWindow  = 7 * 24 * time.Hour  // 周滚动窗口
	MonthlyWindow = 30 * 24 * time.Hour // 月滚动窗口
)

// 乐观锁保存最大重试次数
const MaxSaveRetries = 3

// Redis缓存键前缀
const (
	CacheKeyReactionCounts = "reaction:counts" // 目标反应计数缓存
	CacheKeyUserReactions  = "reaction:user"   // 用户反应状态缓存
	CacheKeyStreak         = "reaction:streak" // 连续记录缓存
)

// 缓存过期时间（秒）
const (
	CacheExpireCounts = 300 // 计数缓存5分钟
	CacheExpireUser   = 600 // 用户反应缓存10分钟
	CacheExpireStreak = 60  // 连续记录缓存1分钟
)

// Kafka事件主题
const (
	TopicReactionEvents = "reaction-events"
)

// 事件类型
const (
	EventTypeCreate = "create"
	EventTypeDelete = "delete"
)
