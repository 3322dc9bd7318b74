package model

import (
	"errors"
	"time"
)

// 取值范围
const (
	MinMoodValue = 1
	MaxMoodValue = 5
	MinScale     = 1
	MaxScale     = 5
	MaxSleep     = 24
	MaxNoteLen   = 1000
)

// 查询限制
const (
	DefaultEntryLimit = 30
	MaxEntryLimit     = 365
)

// Mongo集合名
const CollectionMoodEntries = "mood_entries"

// Kafka事件主题
const TopicMoodEvents = "mood-events"

// 业务错误
var (
	ErrInvalidMoodValue = errors.New("心情值必须在1到5之间")
	ErrInvalidScale     = errors.New("等级必须在1到5之间")
	ErrInvalidSleep     = errors.New("睡眠时长必须在0到24小时之间")
	ErrNoteTooLong      = errors.New("备注长度超出限制")
)

// MoodEntry 心情记录，每个用户每个自然日一条
type MoodEntry struct {
	ID               string    `json:"id" bson:"_id"`
	UserID           string    `json:"user_id" bson:"user_id"`
	MoodValue        int       `json:"mood_value" bson:"mood_value"` // 1-5
	Date             time.Time `json:"date" bson:"date"`             // 归一化到当日零点
	Notes            string    `json:"notes,omitempty" bson:"notes,omitempty"`
	Emotions         []string  `json:"emotions,omitempty" bson:"emotions,omitempty"`
	Triggers         []string  `json:"triggers,omitempty" bson:"triggers,omitempty"`
	CopingStrategies []string  `json:"coping_strategies,omitempty" bson:"coping_strategies,omitempty"`
	Energy           int       `json:"energy" bson:"energy"` // 1-5
	Sleep            float64   `json:"sleep" bson:"sleep"`   // 小时
	Stress           int       `json:"stress" bson:"stress"` // 1-5
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// Validate 校验心情记录的取值范围
func (e *MoodEntry) Validate() error {
	if e.MoodValue < MinMoodValue || e.MoodValue > MaxMoodValue {
		return ErrInvalidMoodValue
	}
	if e.Energy < MinScale || e.Energy > MaxScale {
		return ErrInvalidScale
	}
	if e.Stress < MinScale || e.Stress > MaxScale {
		return ErrInvalidScale
	}
	if e.Sleep < 0 || e.Sleep > MaxSleep {
		return ErrInvalidSleep
	}
	if len(e.Notes) > MaxNoteLen {
		return ErrNoteTooLong
	}
	return nil
}

// MoodEvent 心情事件（用于消息队列）
type MoodEvent struct {
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	MoodValue int       `json:"mood_value"`
	Date      time.Time `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodSummary 心情查询响应
type MoodSummary struct {
	Entries []*MoodEntry `json:"entries"`
	Streak  int          `json:"streak"`
}
