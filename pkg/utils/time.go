package utils

import (
	"time"
)

// GetCurrentTimestamp 返回当前的 Unix 时间戳（秒）
func GetCurrentTimestamp() int64 {
	return time.Now().Unix()
}

// GetCurrentTimestampMs 返回当前的 Unix 时间戳（毫秒）
func GetCurrentTimestampMs() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// StartOfDay 返回时间所在自然日的零点
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay 判断两个时间是否在同一自然日
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b.In(a.Location())))
}

// DaysBetween 返回两个时间相差的自然日数量
func DaysBetween(a, b time.Time) int {
	da := StartOfDay(a)
	db := StartOfDay(b.In(a.Location()))
	return int(db.Sub(da).Hours() / 24)
}
