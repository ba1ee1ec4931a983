// Package repository 封装对交易、账单提醒等表的查询，所有查询都按 user_id 限定
package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在（或不属于当前用户）
var ErrNotFound = errors.New("record not found")

// DateRange 闭区间日期范围，零值表示不限
type DateRange struct {
	From time.Time
	To   time.Time
}

// MonthRange 返回 ref 所在自然月的第一天 00:00:00 到最后一天 23:59:59
func MonthRange(ref time.Time) DateRange {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Second)
	return DateRange{From: first, To: last}
}

// Contains 判断 t 是否落在范围内（含边界）
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

func (r DateRange) apply(q *gorm.DB, column string) *gorm.DB {
	if !r.From.IsZero() {
		q = q.Where(column+" >= ?", r.From)
	}
	if !r.To.IsZero() {
		q = q.Where(column+" <= ?", r.To)
	}
	return q
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
