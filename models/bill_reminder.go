package models

import "time"

// 提醒状态：pending -> paid 单向流转，删除即物理删除
const (
	ReminderStatusPending = "pending"
	ReminderStatusPaid    = "paid"
)

// 提醒频率
const (
	FrequencyOnce    = "Once"
	FrequencyWeekly  = "Weekly"
	FrequencyMonthly = "Monthly"
	FrequencyYearly  = "Yearly"
)

// ValidFrequency 判断频率取值是否合法
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyOnce, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// BillReminder 账单提醒，仅创建者可见
type BillReminder struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	Title        string    `json:"title" gorm:"size:100;not null"`
	Amount       float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	DueDate      time.Time `json:"due_date" gorm:"type:date;index;not null"`
	Time         string    `json:"time" gorm:"size:5;not null"` // HH:MM
	Frequency    string    `json:"frequency" gorm:"size:10;not null;default:Monthly"`
	Category     string    `json:"category" gorm:"size:50;not null"`
	Status       string    `json:"status" gorm:"size:10;not null;default:pending;index"`
	EmailEnabled bool      `json:"email_enabled" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (BillReminder) TableName() string {
	return "bill_reminders"
}

// IsPaid 是否已支付
func (r *BillReminder) IsPaid() bool {
	return r.Status == ReminderStatusPaid
}
