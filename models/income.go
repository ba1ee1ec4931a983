package models

import "time"

// Income 收入记录模型，创建后不可修改
type Income struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Source      string    `json:"source" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:255"`
	Date        time.Time `json:"date" gorm:"type:date;index;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Income) TableName() string {
	return "income"
}
