package models

import (
	"time"
)

// Expense 支出记录模型，创建后不可修改
type Expense struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	Amount       float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	CategoryID   uint      `json:"category_id" gorm:"index;not null"`
	CategoryName string    `json:"category_name" gorm:"size:50;not null"`
	Description  string    `json:"description" gorm:"size:255"`
	Notes        string    `json:"notes" gorm:"size:1000"`
	Date         time.Time `json:"date" gorm:"type:date;index;not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}
