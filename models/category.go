package models

import (
	"time"
)

// ExpenseCategory 支出类别（种子数据，应用内只读）
type ExpenseCategory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Icon      string    `json:"icon" gorm:"size:20"`
	Color     string    `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #3B82F6
	CreatedAt time.Time `json:"created_at"`
}

func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

// 默认类别名称
const (
	CategoryFood          = "Food & Dining"
	CategoryTransport     = "Transportation"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills & Utilities"
	CategoryHealthcare    = "Healthcare"
	CategoryInsurance     = "Insurance"
	CategoryEducation     = "Education"
	CategoryOther         = "Others"
)

// DefaultCategories 初始化时写入的类别（仅当表为空）
func DefaultCategories() []ExpenseCategory {
	return []ExpenseCategory{
		{Name: CategoryFood, Icon: "🍔", Color: "#3B82F6"},
		{Name: CategoryTransport, Icon: "🚗", Color: "#8B5CF6"},
		{Name: CategoryShopping, Icon: "🛍️", Color: "#10B981"},
		{Name: CategoryEntertainment, Icon: "🎬", Color: "#F59E0B"},
		{Name: CategoryBills, Icon: "💡", Color: "#EF4444"},
		{Name: CategoryHealthcare, Icon: "🏥", Color: "#14B8A6"},
		{Name: CategoryInsurance, Icon: "🛡️", Color: "#6366F1"},
		{Name: CategoryEducation, Icon: "📚", Color: "#EC4899"},
		{Name: CategoryOther, Icon: "📦", Color: "#64748B"},
	}
}
