package service

import (
	"context"

	"expensetracker/events"
	"expensetracker/models"
	"expensetracker/repository"
)

// TransactionReader 统计所需的收支查询
type TransactionReader interface {
	ExpensesBetween(ctx context.Context, userID uint, dr repository.DateRange) ([]models.Expense, error)
	IncomeBetween(ctx context.Context, userID uint, dr repository.DateRange) ([]models.Income, error)
	RecentExpenses(ctx context.Context, userID uint, limit int) ([]models.Expense, error)
	RecentIncome(ctx context.Context, userID uint, limit int) ([]models.Income, error)
}

// LedgerStore 收支记录的读写
type LedgerStore interface {
	FindCategory(ctx context.Context, id uint) (*models.ExpenseCategory, error)
	CreateExpense(ctx context.Context, e *models.Expense) error
	CreateIncome(ctx context.Context, in *models.Income) error
	FindExpense(ctx context.Context, userID, id uint) (*models.Expense, error)
	FindIncome(ctx context.Context, userID, id uint) (*models.Income, error)
	PageExpenses(ctx context.Context, f repository.ExpenseFilter) ([]models.Expense, int64, error)
	PageIncome(ctx context.Context, userID uint, dr repository.DateRange, page, pageSize int) ([]models.Income, int64, error)
}

// ReminderStore 账单提醒的读写
type ReminderStore interface {
	ListByUser(ctx context.Context, userID uint) ([]models.BillReminder, error)
	Create(ctx context.Context, reminder *models.BillReminder) error
	FindByID(ctx context.Context, userID, id uint) (*models.BillReminder, error)
	UpdateStatus(ctx context.Context, userID, id uint, status string) error
	Delete(ctx context.Context, userID, id uint) error
}

// AccountStore 用户账号的读写
type AccountStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

// ReminderDispatcher 提醒邮件发送
type ReminderDispatcher interface {
	SendReminderEmail(ctx context.Context, req ReminderEmail) DispatchResult
}

// Publisher 数据变更通知
type Publisher interface {
	Publish(ctx context.Context, event events.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, events.Event) {}
