package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"expensetracker/events"
	"expensetracker/models"
	"expensetracker/repository"
)

// ExpenseInput 新增支出
type ExpenseInput struct {
	Amount      float64 `json:"amount"`
	CategoryID  uint    `json:"category_id"`
	Description string  `json:"description"`
	Notes       string  `json:"notes"`
	Date        string  `json:"date"` // 2006-01-02，为空时取当天
}

func (in *ExpenseInput) Validate() ValidationResult {
	res := newValidationResult()
	in.Description = strings.TrimSpace(in.Description)
	checkAmount(&res, in.Amount)
	if in.CategoryID == 0 {
		res.add("category_id", "请选择支出类别")
	}
	if in.Date != "" {
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			res.add("date", "日期格式应为 YYYY-MM-DD")
		}
	}
	return res
}

// IncomeInput 新增收入
type IncomeInput struct {
	Amount      float64 `json:"amount"`
	Source      string  `json:"source"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

func (in *IncomeInput) Validate() ValidationResult {
	res := newValidationResult()
	in.Source = strings.TrimSpace(in.Source)
	checkAmount(&res, in.Amount)
	if in.Source == "" {
		res.add("source", "收入来源不能为空")
	}
	if in.Date != "" {
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			res.add("date", "日期格式应为 YYYY-MM-DD")
		}
	}
	return res
}

// LedgerService 收支记录
type LedgerService struct {
	store  LedgerStore
	events Publisher
	now    func() time.Time
}

func NewLedgerService(store LedgerStore, publisher Publisher) *LedgerService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &LedgerService{store: store, events: publisher, now: time.Now}
}

func (s *LedgerService) parseDate(raw string) time.Time {
	if raw == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	// 与 repository.MonthRange 同为本地时区
	t, _ := time.ParseInLocation("2006-01-02", raw, time.Local)
	return t
}

// CreateExpense 新增支出，类别名称冗余保存到记录上
func (s *LedgerService) CreateExpense(ctx context.Context, userID uint, input ExpenseInput) (*models.Expense, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if res := input.Validate(); !res.Valid {
		return nil, res.Err()
	}

	category, err := s.store.FindCategory(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Fields: map[string]string{"category_id": "无效的支出类别"}}
		}
		return nil, dataAccess("查询支出类别", err)
	}

	expense := &models.Expense{
		UserID:       userID,
		Amount:       roundAmount(input.Amount),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Description:  input.Description,
		Notes:        strings.TrimSpace(input.Notes),
		Date:         s.parseDate(input.Date),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, dataAccess("创建支出", err)
	}
	s.events.Publish(ctx, events.NewDataChanged(userID, "expense", "created"))
	return expense, nil
}

// CreateIncome 新增收入
func (s *LedgerService) CreateIncome(ctx context.Context, userID uint, input IncomeInput) (*models.Income, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if res := input.Validate(); !res.Valid {
		return nil, res.Err()
	}

	income := &models.Income{
		UserID:      userID,
		Amount:      roundAmount(input.Amount),
		Source:      input.Source,
		Description: strings.TrimSpace(input.Description),
		Date:        s.parseDate(input.Date),
	}
	if err := s.store.CreateIncome(ctx, income); err != nil {
		return nil, dataAccess("创建收入", err)
	}
	s.events.Publish(ctx, events.NewDataChanged(userID, "income", "created"))
	return income, nil
}

// GetExpense 查询单条支出
func (s *LedgerService) GetExpense(ctx context.Context, userID, id uint) (*models.Expense, error) {
	e, err := s.store.FindExpense(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, dataAccess("查询支出", err)
	}
	return e, nil
}

// GetIncome 查询单条收入
func (s *LedgerService) GetIncome(ctx context.Context, userID, id uint) (*models.Income, error) {
	in, err := s.store.FindIncome(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIncomeNotFound
		}
		return nil, dataAccess("查询收入", err)
	}
	return in, nil
}

// ListExpenses 分页查询支出
func (s *LedgerService) ListExpenses(ctx context.Context, f repository.ExpenseFilter) ([]models.Expense, int64, error) {
	list, total, err := s.store.PageExpenses(ctx, f)
	if err != nil {
		return nil, 0, dataAccess("查询支出列表", err)
	}
	return list, total, nil
}

// ListIncome 分页查询收入
func (s *LedgerService) ListIncome(ctx context.Context, userID uint, dr repository.DateRange, page, pageSize int) ([]models.Income, int64, error) {
	list, total, err := s.store.PageIncome(ctx, userID, dr, page, pageSize)
	if err != nil {
		return nil, 0, dataAccess("查询收入列表", err)
	}
	return list, total, nil
}
