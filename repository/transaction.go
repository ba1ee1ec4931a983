package repository

import (
	"context"

	"expensetracker/models"

	"gorm.io/gorm"
)

// TransactionRepository 支出 / 收入 / 支出类别
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ExpensesBetween 查询用户在日期范围内的全部支出
func (r *TransactionRepository) ExpensesBetween(ctx context.Context, userID uint, dr DateRange) ([]models.Expense, error) {
	var list []models.Expense
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	q = dr.apply(q, "date")
	if err := q.Order("date DESC, id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// IncomeBetween 查询用户在日期范围内的全部收入
func (r *TransactionRepository) IncomeBetween(ctx context.Context, userID uint, dr DateRange) ([]models.Income, error) {
	var list []models.Income
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	q = dr.apply(q, "date")
	if err := q.Order("date DESC, id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RecentExpenses 最近 limit 条支出，按日期倒序
func (r *TransactionRepository) RecentExpenses(ctx context.Context, userID uint, limit int) ([]models.Expense, error) {
	var list []models.Expense
	if limit <= 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// RecentIncome 最近 limit 条收入，按日期倒序
func (r *TransactionRepository) RecentIncome(ctx context.Context, userID uint, limit int) ([]models.Income, error) {
	var list []models.Income
	if limit <= 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ExpenseFilter 支出分页查询条件
type ExpenseFilter struct {
	UserID     uint
	CategoryID uint
	Range      DateRange
	Page       int
	PageSize   int
}

// PageExpenses 分页查询支出，返回当前页与总数
func (r *TransactionRepository) PageExpenses(ctx context.Context, f ExpenseFilter) ([]models.Expense, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", f.UserID)
	if f.CategoryID > 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	q = f.Range.apply(q, "date")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.Expense
	offset := (f.Page - 1) * f.PageSize
	if err := q.Order("date DESC, id DESC").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// PageIncome 分页查询收入
func (r *TransactionRepository) PageIncome(ctx context.Context, userID uint, dr DateRange, page, pageSize int) ([]models.Income, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Income{}).Where("user_id = ?", userID)
	q = dr.apply(q, "date")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.Income
	offset := (page - 1) * pageSize
	if err := q.Order("date DESC, id DESC").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// FindExpense 查询用户的一条支出
func (r *TransactionRepository) FindExpense(ctx context.Context, userID, id uint) (*models.Expense, error) {
	var e models.Expense
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

// FindIncome 查询用户的一条收入
func (r *TransactionRepository) FindIncome(ctx context.Context, userID, id uint) (*models.Income, error) {
	var in models.Income
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&in).Error; err != nil {
		return nil, notFound(err)
	}
	return &in, nil
}

func (r *TransactionRepository) CreateExpense(ctx context.Context, e *models.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *TransactionRepository) CreateIncome(ctx context.Context, in *models.Income) error {
	return r.db.WithContext(ctx).Create(in).Error
}

// FindCategory 按 ID 查询支出类别
func (r *TransactionRepository) FindCategory(ctx context.Context, id uint) (*models.ExpenseCategory, error) {
	var cat models.ExpenseCategory
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cat, nil
}

// ListCategories 全部支出类别，按名称排序
func (r *TransactionRepository) ListCategories(ctx context.Context) ([]models.ExpenseCategory, error) {
	var list []models.ExpenseCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
