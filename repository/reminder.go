package repository

import (
	"context"

	"expensetracker/models"

	"gorm.io/gorm"
)

// ReminderRepository 账单提醒表
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// ListByUser 用户全部提醒，按到期日升序
func (r *ReminderRepository) ListByUser(ctx context.Context, userID uint) ([]models.BillReminder, error) {
	list := []models.BillReminder{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.BillReminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

// FindByID 查询用户的一条提醒，不属于该用户视为不存在
func (r *ReminderRepository) FindByID(ctx context.Context, userID, id uint) (*models.BillReminder, error) {
	var reminder models.BillReminder
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&reminder).Error; err != nil {
		return nil, notFound(err)
	}
	return &reminder, nil
}

// UpdateStatus 更新提醒状态
func (r *ReminderRepository) UpdateStatus(ctx context.Context, userID, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.BillReminder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 物理删除提醒
func (r *ReminderRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.BillReminder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
