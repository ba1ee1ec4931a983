package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"expensetracker/events"
	"expensetracker/models"
	"expensetracker/repository"
)

// ReminderInput 创建账单提醒的表单
type ReminderInput struct {
	Title        string  `json:"title"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"due_date"` // 2006-01-02
	Time         string  `json:"time"`     // 15:04
	Frequency    string  `json:"frequency"`
	Category     string  `json:"category"`
	EmailEnabled *bool   `json:"email_enabled"`
}

// Validate 校验表单；Frequency 为空时补为 Monthly
func (in *ReminderInput) Validate() ValidationResult {
	res := newValidationResult()

	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Frequency = strings.TrimSpace(in.Frequency)

	if in.Title == "" {
		res.add("title", "标题不能为空")
	}
	checkAmount(&res, in.Amount)
	if in.DueDate == "" {
		res.add("due_date", "到期日期不能为空")
	} else if _, err := time.Parse("2006-01-02", in.DueDate); err != nil {
		res.add("due_date", "到期日期格式应为 YYYY-MM-DD")
	}
	if in.Time == "" {
		res.add("time", "提醒时间不能为空")
	} else if _, err := time.Parse("15:04", in.Time); err != nil {
		res.add("time", "提醒时间格式应为 HH:MM")
	}
	if in.Category == "" {
		res.add("category", "类别不能为空")
	}
	if in.Frequency == "" {
		in.Frequency = models.FrequencyMonthly
	} else if !models.ValidFrequency(in.Frequency) {
		res.add("frequency", "频率只能是 Once、Weekly、Monthly 或 Yearly")
	}
	return res
}

func (in *ReminderInput) emailEnabled() bool {
	return in.EmailEnabled == nil || *in.EmailEnabled
}

// ReminderSummary 提醒概览
type ReminderSummary struct {
	PendingCount int     `json:"pending_count"`
	TotalDue     float64 `json:"total_due"`
	PaidCount    int     `json:"paid_count"`
}

// ReminderService 账单提醒生命周期
type ReminderService struct {
	store    ReminderStore
	notifier ReminderDispatcher
	events   Publisher
}

func NewReminderService(store ReminderStore, notifier ReminderDispatcher, publisher Publisher) *ReminderService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &ReminderService{store: store, notifier: notifier, events: publisher}
}

// List 用户的全部提醒，按到期日升序
func (s *ReminderService) List(ctx context.Context, userID uint) ([]models.BillReminder, error) {
	list, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dataAccess("查询账单提醒", err)
	}
	if list == nil {
		list = []models.BillReminder{}
	}
	return list, nil
}

// Create 创建提醒（状态 pending），开启邮件通知且用户有邮箱时立即发送一封提醒。
// 邮件发送失败不回滚提醒，结果通过 DispatchResult 返回；未尝试发送时为 nil。
func (s *ReminderService) Create(ctx context.Context, owner *models.User, input ReminderInput) (*models.BillReminder, *DispatchResult, error) {
	if res := input.Validate(); !res.Valid {
		return nil, nil, res.Err()
	}

	dueDate, _ := time.ParseInLocation("2006-01-02", input.DueDate, time.Local)
	reminder := &models.BillReminder{
		UserID:       owner.ID,
		Title:        input.Title,
		Amount:       roundAmount(input.Amount),
		DueDate:      dueDate,
		Time:         input.Time,
		Frequency:    input.Frequency,
		Category:     input.Category,
		Status:       models.ReminderStatusPending,
		EmailEnabled: input.emailEnabled(),
	}
	if err := s.store.Create(ctx, reminder); err != nil {
		return nil, nil, dataAccess("创建账单提醒", err)
	}
	s.publish(ctx, owner.ID, "created")

	if !reminder.EmailEnabled || owner.Email == "" {
		return reminder, nil, nil
	}
	result := s.dispatch(ctx, owner, reminder)
	return reminder, &result, nil
}

// MarkAsPaid 标记为已支付；已支付时不做任何修改
func (s *ReminderService) MarkAsPaid(ctx context.Context, userID, id uint) (*models.BillReminder, error) {
	reminder, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if reminder.IsPaid() {
		return reminder, nil
	}

	if err := s.store.UpdateStatus(ctx, userID, id, models.ReminderStatusPaid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, dataAccess("更新账单提醒", err)
	}
	reminder.Status = models.ReminderStatusPaid
	s.publish(ctx, userID, "paid")
	return reminder, nil
}

// Delete 物理删除提醒
func (s *ReminderService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.store.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReminderNotFound
		}
		return dataAccess("删除账单提醒", err)
	}
	s.publish(ctx, userID, "deleted")
	return nil
}

// SendTestEmail 忽略 email_enabled，直接给提醒的所有者发送一封提醒邮件
func (s *ReminderService) SendTestEmail(ctx context.Context, owner *models.User, id uint) (DispatchResult, error) {
	reminder, err := s.find(ctx, owner.ID, id)
	if err != nil {
		return DispatchResult{}, err
	}
	if owner.Email == "" {
		return DispatchResult{Success: false, Error: "用户未设置邮箱"}, nil
	}
	return s.dispatch(ctx, owner, reminder), nil
}

func (s *ReminderService) find(ctx context.Context, userID, id uint) (*models.BillReminder, error) {
	reminder, err := s.store.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, dataAccess("查询账单提醒", err)
	}
	return reminder, nil
}

func (s *ReminderService) dispatch(ctx context.Context, owner *models.User, reminder *models.BillReminder) DispatchResult {
	if s.notifier == nil {
		return DispatchResult{Success: false, Error: "邮件通道未配置"}
	}
	result := s.notifier.SendReminderEmail(ctx, ReminderEmail{
		UserEmail:     owner.Email,
		UserName:      owner.DisplayName(),
		ReminderTitle: reminder.Title,
		Amount:        reminder.Amount,
		DueDate:       reminder.DueDate.Format("2006-01-02"),
	})
	if err := result.Err(owner.Email); err != nil {
		log.Printf("账单提醒 %d: %v", reminder.ID, err)
	}
	return result
}

func (s *ReminderService) publish(ctx context.Context, userID uint, action string) {
	s.events.Publish(ctx, events.NewDataChanged(userID, "reminder", action))
}

// PendingReminders 待支付的提醒
func PendingReminders(list []models.BillReminder) []models.BillReminder {
	return filterReminders(list, models.ReminderStatusPending)
}

// PaidReminders 已支付的提醒
func PaidReminders(list []models.BillReminder) []models.BillReminder {
	return filterReminders(list, models.ReminderStatusPaid)
}

func filterReminders(list []models.BillReminder, status string) []models.BillReminder {
	out := make([]models.BillReminder, 0, len(list))
	for _, r := range list {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// Summarize 待支付数量、待支付总额和已支付数量
func Summarize(list []models.BillReminder) ReminderSummary {
	var sum ReminderSummary
	var due int64
	for _, r := range list {
		switch r.Status {
		case models.ReminderStatusPending:
			sum.PendingCount++
			due += toCents(r.Amount)
		case models.ReminderStatusPaid:
			sum.PaidCount++
		}
	}
	sum.TotalDue = fromCents(due)
	return sum
}
