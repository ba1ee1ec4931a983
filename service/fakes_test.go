package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"expensetracker/events"
	"expensetracker/models"
	"expensetracker/repository"
)

var errStoreDown = errors.New("connection refused")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// setLocalZone 临时替换 time.Local，测试结束后还原
func setLocalZone(t *testing.T, name string, offsetHours int) {
	t.Helper()
	old := time.Local
	time.Local = time.FixedZone(name, offsetHours*3600)
	t.Cleanup(func() { time.Local = old })
}

// memLedger 内存版收支存储
type memLedger struct {
	mu         sync.Mutex
	expenses   []models.Expense
	income     []models.Income
	categories []models.ExpenseCategory
	fail       error
}

func newMemLedger() *memLedger {
	cats := models.DefaultCategories()
	for i := range cats {
		cats[i].ID = uint(i + 1)
	}
	return &memLedger{categories: cats}
}

func (m *memLedger) addExpense(userID uint, amount float64, category string, date time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses = append(m.expenses, models.Expense{
		ID: uint(len(m.expenses) + 1), UserID: userID, Amount: amount, CategoryName: category, Date: date,
	})
}

func (m *memLedger) addIncome(userID uint, amount float64, source string, date time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.income = append(m.income, models.Income{
		ID: uint(len(m.income) + 1), UserID: userID, Amount: amount, Source: source, Date: date,
	})
}

func (m *memLedger) ExpensesBetween(ctx context.Context, userID uint, dr repository.DateRange) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []models.Expense
	for _, e := range m.expenses {
		if e.UserID == userID && dr.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memLedger) IncomeBetween(ctx context.Context, userID uint, dr repository.DateRange) ([]models.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []models.Income
	for _, in := range m.income {
		if in.UserID == userID && dr.Contains(in.Date) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (m *memLedger) RecentExpenses(ctx context.Context, userID uint, limit int) ([]models.Expense, error) {
	all, err := m.ExpensesBetween(ctx, userID, repository.DateRange{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memLedger) RecentIncome(ctx context.Context, userID uint, limit int) ([]models.Income, error) {
	all, err := m.IncomeBetween(ctx, userID, repository.DateRange{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memLedger) FindCategory(ctx context.Context, id uint) (*models.ExpenseCategory, error) {
	for _, c := range m.categories {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memLedger) CreateExpense(ctx context.Context, e *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	e.ID = uint(len(m.expenses) + 1)
	m.expenses = append(m.expenses, *e)
	return nil
}

func (m *memLedger) CreateIncome(ctx context.Context, in *models.Income) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	in.ID = uint(len(m.income) + 1)
	m.income = append(m.income, *in)
	return nil
}

func (m *memLedger) FindExpense(ctx context.Context, userID, id uint) (*models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.expenses {
		if e.ID == id && e.UserID == userID {
			e := e
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memLedger) FindIncome(ctx context.Context, userID, id uint) (*models.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, in := range m.income {
		if in.ID == id && in.UserID == userID {
			in := in
			return &in, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memLedger) PageExpenses(ctx context.Context, f repository.ExpenseFilter) ([]models.Expense, int64, error) {
	list, err := m.ExpensesBetween(ctx, f.UserID, f.Range)
	return list, int64(len(list)), err
}

func (m *memLedger) PageIncome(ctx context.Context, userID uint, dr repository.DateRange, page, pageSize int) ([]models.Income, int64, error) {
	list, err := m.IncomeBetween(ctx, userID, dr)
	return list, int64(len(list)), err
}

// memReminders 内存版提醒存储
type memReminders struct {
	mu     sync.Mutex
	rows   []models.BillReminder
	nextID uint
	fail   error
}

func (m *memReminders) ListByUser(ctx context.Context, userID uint) ([]models.BillReminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []models.BillReminder
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (m *memReminders) Create(ctx context.Context, r *models.BillReminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.nextID++
	r.ID = m.nextID
	m.rows = append(m.rows, *r)
	return nil
}

func (m *memReminders) FindByID(ctx context.Context, userID, id uint) (*models.BillReminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, r := range m.rows {
		if r.ID == id && r.UserID == userID {
			r := r
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memReminders) UpdateStatus(ctx context.Context, userID, id uint, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].UserID == userID {
			m.rows[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memReminders) Delete(ctx context.Context, userID, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].UserID == userID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// memUsers 内存版账号存储
type memUsers struct {
	mu    sync.Mutex
	users []models.User
	fail  error
}

func (m *memUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, u := range m.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, u := range m.users {
		if u.Username == login || (u.Email != "" && u.Email == login) {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	user.ID = uint(len(m.users) + 1)
	m.users = append(m.users, *user)
	return nil
}

func (m *memUsers) UpdatePassword(ctx context.Context, id uint, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Password = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

// spyTransport 记录所有投递请求
type spyTransport struct {
	mu    sync.Mutex
	sent  []MailMessage
	err   error
	panic bool
}

func (s *spyTransport) Send(ctx context.Context, msg MailMessage) (*DeliveryReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if s.panic {
		panic("smtp connection reset")
	}
	if s.err != nil {
		return nil, s.err
	}
	return newReceipt("spy", "msg-1"), nil
}

func (s *spyTransport) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Entity+"."+e.Action)
	}
	return out
}
