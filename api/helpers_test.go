package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"expensetracker/database"
	"expensetracker/models"
	"expensetracker/repository"
	"expensetracker/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func newTestRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if userID != 0 {
		router.Use(setUserIDMiddleware(userID))
	}
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

var userColumns = []string{"id", "username", "password", "email", "full_name", "role", "status", "created_at", "updated_at", "deleted_at"}

func userRow(id uint, username, email string) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(id, username, "hash", email, "", models.RoleUser, models.UserStatusActive, time.Now(), time.Now(), nil)
}

var expenseColumns = []string{"id", "user_id", "amount", "category_id", "category_name", "description", "notes", "date", "created_at"}

// memTransactions 内存版收支查询
type memTransactions struct {
	mu       sync.Mutex
	expenses []models.Expense
	income   []models.Income
	calls    int
	limits   []int
}

func (m *memTransactions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memTransactions) ExpensesBetween(ctx context.Context, userID uint, dr repository.DateRange) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	var out []models.Expense
	for _, e := range m.expenses {
		if e.UserID == userID && dr.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memTransactions) IncomeBetween(ctx context.Context, userID uint, dr repository.DateRange) ([]models.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	var out []models.Income
	for _, in := range m.income {
		if in.UserID == userID && dr.Contains(in.Date) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (m *memTransactions) recordLimit(limit int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limits = append(m.limits, limit)
}

func (m *memTransactions) RecentExpenses(ctx context.Context, userID uint, limit int) ([]models.Expense, error) {
	m.recordLimit(limit)
	all, _ := m.ExpensesBetween(ctx, userID, repository.DateRange{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memTransactions) RecentIncome(ctx context.Context, userID uint, limit int) ([]models.Income, error) {
	m.recordLimit(limit)
	all, _ := m.IncomeBetween(ctx, userID, repository.DateRange{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// recordingTransport 记录投递的邮件
type recordingTransport struct {
	mu   sync.Mutex
	sent []service.MailMessage
	err  error
}

func (r *recordingTransport) Send(ctx context.Context, msg service.MailMessage) (*service.DeliveryReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	if r.err != nil {
		return nil, r.err
	}
	return &service.DeliveryReceipt{ID: "receipt-1", Transport: "test", SentAt: time.Now()}, nil
}
