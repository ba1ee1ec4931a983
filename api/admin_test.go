package api

import (
	"bytes"
	"testing"
	"time"

	"expensetracker/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAdminHandler_Overview(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE status").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(ABS\\(amount\\)\\), 0\\) FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(100.0))

	router := newTestRouter(1)
	router.GET("/admin/overview", NewAdminHandler().Overview)

	w := doRequest(router, "GET", "/admin/overview", "")

	require.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total_users"])
	assert.Equal(t, float64(2), data["active_users"])
	assert.InDelta(t, 100.0, data["total_expenses"], 0.001)
	assert.InDelta(t, 33.33, data["avg_expense_per_user"], 0.001)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminHandler_Users(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	last := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT users.id, .* FROM `users` LEFT JOIN expenses").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name", "email", "role", "status", "total_expenses", "last_active"}).
			AddRow(1, "alice", "Alice", "alice@example.com", models.RoleAdmin, models.UserStatusActive, 365.5, last).
			AddRow(2, "bob", "", "", models.RoleUser, models.UserStatusLocked, 0.0, nil))

	router := newTestRouter(1)
	router.GET("/admin/users", NewAdminHandler().Users)

	w := doRequest(router, "GET", "/admin/users", "")

	require.Equal(t, 200, w.Code)
	list := decode(t, w)["data"].([]interface{})
	require.Len(t, list, 2)
	alice := list[0].(map[string]interface{})
	assert.InDelta(t, 365.5, alice["total_expenses"], 0.001)
	assert.NotNil(t, alice["last_active"])
	assert.Nil(t, list[1].(map[string]interface{})["last_active"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminHandler_ExportExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT expenses.\\*, users.username FROM `expenses` LEFT JOIN users").
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, expenseColumns...), "username")).
			AddRow(3, 1, 45.5, 1, models.CategoryFood, "Lunch", "", time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), time.Now(), "alice").
			AddRow(2, 1, 120.0, 5, models.CategoryBills, "Electricity", "", time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), time.Now(), "alice"))

	router := newTestRouter(1)
	router.GET("/admin/export/excel", NewAdminHandler().ExportExcel)

	w := doRequest(router, "GET", "/admin/export/excel?start_time=2024-05-01&end_time=2024-05-31", "")

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "expense_report_2024-05-01_2024-05-31.xlsx")
	require.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	user, _ := f.GetCellValue("Expenses", "B2")
	assert.Equal(t, "alice", user)
	total, _ := f.GetCellValue("Expenses", "C4")
	assert.Equal(t, "165.5", total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminHandler_ExportExcel_BadDate(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := newTestRouter(1)
	router.GET("/admin/export/excel", NewAdminHandler().ExportExcel)

	w := doRequest(router, "GET", "/admin/export/excel?start_time=May", "")
	assert.Equal(t, 400, w.Code)
}
