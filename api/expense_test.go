package api

import (
	"testing"
	"time"

	"expensetracker/database"
	"expensetracker/models"
	"expensetracker/repository"
	"expensetracker/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerRouter(userID uint) (*gin.Engine, *ExpenseHandler, *IncomeHandler) {
	ledger := service.NewLedgerService(repository.NewTransactionRepository(database.DB), nil)
	return newTestRouter(userID), NewExpenseHandler(ledger), NewIncomeHandler(ledger)
}

func TestExpenseHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expense_categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "icon", "color", "created_at"}).
			AddRow(1, models.CategoryFood, "🍔", "#3B82F6", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	router, h, _ := newLedgerRouter(1)
	router.POST("/expenses", h.Create)

	w := doRequest(router, "POST", "/expenses", `{"amount":45.5,"category_id":1,"description":"Lunch","date":"2024-05-10"}`)

	assert.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["id"])
	assert.Equal(t, models.CategoryFood, data["category_name"])
	assert.Equal(t, 45.5, data["amount"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_UnknownCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expense_categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	router, h, _ := newLedgerRouter(1)
	router.POST("/expenses", h.Create)

	w := doRequest(router, "POST", "/expenses", `{"amount":10,"category_id":99}`)

	assert.Equal(t, 400, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Contains(t, data, "category_id")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_AmountOutOfRange(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router, h, _ := newLedgerRouter(1)
	router.POST("/expenses", h.Create)

	for _, body := range []string{
		`{"amount":0.004,"category_id":1}`,
		`{"amount":10000000000,"category_id":1}`,
	} {
		w := doRequest(router, "POST", "/expenses", body)
		assert.Equal(t, 400, w.Code, body)
		data := decode(t, w)["data"].(map[string]interface{})
		assert.Contains(t, data, "amount")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_Validation(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router, h, _ := newLedgerRouter(1)
	router.POST("/expenses", h.Create)

	w := doRequest(router, "POST", "/expenses", `{"amount":-3,"category_id":0,"date":"05/10/2024"}`)

	assert.Equal(t, 400, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Contains(t, data, "amount")
	assert.Contains(t, data, "category_id")
	assert.Contains(t, data, "date")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow(2, 1, 20.0, 1, models.CategoryFood, "Dinner", "", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), time.Now()).
			AddRow(1, 1, 12.0, 2, models.CategoryTransport, "Bus", "", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Now()))

	router, h, _ := newLedgerRouter(1)
	router.GET("/expenses", h.List)

	w := doRequest(router, "GET", "/expenses?page=1&page_size=500&start_time=2024-05-01&end_time=2024-05-31", "")

	assert.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(100), data["page_size"])
	assert.Len(t, data["list"], 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Get_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows(expenseColumns))

	router, h, _ := newLedgerRouter(1)
	router.GET("/expenses/:id", h.Get)

	w := doRequest(router, "GET", "/expenses/42", "")
	assert.Equal(t, 404, w.Code)

	w = doRequest(router, "GET", "/expenses/abc", "")
	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
