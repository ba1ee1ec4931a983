package api

import (
	"testing"
	"time"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/middleware"
	"expensetracker/models"
	"expensetracker/repository"
	"expensetracker/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	return cfg
}

// newAuthHandler 需在 setupMockDB 之后调用
func newAuthHandler(cfg *config.Config) *AuthHandler {
	return NewAuthHandler(cfg, service.NewAccountService(repository.NewUserRepository(database.DB)))
}

func TestAuthHandler_Register(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	// 用户名、邮箱均未被占用
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := newTestRouter(0)
	router.POST("/register", newAuthHandler(cfg).Register)

	w := doRequest(router, "POST", "/register", `{"username":"alice","password":"password123","email":"alice@example.com","full_name":"Alice"}`)

	assert.Equal(t, 200, w.Code)
	resp := decode(t, w)
	assert.Equal(t, float64(200), resp["code"])
	assert.Equal(t, "注册成功", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, models.UserStatusActive, data["status"])
	assert.Equal(t, models.RoleUser, data["role"])
	assert.NotContains(t, data, "password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_UsernameExists(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(userRow(1, "alice", "alice@example.com"))

	router := newTestRouter(0)
	router.POST("/register", newAuthHandler(cfg).Register)

	w := doRequest(router, "POST", "/register", `{"username":"alice","password":"password123"}`)

	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "用户名已存在", decode(t, w)["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(userRow(1, "alice", "alice@example.com"))

	router := newTestRouter(0)
	router.POST("/register", newAuthHandler(cfg).Register)

	w := doRequest(router, "POST", "/register", `{"username":"alice2","password":"password123","email":"alice@example.com"}`)

	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "邮箱已被使用", decode(t, w)["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	router := newTestRouter(0)
	router.POST("/register", newAuthHandler(cfg).Register)

	w := doRequest(router, "POST", "/register", `{"username":"al","password":"123"}`)
	assert.Equal(t, 400, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "alice", string(hashed), "alice@example.com", "Alice", models.RoleUser, models.UserStatusActive, time.Now(), time.Now(), nil))

	router := newTestRouter(0)
	router.POST("/login", newAuthHandler(cfg).Login)

	w := doRequest(router, "POST", "/login", `{"username":"alice@example.com","password":"password123"}`)

	assert.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// 用户不存在
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns))
	// 密码错误
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "alice", string(hashed), "", "", models.RoleUser, models.UserStatusActive, time.Now(), time.Now(), nil))
	// 账号锁定
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(2, "bob", string(hashed), "", "", models.RoleUser, models.UserStatusLocked, time.Now(), time.Now(), nil))

	router := newTestRouter(0)
	router.POST("/login", newAuthHandler(cfg).Login)

	assert.Equal(t, 401, doRequest(router, "POST", "/login", `{"username":"nobody","password":"x"}`).Code)
	assert.Equal(t, 401, doRequest(router, "POST", "/login", `{"username":"alice","password":"wrong"}`).Code)
	assert.Equal(t, 403, doRequest(router, "POST", "/login", `{"username":"bob","password":"password123"}`).Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_GetProfile(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(userRow(3, "carol", "carol@example.com"))

	router := newTestRouter(3)
	router.GET("/profile", newAuthHandler(cfg).GetProfile)

	w := doRequest(router, "GET", "/profile", "")
	assert.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "carol", data["username"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "alice", string(hashed), "", "", models.RoleUser, models.UserStatusActive, time.Now(), time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newTestRouter(1)
	router.PUT("/password", newAuthHandler(cfg).ChangePassword)

	w := doRequest(router, "PUT", "/password", `{"old_password":"oldpassword","new_password":"newpassword"}`)
	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.MinCost)
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "alice", string(hashed), "", "", models.RoleUser, models.UserStatusActive, time.Now(), time.Now(), nil))

	router := newTestRouter(1)
	router.PUT("/password", newAuthHandler(cfg).ChangePassword)

	w := doRequest(router, "PUT", "/password", `{"old_password":"guess","new_password":"newpassword"}`)
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, "原密码错误", decode(t, w)["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_GetProfile_Missing(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := setupAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns))

	router := newTestRouter(8)
	router.GET("/profile", newAuthHandler(cfg).GetProfile)

	w := doRequest(router, "GET", "/profile", "")
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "用户不存在", decode(t, w)["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}
