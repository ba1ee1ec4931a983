package main

import (
	"bytes"
	"strings"
	"testing"

	"expensetracker/database"
	"expensetracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func useMemoryDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	old := openDB
	openDB = func(string) (*gorm.DB, func(), error) { return db, func() {}, nil }
	t.Cleanup(func() {
		openDB = old
		sqlDB.Close()
	})
	return db
}

func TestRun_CreatesAdmin(t *testing.T) {
	db := useMemoryDB(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"alice", "--email", "alice@example.com", "--admin"}, strings.NewReader("secret123\n"), &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "用户 alice 创建成功")

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestRun_PasswordFlag(t *testing.T) {
	db := useMemoryDB(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"bob", "--password", "hunter22"}, strings.NewReader(""), &stdout, &stderr))

	var user models.User
	require.NoError(t, db.Where("username = ?", "bob").First(&user).Error)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotContains(t, stdout.String(), "Password:")
}

func TestRun_DuplicateUser(t *testing.T) {
	useMemoryDB(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"carol", "--password", "secret123"}, strings.NewReader(""), &stdout, &stderr))

	err := run([]string{"carol", "--password", "secret123"}, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "已存在")
}

func TestRun_Validation(t *testing.T) {
	useMemoryDB(t)
	var stdout, stderr bytes.Buffer

	assert.Error(t, run([]string{}, strings.NewReader(""), &stdout, &stderr))
	assert.Error(t, run([]string{"ab", "--password", "secret123"}, strings.NewReader(""), &stdout, &stderr))
	assert.Error(t, run([]string{"dave", "--password", "123"}, strings.NewReader(""), &stdout, &stderr))
	// 未提供密码且输入为空
	assert.Error(t, run([]string{"dave"}, strings.NewReader(""), &stdout, &stderr))
}
