package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"expensetracker/models"
	"expensetracker/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("用户名已存在")
	ErrEmailTaken         = errors.New("邮箱已被使用")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrAccountLocked      = errors.New("账号已锁定，请联系管理员解锁")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrWrongPassword      = errors.New("原密码错误")
)

// RegisterInput 新建账号；Admin 仅供命令行工具使用
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
	Admin    bool
}

func (in *RegisterInput) Validate() ValidationResult {
	res := newValidationResult()
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	if n := utf8.RuneCountInString(in.Username); n < 3 || n > 50 {
		res.add("username", "用户名长度应为 3-50 个字符")
	}
	checkPassword(&res, "password", in.Password)
	return res
}

func checkPassword(res *ValidationResult, field, password string) {
	if len(strings.TrimSpace(password)) < 6 || len(password) > 50 {
		res.add(field, "密码长度应为 6-50 个字符")
	}
}

// AccountService 注册、登录与改密
type AccountService struct {
	store      AccountStore
	bcryptCost int
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store, bcryptCost: bcrypt.DefaultCost}
}

// Register 创建启用状态的账号；用户名、邮箱均不能与已有账号的用户名或邮箱重复
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if res := in.Validate(); !res.Valid {
		return nil, res.Err()
	}
	if err := s.ensureFree(ctx, in.Username, ErrUsernameTaken); err != nil {
		return nil, err
	}
	if in.Email != "" {
		if err := s.ensureFree(ctx, in.Email, ErrEmailTaken); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Password: string(hash),
		Email:    in.Email,
		FullName: in.FullName,
		Role:     models.RoleUser,
		Status:   models.UserStatusActive,
	}
	if in.Admin {
		user.Role = models.RoleAdmin
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, dataAccess("创建用户", err)
	}
	return user, nil
}

func (s *AccountService) ensureFree(ctx context.Context, login string, taken error) error {
	_, err := s.store.FindByLogin(ctx, login)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return dataAccess("查询用户", err)
	}
}

// Authenticate 按用户名或邮箱登录，锁定的账号直接拒绝
func (s *AccountService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.store.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, dataAccess("查询用户", err)
	}
	if user.Status != models.UserStatusActive {
		return nil, ErrAccountLocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, dataAccess("查询用户", err)
	}
	return user, nil
}

// ChangePassword 校验原密码后写入新密码哈希
func (s *AccountService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	res := newValidationResult()
	checkPassword(&res, "new_password", newPassword)
	if !res.Valid {
		return res.Err()
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return dataAccess("更新密码", err)
	}
	return nil
}
