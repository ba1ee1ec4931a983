package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrReminderNotFound = errors.New("提醒不存在")
	ErrExpenseNotFound  = errors.New("支出记录不存在")
	ErrIncomeNotFound   = errors.New("收入记录不存在")
)

// ValidationResult 表单校验结果：Valid 为 false 时 Errors 记录每个字段的错误
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

func newValidationResult() ValidationResult {
	return ValidationResult{Valid: true, Errors: map[string]string{}}
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	if _, exists := r.Errors[field]; !exists {
		r.Errors[field] = message
	}
}

// Err 校验失败时转换为 *ValidationError
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// ValidationError 参数校验失败，在访问存储之前返回
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "参数校验失败: " + strings.Join(parts, "; ")
}

// DataAccessError 存储不可达或拒绝了操作
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s失败: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func dataAccess(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}

// NotificationDispatchError 邮件发送失败，不影响触发它的操作
type NotificationDispatchError struct {
	Recipient string
	Err       error
}

func (e *NotificationDispatchError) Error() string {
	return fmt.Sprintf("发送提醒邮件到 %s 失败: %v", e.Recipient, e.Err)
}

func (e *NotificationDispatchError) Unwrap() error {
	return e.Err
}
