package api

import (
	"errors"
	"log"
	"strconv"
	"time"

	"expensetracker/service"

	"github.com/gin-gonic/gin"
)

// respondError 把 service 层错误映射为 HTTP 响应
func respondError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationFailed(c, verr.Fields)
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongPassword):
		Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrAccountLocked):
		Forbidden(c, err.Error())
	case errors.Is(err, service.ErrReminderNotFound),
		errors.Is(err, service.ErrExpenseNotFound),
		errors.Is(err, service.ErrIncomeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		NotFound(c, err.Error())
	default:
		log.Printf("%s: %v", fallback, err)
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}

// parseID 解析路径参数 :id
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// referenceDate 解析 ?date=2006-01-02，缺省为今天
func referenceDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return time.Time{}, false
	}
	return t, true
}

// parseDay 解析 2006-01-02；endOfDay 为 true 时取当天 23:59:59
func parseDay(raw string, endOfDay bool) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}
