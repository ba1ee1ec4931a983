package api

import (
	"context"
	"net/http"

	"expensetracker/middleware"
	"expensetracker/models"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
)

// UserFinder 按 ID 加载用户
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// ReminderHandler 账单提醒处理器
type ReminderHandler struct {
	reminders *service.ReminderService
	users     UserFinder
}

// NewReminderHandler 创建账单提醒处理器
func NewReminderHandler(reminders *service.ReminderService, users UserFinder) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, users: users}
}

// ReminderListResponse 提醒列表
type ReminderListResponse struct {
	Pending []models.BillReminder   `json:"pending"`
	Paid    []models.BillReminder   `json:"paid"`
	Summary service.ReminderSummary `json:"summary"`
}

// CreateReminderResponse 创建结果；未发送邮件时 notification 为空
type CreateReminderResponse struct {
	Reminder     *models.BillReminder    `json:"reminder"`
	Notification *service.DispatchResult `json:"notification,omitempty"`
}

func (h *ReminderHandler) currentUser(c *gin.Context) (*models.User, bool) {
	user, err := h.users.FindByID(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		Unauthorized(c, "用户不存在")
		return nil, false
	}
	return user, true
}

// List 提醒列表
// @Summary 获取账单提醒
// @Description 按到期日排序，分为待支付与已支付，并附带概览
// @Tags 账单提醒
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=ReminderListResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	list, err := h.reminders.List(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		respondError(c, err, "获取账单提醒失败")
		return
	}
	Success(c, ReminderListResponse{
		Pending: service.PendingReminders(list),
		Paid:    service.PaidReminders(list),
		Summary: service.Summarize(list),
	})
}

// Create 创建提醒
// @Summary 创建账单提醒
// @Description 新提醒状态为 pending；开启邮件通知时立即发送一封提醒邮件，发送失败不影响创建
// @Tags 账单提醒
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ReminderInput true "提醒信息"
// @Success 200 {object} Response{data=CreateReminderResponse} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	owner, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req service.ReminderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	reminder, result, err := h.reminders.Create(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err, "创建账单提醒失败")
		return
	}

	message := "创建成功"
	if result != nil && !result.Success {
		message = "创建成功，但提醒邮件发送失败"
	}
	SuccessWithMessage(c, message, CreateReminderResponse{Reminder: reminder, Notification: result})
}

// MarkAsPaid 标记已支付
// @Summary 标记账单已支付
// @Tags 账单提醒
// @Produce json
// @Security BearerAuth
// @Param id path int true "提醒ID"
// @Success 200 {object} Response{data=models.BillReminder} "操作成功"
// @Failure 404 {object} Response "提醒不存在"
// @Router /api/v1/reminders/{id}/paid [put]
func (h *ReminderHandler) MarkAsPaid(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	reminder, err := h.reminders.MarkAsPaid(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		respondError(c, err, "更新账单提醒失败")
		return
	}
	SuccessWithMessage(c, "已标记为已支付", reminder)
}

// Delete 删除提醒
// @Summary 删除账单提醒
// @Tags 账单提醒
// @Produce json
// @Security BearerAuth
// @Param id path int true "提醒ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "提醒不存在"
// @Router /api/v1/reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.reminders.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		respondError(c, err, "删除账单提醒失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// SendTestEmail 发送测试邮件
// @Summary 发送提醒测试邮件
// @Description 不论是否开启邮件通知，向当前用户发送该提醒的邮件
// @Tags 账单提醒
// @Produce json
// @Security BearerAuth
// @Param id path int true "提醒ID"
// @Success 200 {object} Response{data=service.DispatchResult} "发送成功"
// @Failure 404 {object} Response "提醒不存在"
// @Failure 429 {object} Response "发送过于频繁"
// @Failure 502 {object} Response{data=service.DispatchResult} "邮件发送失败"
// @Router /api/v1/reminders/{id}/test-email [post]
func (h *ReminderHandler) SendTestEmail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	owner, ok := h.currentUser(c)
	if !ok {
		return
	}

	result, err := h.reminders.SendTestEmail(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err, "发送测试邮件失败")
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadGateway, Response{Code: http.StatusBadGateway, Message: "邮件发送失败: " + result.Error, Data: result})
		return
	}
	SuccessWithMessage(c, "测试邮件已发送", result)
}
