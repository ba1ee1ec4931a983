package api

import (
	"expensetracker/middleware"
	"expensetracker/repository"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 支出记录处理器
type ExpenseHandler struct {
	ledger *service.LedgerService
}

// NewExpenseHandler 创建支出记录处理器
func NewExpenseHandler(ledger *service.LedgerService) *ExpenseHandler {
	return &ExpenseHandler{ledger: ledger}
}

// ListRequest 列表分页与时间筛选
type ListRequest struct {
	Page       int    `form:"page" example:"1"`
	PageSize   int    `form:"page_size" example:"10"`
	CategoryID uint   `form:"category_id" example:"1"`
	StartTime  string `form:"start_time" example:"2024-01-01"`
	EndTime    string `form:"end_time" example:"2024-12-31"`
}

func (r *ListRequest) normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = 10
	}
	if r.PageSize > 100 {
		r.PageSize = 100
	}
}

// dateRange 无法解析的边界按不限处理
func (r *ListRequest) dateRange() repository.DateRange {
	var dr repository.DateRange
	if r.StartTime != "" {
		if t, err := parseDay(r.StartTime, false); err == nil {
			dr.From = t
		}
	}
	if r.EndTime != "" {
		if t, err := parseDay(r.EndTime, true); err == nil {
			dr.To = t
		}
	}
	return dr
}

// Create 新增支出
// @Summary 新增支出
// @Description 新增一条支出记录，date 为空时取当天
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ExpenseInput true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req service.ExpenseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	expense, err := h.ledger.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "创建支出失败")
		return
	}

	SuccessWithMessage(c, "创建成功", expense)
}

// List 支出列表
// @Summary 获取支出列表
// @Description 获取当前用户的支出列表，支持分页、类别和时间筛选
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param category_id query int false "类别ID"
// @Param start_time query string false "开始日期 (2024-01-01)"
// @Param end_time query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.normalize()

	list, total, err := h.ledger.ListExpenses(c.Request.Context(), repository.ExpenseFilter{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Range:      req.dateRange(),
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     list,
	})
}

// Get 单条支出
// @Summary 获取单条支出
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	expense, err := h.ledger.GetExpense(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	Success(c, expense)
}
