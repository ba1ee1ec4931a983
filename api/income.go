package api

import (
	"expensetracker/middleware"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
)

// IncomeHandler 收入记录处理器
type IncomeHandler struct {
	ledger *service.LedgerService
}

// NewIncomeHandler 创建收入记录处理器
func NewIncomeHandler(ledger *service.LedgerService) *IncomeHandler {
	return &IncomeHandler{ledger: ledger}
}

// Create 新增收入
// @Summary 新增收入
// @Description 新增一条收入记录，date 为空时取当天
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.IncomeInput true "收入信息"
// @Success 200 {object} Response{data=models.Income} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req service.IncomeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	income, err := h.ledger.CreateIncome(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "创建收入失败")
		return
	}

	SuccessWithMessage(c, "创建成功", income)
}

// List 收入列表
// @Summary 获取收入列表
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param start_time query string false "开始日期 (2024-01-01)"
// @Param end_time query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Income}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.normalize()

	list, total, err := h.ledger.ListIncome(c.Request.Context(), userID, req.dateRange(), req.Page, req.PageSize)
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

// Get 单条收入
// @Summary 获取单条收入
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Success 200 {object} Response{data=models.Income} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	income, err := h.ledger.GetIncome(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	Success(c, income)
}
