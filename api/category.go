package api

import (
	"context"

	"expensetracker/models"

	"github.com/gin-gonic/gin"
)

// CategoryLister 支出类别查询
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]models.ExpenseCategory, error)
}

// CategoryHandler 支出类别
type CategoryHandler struct {
	categories CategoryLister
}

func NewCategoryHandler(categories CategoryLister) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List 列出所有类别
// @Summary 获取支出类别列表
// @Description 获取全部支出类别，按名称排序
// @Tags 支出类别
// @Produce json
// @Success 200 {object} Response{data=[]models.ExpenseCategory} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	if list == nil {
		list = []models.ExpenseCategory{}
	}
	Success(c, list)
}
