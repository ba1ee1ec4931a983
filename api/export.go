package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"expensetracker/middleware"
	"expensetracker/repository"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	transactions service.TransactionReader
}

// NewExportHandler 创建导出处理器
func NewExportHandler(transactions service.TransactionReader) *ExportHandler {
	return &ExportHandler{transactions: transactions}
}

// ExportCSV 导出支出记录为 CSV
// @Summary 导出支出记录
// @Description 根据日期范围导出当前用户的支出记录为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start_time query string true "开始日期 (2024-01-01)"
// @Param end_time query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	startTimeStr := c.Query("start_time")
	endTimeStr := c.Query("end_time")
	if startTimeStr == "" || endTimeStr == "" {
		BadRequest(c, "请提供开始时间和结束时间")
		return
	}

	startTime, err := parseDay(startTimeStr, false)
	if err != nil {
		BadRequest(c, "开始时间格式错误，应为: 2006-01-02")
		return
	}
	endTime, err := parseDay(endTimeStr, true)
	if err != nil {
		BadRequest(c, "结束时间格式错误，应为: 2006-01-02")
		return
	}

	expenses, err := h.transactions.ExpensesBetween(c.Request.Context(), userID, repository.DateRange{From: startTime, To: endTime})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"ID", "Date", "Category", "Description", "Notes", "Amount"})
	for _, e := range expenses {
		_ = writer.Write([]string{
			fmt.Sprintf("%d", e.ID),
			e.Date.Format("2006-01-02"),
			e.CategoryName,
			e.Description,
			e.Notes,
			fmt.Sprintf("%.2f", e.Amount),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("expenses_%s_%s.csv", startTimeStr, endTimeStr)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
