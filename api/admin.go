package api

import (
	"fmt"
	"math"
	"net/url"
	"time"

	"expensetracker/database"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// AdminHandler 管理后台，路由需挂在 JWTAuth + AdminOnly 之后
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// SystemOverview 系统概览
type SystemOverview struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	TotalExpenses     float64 `json:"total_expenses"`
	AvgExpensePerUser float64 `json:"avg_expense_per_user"`
}

// AdminUserRow 用户及其支出汇总
type AdminUserRow struct {
	ID            uint       `json:"id"`
	Username      string     `json:"username"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	TotalExpenses float64    `json:"total_expenses"`
	LastActive    *time.Time `json:"last_active"`
}

// Overview 系统概览
// @Summary 系统概览
// @Description 用户总数、正常用户数、支出总额与人均支出
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=SystemOverview} "获取成功"
// @Failure 403 {object} Response "无权访问"
// @Router /api/v1/admin/overview [get]
func (h *AdminHandler) Overview(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())

	var overview SystemOverview
	if err := db.Model(&models.User{}).Count(&overview.TotalUsers).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	if err := db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&overview.ActiveUsers).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	if err := db.Model(&models.Expense{}).Select("COALESCE(SUM(ABS(amount)), 0)").Scan(&overview.TotalExpenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	overview.TotalExpenses = math.Round(overview.TotalExpenses*100) / 100
	if overview.TotalUsers > 0 {
		overview.AvgExpensePerUser = math.Round(overview.TotalExpenses/float64(overview.TotalUsers)*100) / 100
	}

	Success(c, overview)
}

// Users 用户列表
// @Summary 用户列表
// @Description 所有用户及其支出总额、最近一笔支出日期
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]AdminUserRow} "获取成功"
// @Failure 403 {object} Response "无权访问"
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) Users(c *gin.Context) {
	rows := []AdminUserRow{}
	err := database.DB.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Select("users.id, users.username, users.full_name, users.email, users.role, users.status, " +
			"COALESCE(SUM(ABS(expenses.amount)), 0) AS total_expenses, MAX(expenses.date) AS last_active").
		Joins("LEFT JOIN expenses ON expenses.user_id = users.id").
		Group("users.id, users.username, users.full_name, users.email, users.role, users.status").
		Order("users.id ASC").
		Scan(&rows).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, rows)
}

// expenseWithUser 导出用
type expenseWithUser struct {
	models.Expense
	Username string
}

// ExportExcel 导出所有用户的支出为 Excel
// @Summary 导出支出报表
// @Description 导出所有用户的支出记录（可选日期范围）为 Excel 文件
// @Tags 后台管理
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_time query string false "开始日期 (2024-01-01)"
// @Param end_time query string false "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 403 {object} Response "无权访问"
// @Router /api/v1/admin/export/excel [get]
func (h *AdminHandler) ExportExcel(c *gin.Context) {
	query := database.DB.WithContext(c.Request.Context()).
		Model(&models.Expense{}).
		Select("expenses.*, users.username").
		Joins("LEFT JOIN users ON expenses.user_id = users.id")

	startTime, endTime := c.Query("start_time"), c.Query("end_time")
	if startTime != "" {
		start, err := parseDay(startTime, false)
		if err != nil {
			BadRequest(c, "开始时间格式错误")
			return
		}
		query = query.Where("expenses.date >= ?", start)
	}
	if endTime != "" {
		end, err := parseDay(endTime, true)
		if err != nil {
			BadRequest(c, "结束时间格式错误")
			return
		}
		query = query.Where("expenses.date <= ?", end)
	}

	var expenses []expenseWithUser
	if err := query.Order("expenses.date DESC, expenses.id DESC").Scan(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	f, err := buildExpenseWorkbook(expenses)
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
	defer f.Close()

	filename := "expense_report.xlsx"
	if startTime != "" || endTime != "" {
		filename = fmt.Sprintf("expense_report_%s_%s.xlsx", startTime, endTime)
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}

func buildExpenseWorkbook(expenses []expenseWithUser) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Expenses"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})

	widths := map[string]float64{"A": 10, "B": 15, "C": 12, "D": 20, "E": 30, "F": 14}
	for col, w := range widths {
		f.SetColWidth(sheetName, col, col, w)
	}

	headers := []string{"ID", "User", "Amount", "Category", "Description", "Date"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var totalCents int64
	for i, e := range expenses {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), math.Abs(e.Amount))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.CategoryName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), e.Date.Format("2006-01-02"))
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
		totalCents += int64(math.Round(math.Abs(e.Amount) * 100))
	}

	summaryRow := len(expenses) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), float64(totalCents)/100)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("%d records", len(expenses)))
	f.MergeCell(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("F%d", summaryRow))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	return f, nil
}
