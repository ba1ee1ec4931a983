package api

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"expensetracker/events"
	"expensetracker/middleware"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
)

const streamKeepAlive = 30 * time.Second

// DashboardHandler 仪表盘统计
type DashboardHandler struct {
	stats *service.StatsService
	bus   *events.Bus
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(stats *service.StatsService, bus *events.Bus) *DashboardHandler {
	return &DashboardHandler{stats: stats, bus: bus}
}

// Stats 月度汇总
// @Summary 月度汇总
// @Description 总余额、本月收入、本月支出与本月结余
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param date query string false "参考日期 (2024-05-15)，默认今天"
// @Success 200 {object} Response{data=service.MonthlyStats} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	ref, ok := referenceDate(c)
	if !ok {
		return
	}
	stats, err := h.stats.MonthlyStats(c.Request.Context(), middleware.GetCurrentUserID(c), ref)
	if err != nil {
		respondError(c, err, "获取统计数据失败")
		return
	}
	Success(c, stats)
}

// Recent 最近交易
// @Summary 最近交易
// @Description 最近的支出与收入，按日期倒序
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param limit query int false "条数，最多 50" default(5)
// @Success 200 {object} Response{data=[]service.Transaction} "获取成功"
// @Router /api/v1/dashboard/recent [get]
func (h *DashboardHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.stats.RecentTransactions(c.Request.Context(), middleware.GetCurrentUserID(c), limit)
	if err != nil {
		respondError(c, err, "获取最近交易失败")
		return
	}
	Success(c, list)
}

// Categories 分类支出
// @Summary 本月分类支出
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param date query string false "参考日期 (2024-05-15)，默认今天"
// @Success 200 {object} Response{data=[]service.CategoryTotal} "获取成功"
// @Router /api/v1/dashboard/categories [get]
func (h *DashboardHandler) Categories(c *gin.Context) {
	ref, ok := referenceDate(c)
	if !ok {
		return
	}
	list, err := h.stats.CategoryBreakdown(c.Request.Context(), middleware.GetCurrentUserID(c), ref)
	if err != nil {
		respondError(c, err, "获取分类支出失败")
		return
	}
	Success(c, list)
}

// Trend 月度趋势
// @Summary 月度收支趋势
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param date query string false "参考日期 (2024-05-15)，默认今天"
// @Param months query int false "月数，最多 24" default(6)
// @Success 200 {object} Response{data=[]service.TrendPoint} "获取成功"
// @Router /api/v1/dashboard/trend [get]
func (h *DashboardHandler) Trend(c *gin.Context) {
	ref, ok := referenceDate(c)
	if !ok {
		return
	}
	months, _ := strconv.Atoi(c.Query("months"))
	points, err := h.stats.MonthlyTrend(c.Request.Context(), middleware.GetCurrentUserID(c), ref, months)
	if err != nil {
		respondError(c, err, "获取收支趋势失败")
		return
	}
	Success(c, points)
}

// Insights 分析
// @Summary 收支分析
// @Description 储蓄率、最高支出类别以及支出环比
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param date query string false "参考日期 (2024-05-15)，默认今天"
// @Success 200 {object} Response{data=service.Insights} "获取成功"
// @Router /api/v1/dashboard/insights [get]
func (h *DashboardHandler) Insights(c *gin.Context) {
	ref, ok := referenceDate(c)
	if !ok {
		return
	}
	insights, err := h.stats.Insights(c.Request.Context(), middleware.GetCurrentUserID(c), ref)
	if err != nil {
		respondError(c, err, "获取分析数据失败")
		return
	}
	Success(c, insights)
}

type sseStatsFrame struct {
	Type  string                `json:"type"` // stats | error
	Stats *service.MonthlyStats `json:"stats,omitempty"`
	Error string                `json:"error,omitempty"`
}

func writeSSEJSON(c *gin.Context, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = c.Writer.WriteString("data: " + string(b) + "\n\n")
	c.Writer.Flush()
}

// Stream 推送月度汇总（SSE），当前用户数据变化时重新计算
// @Summary 月度汇总推送
// @Description 连接后立即推送一帧，之后在收支或提醒变化时推送最新汇总
// @Tags 仪表盘
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "SSE流：data: {\"type\":\"stats\",\"stats\":{...}}"
// @Router /api/v1/dashboard/stream [get]
func (h *DashboardHandler) Stream(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	changed := make(chan struct{}, 1)
	unsubscribe := h.bus.Subscribe(events.DataChanged, func(_ context.Context, e events.Event) error {
		if e.UserID != userID {
			return nil
		}
		select {
		case changed <- struct{}{}:
		default:
		}
		return nil
	})
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	h.pushStats(c, userID)

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-changed:
			h.pushStats(c, userID)
		case <-ticker.C:
			_, _ = c.Writer.WriteString(": ping\n\n")
			c.Writer.Flush()
		}
	}
}

func (h *DashboardHandler) pushStats(c *gin.Context, userID uint) {
	stats, err := h.stats.MonthlyStats(c.Request.Context(), userID, time.Now())
	if err != nil {
		writeSSEJSON(c, sseStatsFrame{Type: "error", Error: SafeErrorMessage(err, "获取统计数据失败")})
		return
	}
	writeSSEJSON(c, sseStatsFrame{Type: "stats", Stats: stats})
}
