package service

import (
	"context"
	"sort"
	"time"

	"expensetracker/models"
	"expensetracker/repository"

	"golang.org/x/sync/errgroup"
)

const (
	defaultRecentLimit = 5
	maxRecentLimit     = 50
	defaultTrendMonths = 6
	maxTrendMonths     = 24
)

// 交易类型
const (
	TransactionExpense = "expense"
	TransactionIncome  = "income"
)

// MonthlyStats 仪表盘汇总
type MonthlyStats struct {
	Month           string  `json:"month"`
	TotalBalance    float64 `json:"total_balance"`
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	SavingsGoal     float64 `json:"savings_goal"`
}

// Transaction 最近交易
type Transaction struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}

// CategoryTotal 分类支出
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// TrendPoint 月度趋势
type TrendPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// Insights 分析卡片
type Insights struct {
	Month           string         `json:"month"`
	SavingsRate     float64        `json:"savings_rate"`
	TopCategory     *CategoryTotal `json:"top_category"`
	ExpenseChange   *float64       `json:"expense_change"` // 与上月相比的百分比，上月无支出时为 null
	MonthlyExpenses float64        `json:"monthly_expenses"`
	LastMonth       float64        `json:"last_month_expenses"`
}

// StatsService 仪表盘统计
type StatsService struct {
	store TransactionReader
}

func NewStatsService(store TransactionReader) *StatsService {
	return &StatsService{store: store}
}

func requireUser(userID uint) error {
	if userID == 0 {
		return &ValidationError{Fields: map[string]string{"user_id": "用户未登录"}}
	}
	return nil
}

func sumExpenses(rows []models.Expense) int64 {
	var total int64
	for _, e := range rows {
		total += toCents(e.Amount)
	}
	return total
}

func sumIncome(rows []models.Income) int64 {
	var total int64
	for _, in := range rows {
		total += toCents(in.Amount)
	}
	return total
}

// MonthlyStats 计算 ref 所在月份的收支与总余额，四个查询并发执行
func (s *StatsService) MonthlyStats(ctx context.Context, userID uint, ref time.Time) (*MonthlyStats, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	month := repository.MonthRange(ref)
	var (
		monthExpenses, allExpenses []models.Expense
		monthIncome, allIncome     []models.Income
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthExpenses, err = s.store.ExpensesBetween(gctx, userID, month)
		return
	})
	g.Go(func() (err error) {
		monthIncome, err = s.store.IncomeBetween(gctx, userID, month)
		return
	})
	g.Go(func() (err error) {
		allExpenses, err = s.store.ExpensesBetween(gctx, userID, repository.DateRange{})
		return
	})
	g.Go(func() (err error) {
		allIncome, err = s.store.IncomeBetween(gctx, userID, repository.DateRange{})
		return
	})
	if err := g.Wait(); err != nil {
		return nil, dataAccess("查询统计数据", err)
	}

	income := sumIncome(monthIncome)
	expenses := sumExpenses(monthExpenses)
	return &MonthlyStats{
		Month:           ref.Format("2006-01"),
		TotalBalance:    fromCents(sumIncome(allIncome) - sumExpenses(allExpenses)),
		MonthlyIncome:   fromCents(income),
		MonthlyExpenses: fromCents(expenses),
		SavingsGoal:     fromCents(income - expenses),
	}, nil
}

// recentSplit limit 条中支出占 3/5（向上取整），其余为收入
func recentSplit(limit int) (expenseLimit, incomeLimit int) {
	expenseLimit = (limit*3 + 4) / 5
	return expenseLimit, limit - expenseLimit
}

// RecentTransactions 最近交易，按日期倒序；日期相同时支出在前
func (s *StatsService) RecentTransactions(ctx context.Context, userID uint, limit int) ([]Transaction, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	expenseLimit, incomeLimit := recentSplit(limit)

	expenses, err := s.store.RecentExpenses(ctx, userID, expenseLimit)
	if err != nil {
		return nil, dataAccess("查询最近支出", err)
	}
	income, err := s.store.RecentIncome(ctx, userID, incomeLimit)
	if err != nil {
		return nil, dataAccess("查询最近收入", err)
	}

	list := make([]Transaction, 0, len(expenses)+len(income))
	for _, e := range expenses {
		desc := e.Description
		if desc == "" {
			desc = e.CategoryName
		}
		list = append(list, Transaction{
			ID:          e.ID,
			Type:        TransactionExpense,
			Description: desc,
			Category:    e.CategoryName,
			Amount:      fromCents(toCents(e.Amount)),
			Date:        e.Date,
		})
	}
	for _, in := range income {
		desc := in.Description
		if desc == "" {
			desc = in.Source
		}
		list = append(list, Transaction{
			ID:          in.ID,
			Type:        TransactionIncome,
			Description: desc,
			Category:    "Income",
			Amount:      fromCents(toCents(in.Amount)),
			Date:        in.Date,
		})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func breakdown(rows []models.Expense) []CategoryTotal {
	totals := map[string]*CategoryTotal{}
	cents := map[string]int64{}
	var all int64
	for _, e := range rows {
		name := e.CategoryName
		if name == "" {
			name = models.CategoryOther
		}
		if totals[name] == nil {
			totals[name] = &CategoryTotal{Category: name}
		}
		c := toCents(e.Amount)
		cents[name] += c
		totals[name].Count++
		all += c
	}

	list := make([]CategoryTotal, 0, len(totals))
	for name, ct := range totals {
		ct.Total = fromCents(cents[name])
		if all > 0 {
			ct.Percent = roundAmount(float64(cents[name]) * 100 / float64(all))
		}
		list = append(list, *ct)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Total != list[j].Total {
			return list[i].Total > list[j].Total
		}
		return list[i].Category < list[j].Category
	})
	return list
}

// CategoryBreakdown ref 所在月份按类别汇总的支出
func (s *StatsService) CategoryBreakdown(ctx context.Context, userID uint, ref time.Time) ([]CategoryTotal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	rows, err := s.store.ExpensesBetween(ctx, userID, repository.MonthRange(ref))
	if err != nil {
		return nil, dataAccess("查询分类支出", err)
	}
	return breakdown(rows), nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthlyTrend 截止 ref 所在月份的最近 months 个月的收支趋势，按时间正序
func (s *StatsService) MonthlyTrend(ctx context.Context, userID uint, ref time.Time, months int) ([]TrendPoint, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if months <= 0 {
		months = defaultTrendMonths
	}
	if months > maxTrendMonths {
		months = maxTrendMonths
	}

	start := firstOfMonth(ref).AddDate(0, -(months - 1), 0)
	dr := repository.DateRange{From: start, To: repository.MonthRange(ref).To}

	var (
		expenses []models.Expense
		income   []models.Income
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = s.store.ExpensesBetween(gctx, userID, dr)
		return
	})
	g.Go(func() (err error) {
		income, err = s.store.IncomeBetween(gctx, userID, dr)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, dataAccess("查询收支趋势", err)
	}

	type bucket struct{ income, expenses int64 }
	buckets := make(map[string]*bucket, months)
	keys := make([]string, 0, months)
	for i := 0; i < months; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		buckets[key] = &bucket{}
		keys = append(keys, key)
	}
	for _, e := range expenses {
		if b := buckets[e.Date.Format("2006-01")]; b != nil {
			b.expenses += toCents(e.Amount)
		}
	}
	for _, in := range income {
		if b := buckets[in.Date.Format("2006-01")]; b != nil {
			b.income += toCents(in.Amount)
		}
	}

	points := make([]TrendPoint, 0, months)
	for _, key := range keys {
		b := buckets[key]
		points = append(points, TrendPoint{
			Month:    key,
			Income:   fromCents(b.income),
			Expenses: fromCents(b.expenses),
			Savings:  fromCents(b.income - b.expenses),
		})
	}
	return points, nil
}

// Insights 储蓄率、最高支出类别以及与上月相比的支出变化
func (s *StatsService) Insights(ctx context.Context, userID uint, ref time.Time) (*Insights, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	month := repository.MonthRange(ref)
	lastMonth := repository.MonthRange(firstOfMonth(ref).AddDate(0, -1, 0))
	var (
		expenses, lastExpenses []models.Expense
		income                 []models.Income
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = s.store.ExpensesBetween(gctx, userID, month)
		return
	})
	g.Go(func() (err error) {
		lastExpenses, err = s.store.ExpensesBetween(gctx, userID, lastMonth)
		return
	})
	g.Go(func() (err error) {
		income, err = s.store.IncomeBetween(gctx, userID, month)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, dataAccess("查询分析数据", err)
	}

	spent := sumExpenses(expenses)
	earned := sumIncome(income)
	before := sumExpenses(lastExpenses)

	out := &Insights{
		Month:           ref.Format("2006-01"),
		MonthlyExpenses: fromCents(spent),
		LastMonth:       fromCents(before),
	}
	if earned > 0 {
		out.SavingsRate = roundAmount(float64(earned-spent) * 100 / float64(earned))
	}
	if cats := breakdown(expenses); len(cats) > 0 {
		top := cats[0]
		out.TopCategory = &top
	}
	if before > 0 {
		change := roundAmount(float64(spent-before) * 100 / float64(before))
		out.ExpenseChange = &change
	}
	return out, nil
}
