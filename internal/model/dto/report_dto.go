package dto

// ========== Report 相关 DTO ==========

// DashboardData 首页看板数据
type DashboardData struct {
	Date          string `json:"date"`
	TotalWorkers  int    `json:"total_workers"`
	PresentToday  int    `json:"present_today"`
	HalfDayToday  int    `json:"half_day_today"`
	AbsentToday   int    `json:"absent_today"`
	TodayWages    string `json:"today_wages"`
	MonthWages    string `json:"month_wages"`
	MonthAdvances string `json:"month_advances"`
	PendingDue    string `json:"pending_due"` // 全部在职工人的待结算余额合计
}

// SummaryQuery 区间汇总查询参数
type SummaryQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// SummaryData 区间汇总报表
type SummaryData struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Workers []WorkerStatsData `json:"workers"`
	Totals  SummaryTotals     `json:"totals"`
}

// SummaryTotals 汇总合计行
type SummaryTotals struct {
	TotalEarnings string `json:"total_earnings"`
	TotalAdvances string `json:"total_advances"`
	TotalPaid     string `json:"total_paid"`
	Balance       string `json:"balance"`
}
