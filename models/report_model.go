package models

import "time"

// BranchProfitLoss holds per-branch figures within a profit/loss report.
type BranchProfitLoss struct {
	BranchID   string  `json:"branch_id"`
	BranchName string  `json:"branch_name"`
	Revenue    float64 `json:"revenue"`
	Expenses   float64 `json:"expenses"`
	Net        float64 `json:"net"`
	OrderCount int     `json:"order_count"`
}

// ProfitLossReport aggregates paid orders against payroll expenses for a period.
type ProfitLossReport struct {
	StartDate     time.Time          `json:"start_date"`
	EndDate       time.Time          `json:"end_date"`
	TotalRevenue  float64            `json:"total_revenue"`
	TotalExpenses float64            `json:"total_expenses"`
	NetProfit     float64            `json:"net_profit"`
	OrderCount    int                `json:"order_count"`
	Branches      []BranchProfitLoss `json:"branches"`
}

// AdminDashboardSummary is the headline numbers block for the admin dashboard.
type AdminDashboardSummary struct {
	TotalRevenue      float64 `json:"total_revenue"`
	OrderCount        int     `json:"order_count"`
	ReservationCount  int     `json:"reservation_count"`
	CustomerCount     int     `json:"customer_count"`
	ActiveBranchCount int     `json:"active_branch_count"`
}
