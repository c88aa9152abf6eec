package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"sufra/database"
	"sufra/models"
)

func parseReportDate(dateStr string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// payrollMonths counts the calendar months a reporting period overlaps;
// salaries are monthly figures.
func payrollMonths(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 1 {
		months = 1
	}
	return months
}

func buildProfitLossReport(ctx context.Context, start, end time.Time) (models.ProfitLossReport, error) {
	db := database.GetDB()
	report := models.ProfitLossReport{StartDate: start, EndDate: end, Branches: []models.BranchProfitLoss{}}
	months := payrollMonths(start, end)

	rows, err := db.Query(ctx, `
		SELECT b.id, b.name,
		       COALESCE(rev.revenue, 0), COALESCE(rev.order_count, 0),
		       COALESCE(pay.salaries, 0)
		FROM branches b
		LEFT JOIN (
			SELECT branch_id, SUM(total_amount) AS revenue, COUNT(*) AS order_count
			FROM orders
			WHERE status = 'paid' AND created_at BETWEEN $1 AND $2
			GROUP BY branch_id
		) rev ON rev.branch_id = b.id
		LEFT JOIN (
			SELECT branch_id, SUM(salary) AS salaries
			FROM employees
			GROUP BY branch_id
		) pay ON pay.branch_id = b.id
		ORDER BY b.name
	`, start, end)
	if err != nil {
		return report, err
	}
	defer rows.Close()

	for rows.Next() {
		var row models.BranchProfitLoss
		var salaries float64
		if err := rows.Scan(&row.BranchID, &row.BranchName, &row.Revenue, &row.OrderCount, &salaries); err != nil {
			return report, err
		}
		row.Expenses = salaries * float64(months)
		row.Net = row.Revenue - row.Expenses
		report.TotalRevenue += row.Revenue
		report.TotalExpenses += row.Expenses
		report.OrderCount += row.OrderCount
		report.Branches = append(report.Branches, row)
	}
	if err := rows.Err(); err != nil {
		return report, err
	}

	report.NetProfit = report.TotalRevenue - report.TotalExpenses
	return report, nil
}

func reportPeriodFromQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	startStr := c.Query("startDate", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endStr := c.Query("endDate", time.Now().Format("2006-01-02"))

	start, err := parseReportDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate: %w", err)
	}
	end, err := parseReportDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate: %w", err)
	}
	return start, end, nil
}

// HandleGetProfitLossReport returns the profit/loss summary for a period (admin only).
// GET /api/v1/admin/reports/profit-loss?startDate=...&endDate=...
func HandleGetProfitLossReport(c *fiber.Ctx) error {
	start, end, err := reportPeriodFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	report, err := buildProfitLossReport(c.Context(), start, end)
	if err != nil {
		log.Printf("Error building profit/loss report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate report"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": report})
}

// HandleExportProfitLossReport renders the same report as an Excel workbook (admin only).
// GET /api/v1/admin/reports/profit-loss/export
func HandleExportProfitLossReport(c *fiber.Ctx) error {
	start, end, err := reportPeriodFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	report, err := buildProfitLossReport(c.Context(), start, end)
	if err != nil {
		log.Printf("Error building profit/loss report for export: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate report"})
	}

	f := excelize.NewFile()
	const sheet = "Profit & Loss"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Branch", "Revenue", "Expenses", "Net", "Orders"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", endCell, style)
	}

	row := 2
	for _, b := range report.Branches {
		values := []interface{}{b.BranchName, b.Revenue, b.Expenses, b.Net, b.OrderCount}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	totals := []interface{}{"Total", report.TotalRevenue, report.TotalExpenses, report.NetProfit, report.OrderCount}
	for i, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Error writing report workbook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to export report"})
	}

	filename := fmt.Sprintf("profit_loss_%s_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
