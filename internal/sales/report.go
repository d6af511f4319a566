package sales

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// SalesReport renders the plain-text sales summary. The line order,
// labels and PHP currency formatting are a stable contract: exported
// report files are compared byte for byte downstream.
func (e *Engine) SalesReport(start, end time.Time) string {
	var b strings.Builder
	b.WriteString("Sales Report\n")
	fmt.Fprintf(&b, "From: %s To: %s\n", start.Format(dateLayout), end.Format(dateLayout))
	fmt.Fprintf(&b, "Timestamp: %s\n", time.Now().Format(dateLayout))
	fmt.Fprintf(&b, "Total Revenue: PHP%.2f\n", e.TotalRevenue(start, end))
	fmt.Fprintf(&b, "Daily Average Revenue: PHP%.2f\n", e.DailyAverageRevenue(start, end))
	fmt.Fprintf(&b, "Total Profit: PHP%.2f\n", e.TotalProfit(start, end))
	fmt.Fprintf(&b, "Total Transactions: %d\n", e.TotalTransactions(start, end))

	b.WriteString("Top Selling Products:\n")
	for _, item := range e.TopSellingProducts(5, start, end) {
		fmt.Fprintf(&b, "- %s\n", item.ProductName)
	}
	b.WriteString("Least Selling Products:\n")
	for _, item := range e.LeastSellingProducts(5, start, end) {
		fmt.Fprintf(&b, "- %s\n", item.ProductName)
	}
	return b.String()
}

// ExpensesReport renders the plain-text cost summary, same contract as
// SalesReport.
func (e *Engine) ExpensesReport(start, end time.Time) string {
	var b strings.Builder
	b.WriteString("Expenses Report\n")
	fmt.Fprintf(&b, "From: %s To: %s\n", start.Format(dateLayout), end.Format(dateLayout))
	fmt.Fprintf(&b, "Timestamp: %s\n", time.Now().Format(dateLayout))
	fmt.Fprintf(&b, "Total COGS: PHP%.2f\n", e.COGS(start, end))
	fmt.Fprintf(&b, "Total COGP: PHP%.2f\n", e.COGP(start, end))
	return b.String()
}
