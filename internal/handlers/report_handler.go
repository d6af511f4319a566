package handlers

import (
	"net/http"
	"time"

	"go-tindahan/internal/inventory"
	"go-tindahan/internal/sales"
	"go-tindahan/internal/store"

	"github.com/gin-gonic/gin"
)

// reportWindow parses the required start/end query params. The end bound
// is pushed to the end of its day so same-day transactions recorded with
// wall-clock times still fall inside the window.
func reportWindow(c *gin.Context) (start, end time.Time, ok bool) {
	var err1, err2 error
	start, err1 = time.ParseInLocation(dateLayout, c.Query("start"), time.Local)
	end, err2 = time.ParseInLocation(dateLayout, c.Query("end"), time.Local)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end must be YYYY-MM-DD"})
		return start, end, false
	}
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end, true
}

// withEngine runs fn with the tenant's analytics engine under the
// directory read lock, so report math never races a checkout. Anything
// fn wants to serialize must be copied out of the account first.
func (h *Handler) withEngine(c *gin.Context, fn func(*sales.Engine)) {
	err := h.Dir.ReadAccount(tenant(c), func(account *store.StoreAccount) {
		fn(sales.New(account))
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	}
}

// itemValues detaches ranked items from the live catalog so they can be
// rendered after the directory lock is released.
func itemValues(items []*inventory.Item) []inventory.Item {
	values := make([]inventory.Item, 0, len(items))
	for _, item := range items {
		values = append(values, *item)
	}
	return values
}

// GetSalesReport returns the sales metrics as JSON for dashboards.
func (h *Handler) GetSalesReport(c *gin.Context) {
	start, end, ok := reportWindow(c)
	if !ok {
		return
	}

	var resp gin.H
	h.withEngine(c, func(engine *sales.Engine) {
		resp = gin.H{
			"total_revenue":         engine.TotalRevenue(start, end),
			"daily_average_revenue": engine.DailyAverageRevenue(start, end),
			"total_profit":          engine.TotalProfit(start, end),
			"total_transactions":    engine.TotalTransactions(start, end),
			"top_selling":           itemValues(engine.TopSellingProducts(5, start, end)),
			"least_selling":         itemValues(engine.LeastSellingProducts(5, start, end)),
		}
	})
	if resp != nil {
		c.JSON(http.StatusOK, resp)
	}
}

// ExportSalesReport returns the fixed-format plain-text report for
// download. The text layout is a stable contract.
func (h *Handler) ExportSalesReport(c *gin.Context) {
	start, end, ok := reportWindow(c)
	if !ok {
		return
	}

	var report string
	var found bool
	h.withEngine(c, func(engine *sales.Engine) {
		report = engine.SalesReport(start, end)
		found = true
	})
	if found {
		c.Header("Content-Disposition", `attachment; filename="sales-report.txt"`)
		c.String(http.StatusOK, report)
	}
}

// GetExpensesReport returns the cost metrics as JSON.
func (h *Handler) GetExpensesReport(c *gin.Context) {
	start, end, ok := reportWindow(c)
	if !ok {
		return
	}

	var resp gin.H
	h.withEngine(c, func(engine *sales.Engine) {
		resp = gin.H{
			"total_cogs": engine.COGS(start, end),
			"total_cogp": engine.COGP(start, end),
		}
	})
	if resp != nil {
		c.JSON(http.StatusOK, resp)
	}
}

// ExportExpensesReport returns the fixed-format plain-text expenses report.
func (h *Handler) ExportExpensesReport(c *gin.Context) {
	start, end, ok := reportWindow(c)
	if !ok {
		return
	}

	var report string
	var found bool
	h.withEngine(c, func(engine *sales.Engine) {
		report = engine.ExpensesReport(start, end)
		found = true
	})
	if found {
		c.Header("Content-Disposition", `attachment; filename="expenses-report.txt"`)
		c.String(http.StatusOK, report)
	}
}
