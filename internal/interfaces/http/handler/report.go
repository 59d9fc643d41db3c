package handler

import (
	"time"

	reportapp "github.com/clinic/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles revenue reporting API endpoints
type ReportHandler struct {
	BaseHandler
	revenueService *reportapp.RevenueReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(revenueService *reportapp.RevenueReportService) *ReportHandler {
	return &ReportHandler{
		revenueService: revenueService,
	}
}

// revenueQuery binds the report window. Dates are inclusive-from,
// exclusive-to, RFC 3339 or plain dates.
type revenueQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// Revenue handles GET /reports/revenue
func (h *ReportHandler) Revenue(c *gin.Context) {
	var q revenueQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	from, err := parseReportTime(q.From)
	if err != nil {
		h.BadRequest(c, "Invalid 'from' date format")
		return
	}
	to, err := parseReportTime(q.To)
	if err != nil {
		h.BadRequest(c, "Invalid 'to' date format")
		return
	}

	report, err := h.revenueService.Revenue(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

func parseReportTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
