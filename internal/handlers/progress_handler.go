package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ortholink/exercise-service/internal/services"
	"github.com/ortholink/exercise-service/internal/utils"
)

// ProgressHandler exposes completion aggregates for a session.
type ProgressHandler struct {
	BaseHandler
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     NewBaseHandler(logger),
		progressService: progressService,
	}
}

// GetSummary returns the completion summary, optionally scoped to sections
// @Summary Progress summary
// @Tags progress
// @Produce json
// @Param id path string true "Session ID"
// @Param sections query string false "Comma-separated section IDs"
// @Success 200 {object} models.ProgressSummary
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/progress [get]
func (h *ProgressHandler) GetSummary(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	var sectionIDs []string
	if raw := c.Query("sections"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				sectionIDs = append(sectionIDs, id)
			}
		}
	}

	summary, err := h.progressService.Summary(c.Request.Context(), sessionID, sectionIDs...)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetReport returns the per-section breakdown
// @Summary Progress report
// @Tags progress
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.ProgressReport
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/progress/report [get]
func (h *ProgressHandler) GetReport(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	report, err := h.progressService.Report(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportReport downloads the report as an xlsx workbook
// @Summary Export progress
// @Tags progress
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/progress/export [get]
func (h *ProgressHandler) ExportReport(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	h.LogRequest(c, "Exporting progress report", "session_id", sessionID)

	workbook, err := h.progressService.ExportExcel(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("progress-%s-%s.xlsx", sessionID, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
