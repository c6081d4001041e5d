package report

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jo-hoe/imgsuite/internal/core"
	"github.com/jo-hoe/imgsuite/internal/scenario"
	"github.com/jo-hoe/imgsuite/internal/storage"
)

// ReportService exposes recorded suite runs and on-demand suite execution
// over HTTP.
type ReportService struct {
	coreService *core.CoreService
}

func NewReportService(coreService *core.CoreService) *ReportService {
	return &ReportService{
		coreService: coreService,
	}
}

func (service *ReportService) SetRoutes(e *echo.Echo) {
	// Probe route for liveness checks
	e.GET("/probe", service.probeHandler)

	// Routes for listing, inspecting, deleting and triggering runs
	e.GET("/api/runs", service.listRunsHandler)
	e.GET("/api/runs/:id/results", service.runResultsHandler)
	e.DELETE("/api/runs/:id", service.deleteRunHandler)
	e.POST("/api/runs", service.triggerRunHandler)
}

func (service *ReportService) probeHandler(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Report service is running")
}

func (service *ReportService) listRunsHandler(ctx echo.Context) error {
	runs, err := service.coreService.Runs()
	if err != nil {
		slog.Error("listRunsHandler: failed to list runs",
			"status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to list runs")
	}
	if runs == nil {
		runs = []*storage.Run{}
	}
	return ctx.JSON(http.StatusOK, runs)
}

func (service *ReportService) runResultsHandler(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		slog.Warn("runResultsHandler: missing run id",
			"status", http.StatusBadRequest,
			"route", "/api/runs/:id/results")
		return ctx.String(http.StatusBadRequest, "Missing run ID")
	}

	run, err := service.coreService.Run(id)
	if err != nil {
		slog.Error("runResultsHandler: failed to load run",
			"status", http.StatusInternalServerError, "run_id", id, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load run")
	}
	if run == nil {
		slog.Warn("runResultsHandler: run not found",
			"status", http.StatusNotFound, "run_id", id)
		return ctx.String(http.StatusNotFound, "Run not found")
	}

	records, err := service.coreService.StepResults(id)
	if err != nil {
		slog.Error("runResultsHandler: failed to load step results",
			"status", http.StatusInternalServerError, "run_id", id, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load step results")
	}
	if records == nil {
		// A run without steps is still a valid, known run
		records = []*storage.StepRecord{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (service *ReportService) deleteRunHandler(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		slog.Warn("deleteRunHandler: missing run id",
			"status", http.StatusBadRequest,
			"route", "/api/runs/:id")
		return ctx.String(http.StatusBadRequest, "Missing run ID")
	}

	if err := service.coreService.DeleteRun(id); err != nil {
		slog.Error("deleteRunHandler: failed to delete run",
			"status", http.StatusInternalServerError, "run_id", id, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to delete run")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// runRequest optionally overrides the configured sample corpus for one run.
type runRequest struct {
	ImageDir string   `json:"imageDir"`
	Samples  []string `json:"samples" validate:"omitempty,dive,required"`
}

type runResponse struct {
	Run     *storage.Run         `json:"run"`
	Summary *scenario.RunSummary `json:"summary"`
}

func (service *ReportService) triggerRunHandler(ctx echo.Context) error {
	request := new(runRequest)
	if err := ctx.Bind(request); err != nil {
		slog.Warn("triggerRunHandler: failed to bind request",
			"status", http.StatusBadRequest, "error", err)
		return ctx.String(http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(request); err != nil {
		return err
	}

	run, summary, err := service.coreService.RunSuiteWith(ctx.Request().Context(), request.ImageDir, request.Samples)
	if err != nil {
		slog.Error("triggerRunHandler: suite run failed",
			"status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to run suite")
	}

	return ctx.JSON(http.StatusOK, &runResponse{Run: run, Summary: summary})
}
