package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Rumi1013/filewizard/db"
	"github.com/Rumi1013/filewizard/models"
)

// GetDailyReport builds the report for the requested calendar date
// (default today), persists it, and returns it. Regeneration over an
// unchanged assessment set yields an identical report.
func (h *Handler) GetDailyReport(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "GetDailyReport")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	date := time.Now().UTC()
	if dateStr := c.QueryParam("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}
	span.SetAttributes(attribute.String("report_date", date.Format("2006-01-02")))

	dailyReport, err := h.aggregator.Generate(ctx, date)
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate report")
	}

	if err := h.reports.Save(ctx, dailyReport); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save report")
	}
	span.SetAttributes(
		attribute.Int("files_processed", len(dailyReport.FilesProcessed)),
		attribute.Int("deletions", len(dailyReport.Deletions)),
	)

	return c.JSON(http.StatusOK, dailyReport)
}

// GetStoredReport returns the persisted report for a date without
// regenerating it. Dates with no stored report yield 404.
func (h *Handler) GetStoredReport(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "GetStoredReport")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}
	span.SetAttributes(attribute.String("report_date", date))

	storedReport, err := h.reports.Get(ctx, date)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No report stored for "+date)
		}
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load report")
	}

	return c.JSON(http.StatusOK, storedReport)
}

// ListChanges returns the organization-change log entries recorded on the
// requested calendar date (default today).
func (h *Handler) ListChanges(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "ListChanges")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	date := time.Now().UTC()
	if dateStr := c.QueryParam("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}
	span.SetAttributes(attribute.String("date", date.Format("2006-01-02")))

	entries, err := h.changes.ListByDay(ctx, date)
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list organization changes")
	}
	if entries == nil {
		entries = []models.OrganizationChange{}
	}
	span.SetAttributes(attribute.Int("change_count", len(entries)))

	return c.JSON(http.StatusOK, entries)
}
