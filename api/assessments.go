package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Rumi1013/filewizard/assess"
	"github.com/Rumi1013/filewizard/organizer"
	"github.com/Rumi1013/filewizard/report"
)

// AssessFile scores one file against the active rules and persists the
// resulting assessment record.
func (h *Handler) AssessFile(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "AssessFile")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	var req AssessRequest
	if err := c.Bind(&req); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Path is required")
	}
	span.SetAttributes(attribute.String("path", req.Path))

	assessment, err := h.organizer.AssessFile(req.Path)
	if err != nil {
		span.RecordError(err)
		return assessError(err)
	}

	if err := h.assessments.Insert(ctx, assessment); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store assessment")
	}
	span.SetAttributes(attribute.String("quality_score", string(assessment.QualityScore)))

	return c.JSON(http.StatusOK, assessment)
}

// ApplyOrganization assesses a file and records the organization-change
// log entry for it.
func (h *Handler) ApplyOrganization(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "ApplyOrganization")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	var req OrganizeRequest
	if err := c.Bind(&req); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Path is required")
	}
	span.SetAttributes(attribute.String("path", req.Path))

	assessment, err := h.organizer.AssessFile(req.Path)
	if err != nil {
		span.RecordError(err)
		return assessError(err)
	}

	if err := h.assessments.Insert(ctx, assessment); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store assessment")
	}

	action := report.ActionAssessed
	if assessment.NeedsDeletion {
		action = report.ActionMarkedDeletion
	}
	if err := h.changes.Record(ctx, assessment.FilePath, action); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record organization change")
	}

	return c.JSON(http.StatusOK, OrganizeResponse{Assessment: assessment, Action: action})
}

// ListAssessments returns a page of stored assessments, newest first.
func (h *Handler) ListAssessments(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "ListAssessments")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	_, total, err := h.assessments.List(ctx, 1, 0)
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count assessments")
	}

	page, err := h.getPageFromQuery(c, total)
	if err != nil {
		span.RecordError(err)
		return err
	}

	assessments, total, err := h.assessments.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list assessments")
	}

	return c.JSON(http.StatusOK, NewPaginatedResponse(c, assessments, page, perPage, total))
}

func assessError(err error) error {
	var failure *assess.AssessmentFailure
	var notFile *organizer.ErrNotAFile
	switch {
	case os.IsNotExist(err) || errors.Is(err, os.ErrNotExist):
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	case os.IsPermission(err) || errors.Is(err, os.ErrPermission):
		return echo.NewHTTPError(http.StatusForbidden, "Permission denied")
	case errors.As(err, &notFile):
		return echo.NewHTTPError(http.StatusBadRequest, "Path is not a regular file")
	case errors.As(err, &failure):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, failure.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to assess file")
	}
}
