package api

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Rumi1013/filewizard/db"
	"github.com/Rumi1013/filewizard/organizer"
	"github.com/Rumi1013/filewizard/report"
	"github.com/Rumi1013/filewizard/scanner"
	"github.com/Rumi1013/filewizard/tags"
)

const perPage = 100

// Handler wires the engine components behind the HTTP surface.
type Handler struct {
	scanner     *scanner.Scanner
	organizer   *organizer.Organizer
	aggregator  *report.Aggregator
	applier     *tags.Applier
	recommender tags.Recommender
	assessments *db.AssessmentStore
	changes     *db.ChangeStore
	reports     *db.ReportStore
	tagStore    *db.TagStore
}

// Deps carries the handler's collaborators.
type Deps struct {
	Scanner     *scanner.Scanner
	Organizer   *organizer.Organizer
	Aggregator  *report.Aggregator
	Applier     *tags.Applier
	Recommender tags.Recommender
	Assessments *db.AssessmentStore
	Changes     *db.ChangeStore
	Reports     *db.ReportStore
	TagStore    *db.TagStore
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		scanner:     deps.Scanner,
		organizer:   deps.Organizer,
		aggregator:  deps.Aggregator,
		applier:     deps.Applier,
		recommender: deps.Recommender,
		assessments: deps.Assessments,
		changes:     deps.Changes,
		reports:     deps.Reports,
		tagStore:    deps.TagStore,
	}
}

// NewPaginatedResponse creates a new paginated response and adds telemetry
func NewPaginatedResponse(c echo.Context, data interface{}, page int, perPage int, total int) *PaginatedResponse {
	totalPages := (total + perPage - 1) / perPage
	hasNext := page < totalPages

	// Use span from request context
	if span := trace.SpanFromContext(c.Request().Context()); span != nil {
		span.SetAttributes(
			attribute.Bool("has_next_page", hasNext),
			attribute.Int("response_items", reflect.ValueOf(data).Len()),
		)
	}

	return &PaginatedResponse{
		Data:       data,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    hasNext,
	}
}

// getPageFromQuery gets and validates page number from query parameters
func (h *Handler) getPageFromQuery(c echo.Context, total int) (int, error) {
	pageStr := c.QueryParam("page")
	if pageStr == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid page number")
	}

	if page < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Page number must be greater than 0")
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages > 0 && page > totalPages {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Page number exceeds total pages. Total pages: "+strconv.Itoa(totalPages))
	}

	// Add OpenTelemetry attributes for pagination using the parent span from request context
	span := trace.SpanFromContext(c.Request().Context())
	span.SetAttributes(
		attribute.Int("page", page),
		attribute.Int("per_page", perPage),
		attribute.Int("total", total),
		attribute.Int("total_pages", totalPages),
	)

	return page, nil
}
