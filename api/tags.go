package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Rumi1013/filewizard/tags"
)

// ApplyBatchTags applies (file, recommendations) pairs to the tag store.
// Per-item failures are dropped from that file's result; the batch always
// returns a partial-success result.
func (h *Handler) ApplyBatchTags(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "ApplyBatchTags")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	var req BatchTagRequest
	if err := c.Bind(&req); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one item is required")
	}
	span.SetAttributes(attribute.Int("item_count", len(req.Items)))

	results, err := h.applier.ApplyBatch(ctx, req.Items)
	if err != nil {
		// Partial failure: the batch result is still returned.
		span.RecordError(err)
		log.Printf("Warning: batch tag apply had failures: %v", err)
	}

	return c.JSON(http.StatusOK, results)
}

// RecommendTags generates tag recommendations for a list of files through
// the bounded recommender pool.
func (h *Handler) RecommendTags(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "RecommendTags")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(req.Paths) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one path is required")
	}
	span.SetAttributes(attribute.Int("path_count", len(req.Paths)))

	results := tags.BatchRecommend(ctx, h.recommender, req.Paths, req.Workers)

	return c.JSON(http.StatusOK, results)
}

// ListTags returns a page of tags ordered by name.
func (h *Handler) ListTags(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "ListTags")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	_, total, err := h.tagStore.List(ctx, 1, 0)
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count tags")
	}

	page, err := h.getPageFromQuery(c, total)
	if err != nil {
		span.RecordError(err)
		return err
	}

	tagList, total, err := h.tagStore.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list tags")
	}

	return c.JSON(http.StatusOK, NewPaginatedResponse(c, tagList, page, perPage, total))
}
