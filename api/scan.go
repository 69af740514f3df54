package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ScanDirectory walks one requested path into a DirectoryEntry tree.
// Restricted and missing paths come back as diagnostic entries, not HTTP
// errors, so the client can render them inline.
func (h *Handler) ScanDirectory(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "ScanDirectory")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	path := c.QueryParam("path")
	span.SetAttributes(attribute.String("path", path))

	depth := 0
	if depthStr := c.QueryParam("depth"); depthStr != "" {
		parsed, err := strconv.Atoi(depthStr)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid depth, expected a positive integer")
		}
		depth = parsed
		span.SetAttributes(attribute.Int("depth", depth))
	}

	entry := h.scanner.ScanWithDepth(path, depth)
	span.SetAttributes(
		attribute.Bool("restricted", entry.Restricted),
		attribute.String("entry_type", string(entry.Type)),
	)

	return c.JSON(http.StatusOK, entry)
}

// ScanBatch scans several requested roots independently. Restricted or
// invalid entries are reported as skipped with a reason; the batch never
// fails as a whole.
func (h *Handler) ScanBatch(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "ScanBatch")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	var req BatchScanRequest
	if err := c.Bind(&req); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(req.Paths) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one path is required")
	}
	span.SetAttributes(attribute.Int("path_count", len(req.Paths)))

	batch := h.scanner.ScanMultiple(ctx, req.Paths)
	span.SetAttributes(
		attribute.Int("scanned", len(batch.Results)),
		attribute.Int("skipped", len(batch.Skipped)),
	)

	return c.JSON(http.StatusOK, BatchScanResponse{
		Results: batch.Results,
		Skipped: batch.Skipped,
	})
}
