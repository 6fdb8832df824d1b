package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coverply/warranty-admin/internal/service"
	"github.com/coverply/warranty-admin/internal/transport"
	"github.com/coverply/warranty-admin/pkg/logging"
)

type DefinitionHTTP struct {
	Svc *service.DefinitionService
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}

func (h *DefinitionHTTP) CreateDefinition(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "definition.create")

	var req transport.RawDefinitionInput
	if err := c.Bind(&req); err != nil {
		l.Warn("definition_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	def, err := h.Svc.Create(ctx, req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			l.Warn("definition_create_error", "status", 400, "reason", "validation failed", "error", err)
			return c.JSON(http.StatusBadRequest, transport.ValidationErrorResponse{
				Error:  "validation failed",
				Fields: verr.Fields,
			})
		case errors.Is(err, service.ErrConflict):
			l.Warn("definition_create_error", "status", 409, "reason", "duplicate association", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "duplicate association")
		default:
			l.Error("definition_create_error", "status", 500, "reason", "cannot create definition", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create definition")
		}
	}

	l.Info("definition_create_success", "definition_id", def.ID)
	return c.JSON(http.StatusCreated, def)
}

func (h *DefinitionHTTP) PatchDefinition(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "definition.patch")

	id, err := parseID(c)
	if err != nil {
		l.Warn("definition_patch_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	var req transport.RawDefinitionInput
	if err := c.Bind(&req); err != nil {
		l.Warn("definition_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	def, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			l.Warn("definition_patch_error", "status", 400, "reason", "validation failed", "error", err)
			return c.JSON(http.StatusBadRequest, transport.ValidationErrorResponse{
				Error:  "validation failed",
				Fields: verr.Fields,
			})
		case errors.Is(err, service.ErrNotFound):
			l.Warn("definition_patch_error", "status", 404, "reason", "definition not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "definition not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("definition_patch_error", "status", 409, "reason", "duplicate association", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "duplicate association")
		default:
			l.Error("definition_patch_error", "status", 500, "reason", "cannot update definition", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update definition")
		}
	}

	l.Info("definition_patch_success", "definition_id", def.ID)
	return c.JSON(http.StatusOK, def)
}

func (h *DefinitionHTTP) DeleteDefinition(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "definition.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("definition_delete_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("definition_delete_error", "status", 404, "reason", "definition not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "definition not found")
		}
		l.Error("definition_delete_error", "status", 500, "reason", "cannot delete definition", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete definition")
	}

	l.Info("definition_delete_success", "definition_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *DefinitionHTTP) GetDefinition(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "definition.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("definition_get_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	def, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("definition_get_error", "status", 404, "reason", "definition not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "definition not found")
		}
		l.Error("definition_get_error", "status", 500, "reason", "cannot get definition", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get definition")
	}

	return c.JSON(http.StatusOK, def)
}

func (h *DefinitionHTTP) ListDefinitions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "definition.list")

	defs, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("definition_list_error", "status", 500, "reason", "cannot list definitions", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list definitions")
	}

	l.Info("definition_list_success", "total", len(defs))
	return c.JSON(http.StatusOK, map[string]any{
		"data": defs,
		"meta": map[string]any{"total": len(defs)},
	})
}

func (h *DefinitionHTTP) AppliesTo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "definition.applies_to")

	id, err := parseID(c)
	if err != nil {
		l.Warn("definition_applies_to_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	ids, err := h.Svc.AppliesTo(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("definition_applies_to_error", "status", 404, "reason", "definition not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "definition not found")
		}
		l.Error("definition_applies_to_error", "status", 500, "reason", "cannot resolve definition", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot resolve definition")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"definition_id": id,
		"product_ids":   ids,
	})
}

func (h *DefinitionHTTP) SearchDefinitions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "definition.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	if h.Svc.Search == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	from := parseIntDefault(c.QueryParam("from"), 0)
	size := parseIntDefault(c.QueryParam("size"), 20)

	total, defs, err := h.Svc.Search.SearchDefinitions(ctx, q, from, size)
	if err != nil {
		l.Error("definition_search_error", "status", 500, "reason", "search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total": total,
		"data":  defs,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
