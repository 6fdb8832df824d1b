package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coverply/warranty-admin/internal/models"
	"github.com/coverply/warranty-admin/internal/service"
	"github.com/coverply/warranty-admin/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

// SearchResources backs the admin picker: it proxies the catalog lookup and
// refreshes the local mirror as a side effect.
func (h *CatalogHTTP) SearchResources(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := c.QueryParam("q")
	kind := models.ResourceTypeProduct
	if c.QueryParam("kind") == "collection" {
		kind = models.ResourceTypeCollection
	}

	resources, err := h.Svc.SearchResources(ctx, q, kind)
	if err != nil {
		l.Error("catalog_search_error", "status", 502, "reason", "catalog lookup failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "catalog lookup failed")
	}

	l.Info("catalog_search_success", "kind", kind, "total", len(resources))
	return c.JSON(http.StatusOK, map[string]any{
		"resources": resources,
	})
}
