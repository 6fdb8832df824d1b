package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/coverply/warranty-admin/pkg/middleware/auth"
)

type Deps struct {
	DefinitionHandler *DefinitionHTTP
	CatalogHandler    *CatalogHTTP
	SessionSecret     []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	sessionMW := middleware.NewSessionMiddleware(d.SessionSecret)

	v1 := e.Group("/api/v1", sessionMW.RequireAdmin)

	warranties := v1.Group("/warranties")
	warranties.GET("", d.DefinitionHandler.ListDefinitions)
	warranties.GET("/search", d.DefinitionHandler.SearchDefinitions)
	warranties.GET("/:id", d.DefinitionHandler.GetDefinition)
	warranties.GET("/:id/applies-to", d.DefinitionHandler.AppliesTo)
	warranties.POST("", d.DefinitionHandler.CreateDefinition)
	warranties.PATCH("/:id", d.DefinitionHandler.PatchDefinition)
	warranties.DELETE("/:id", d.DefinitionHandler.DeleteDefinition)

	v1.GET("/catalog/search", d.CatalogHandler.SearchResources)
}
