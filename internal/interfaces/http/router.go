package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-lambdas/internal/interfaces/handler"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Handlers *handler.Handlers
	AppName  string
}

// NewApp crea la app Fiber. Los parámetros de ruta llegan decodificados, como en API Gateway.
func NewApp(appName string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		UnescapePath: true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	return app
}

// MountDocs sirve Swagger UI en /docs a partir del swagger.json generado por swag.
func MountDocs(app *fiber.App, filePath, title string) {
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
}

// Router registra las rutas de la API (mismas rutas que API Gateway).
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	inventoryHandler := NewInventoryHandler(deps.Handlers)

	items := app.Group("/item")
	items.Get("/:id", inventoryHandler.GetItem)
	items.Delete("/:id", inventoryHandler.DeleteItem)
	items.Delete("/", inventoryHandler.DeleteItem)

	locations := app.Group("/location")
	locations.Get("/:id", inventoryHandler.GetLocationItems)
	locations.Get("/", inventoryHandler.GetLocationItems)
}
