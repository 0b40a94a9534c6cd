package fiber

import (
	"github.com/gofiber/fiber/v3"

	"tasktrack"
)

// Adapter mounts the tasktrack API on a Fiber application.
type Adapter struct {
	app *fiber.App
}

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

// RegisterRoutes installs the auth gate and all API endpoints. The
// gate runs before routing for every request, so protected handlers
// can assume a verified subject is present in the context.
func (a *Adapter) RegisterRoutes(app *tasktrack.App) error {
	a.app.Use(NewGate(app.Tokens))

	api := a.app.Group("/api")

	// Public routes
	api.Post("/register", handleRegister(app.Auth))
	api.Post("/login", handleLogin(app.Auth))
	api.Get("/health", handleHealth())

	// Protected routes
	api.Get("/logout", handleLogout(app.Auth))
	api.Get("/profile", handleProfile(app.Tasks))
	api.Get("/tasks", handleListTasks(app.Tasks))
	api.Post("/tasks", handleAddTask(app.Tasks))
	api.Patch("/tasks/:id", handleUpdateTask(app.Tasks))
	api.Delete("/tasks/:id", handleDeleteTask(app.Tasks))

	return nil
}
