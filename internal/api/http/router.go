package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/smartcity/internal/api/http/handlers"
	"github.com/spec-kit/smartcity/internal/auth"
	"github.com/spec-kit/smartcity/internal/domain"
)

// UserRoutes bundles the user-service handlers.
type UserRoutes struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterUserRoutes wires the user-service HTTP surface.
func RegisterUserRoutes(app *fiber.App, cfg UserRoutes) {
	registerProbes(app, cfg.Health)

	api := app.Group("/api/user")
	api.Post("/register", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/logout", cfg.Users.Logout)
	protected.Get("/get/:id", auth.RequireAuthenticated(), cfg.Users.Get)
	protected.Get("/get-all", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	protected.Get("/citizens", auth.RequireRole(domain.RoleAdmin), cfg.Users.ListCitizens)
	protected.Put("/update/:id", auth.RequireAuthenticated(), cfg.Users.Update)
	protected.Delete("/delete/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Delete)
}

// WorkerRoutes bundles the worker-service handlers.
type WorkerRoutes struct {
	Health         *handlers.HealthHandler
	Workers        *handlers.WorkersHandler
	Assignments    *handlers.AssignmentsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterWorkerRoutes wires the worker-service HTTP surface. Profile create
// and delete are reserved for the user service (internal token) and admins,
// since they are legs of the registration and deletion sagas.
func RegisterWorkerRoutes(app *fiber.App, cfg WorkerRoutes) {
	registerProbes(app, cfg.Health)

	workers := app.Group("/api/worker", cfg.AuthMiddleware.Handle)
	workers.Post("/create", auth.RequireRole(domain.RoleAdmin), cfg.Workers.Create)
	workers.Get("/get/:id", auth.RequireAuthenticated(), cfg.Workers.Get)
	workers.Get("/get-all", auth.RequireAuthenticated(), cfg.Workers.List)
	workers.Get("/available", auth.RequireAuthenticated(), cfg.Workers.ListAvailable)
	workers.Put("/update/:id", auth.RequireAuthenticated(), cfg.Workers.Update)
	workers.Delete("/delete/:id", auth.RequireRole(domain.RoleAdmin), cfg.Workers.Delete)
	workers.Get("/complaints/:id", auth.RequireRole(domain.RoleWorker, domain.RoleAdmin), cfg.Workers.MatchingComplaints)

	assignments := app.Group("/api/assignment", cfg.AuthMiddleware.Handle)
	assignments.Post("/assign", auth.RequireRole(domain.RoleAdmin), cfg.Assignments.Assign)
	assignments.Put("/update-status/:id", auth.RequireRole(domain.RoleWorker, domain.RoleAdmin), cfg.Assignments.UpdateStatus)
	assignments.Put("/penalty/:id", auth.RequireRole(domain.RoleAdmin), cfg.Assignments.Penalize)
	assignments.Get("/get/:id", auth.RequireAuthenticated(), cfg.Assignments.Get)
	assignments.Get("/get-all", auth.RequireAuthenticated(), cfg.Assignments.List)
	assignments.Get("/worker/:workerId", auth.RequireAuthenticated(), cfg.Assignments.ListByWorker)
	assignments.Delete("/delete/:id", auth.RequireRole(domain.RoleAdmin), cfg.Assignments.Delete)
}

// ComplaintRoutes bundles the complaint-service handlers.
type ComplaintRoutes struct {
	Health         *handlers.HealthHandler
	Complaints     *handlers.ComplaintsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterComplaintRoutes wires the complaint-service HTTP surface. The
// status push endpoint accepts the worker service (internal token) or admins.
func RegisterComplaintRoutes(app *fiber.App, cfg ComplaintRoutes) {
	registerProbes(app, cfg.Health)

	api := app.Group("/api/complaint", cfg.AuthMiddleware.Handle)
	api.Post("/create", auth.RequireRole(domain.RoleCitizen), cfg.Complaints.Create)
	api.Get("/get/:id", auth.RequireAuthenticated(), cfg.Complaints.Get)
	api.Get("/get-all", auth.RequireAuthenticated(), cfg.Complaints.List)
	api.Get("/user/:userId", auth.RequireAuthenticated(), cfg.Complaints.ListByUser)
	api.Put("/update/:id", auth.RequireRole(domain.RoleCitizen, domain.RoleAdmin), cfg.Complaints.Update)
	api.Put("/update-status/:id", auth.RequireRole(domain.RoleAdmin), cfg.Complaints.UpdateStatus)
	api.Delete("/delete/:id", auth.RequireRole(domain.RoleAdmin), cfg.Complaints.Delete)
}

func registerProbes(app *fiber.App, health *handlers.HealthHandler) {
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)
	app.Get("/metrics", health.Metrics)
}
