package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-service/internal/api/http/handlers"
	"github.com/spec-kit/hospital-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Pages        *handlers.PagesHandler
	Auth         *handlers.AuthHandler
	Patients     *handlers.PatientsHandler
	Staff        *handlers.StaffHandler
	Appointments *handlers.AppointmentsHandler
	Departments  *handlers.DepartmentsHandler
	Admin        *handlers.AdminHandler
	Gate         *auth.Gate
}

// RegisterRoutes wires HTTP routes. The session gate runs before every route
// so page redirects and API rejections happen in one place.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/healthz", cfg.Health.Live)
	app.Get("/readyz", cfg.Health.Ready)

	app.Use(cfg.Gate.Handle)

	app.Get("/", cfg.Pages.Home)
	app.Get("/login", cfg.Pages.Login)
	app.Get("/register", cfg.Pages.Register)
	app.Get("/forgot-password", cfg.Pages.ForgotPassword)
	app.Get("/reset-password", cfg.Pages.ResetPassword)
	app.Get("/dashboard", cfg.Pages.Dashboard)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/profile", cfg.Auth.Profile)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	api.Get("/check-email", cfg.Auth.CheckEmail)

	patients := api.Group("/patients")
	patients.Post("/register", cfg.Patients.Register)
	patients.Get("/", cfg.Patients.List)
	patients.Get("/:id", cfg.Patients.Get)
	patients.Put("/:id", cfg.Patients.UpdateContact)
	patients.Get("/:id/medical-history", cfg.Patients.MedicalHistory)
	patients.Post("/:id/medical-history", cfg.Patients.AddMedicalRecord)
	patients.Get("/:id/insurance", cfg.Patients.Insurance)
	patients.Post("/:id/insurance", cfg.Patients.AddInsurance)
	patients.Post("/:id/insurance/charge", cfg.Patients.ChargeInsurance)
	patients.Get("/:id/appointments", cfg.Patients.Appointments)

	api.Post("/doctors/register", cfg.Staff.RegisterDoctor)
	api.Get("/doctors/manage", cfg.Staff.ListDoctors)
	api.Post("/nurses/register", cfg.Staff.RegisterNurse)

	api.Post("/appointments", cfg.Appointments.Book)
	api.Get("/appointments/manage", cfg.Appointments.List)
	api.Put("/appointments/manage/:id/status", cfg.Appointments.UpdateStatus)

	api.Get("/departments", cfg.Departments.List)
	api.Post("/admin/departments", cfg.Departments.Create)

	api.Get("/admin/users", cfg.Admin.ListUsers)
	api.Put("/users/manage/:id/active", cfg.Admin.SetUserActive)
}
