package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fittrack/fittrack-api/internal/api"
	"github.com/fittrack/fittrack-api/internal/api/middleware"
	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// ErrorLog runs after Trace and Locale so its entries carry the trace ID
	// and its 500 is localized.
	r.Use(chimiddleware.RequestID)
	if app.config.Server.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.TraceMiddleware(app.logger))
	r.Use(middleware.Locale(app.bundle))
	r.Use(middleware.ErrorLog(app.errorLog))
	r.Use(app.metrics.InstrumentHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, shared.T(r.Context(), "error.routeNotFound"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, shared.T(r.Context(), "error.methodNotAllowed"))
	})

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	programHandler := api.NewProgramHandler(app.programService, app.exerciseService, app.logger)
	exerciseHandler := api.NewExerciseHandler(app.exerciseService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	profileHandler := api.NewProfileHandler(app.userService, app.completionService, app.logger)

	authMiddleware := middleware.NewAuthMiddleware(app.jwtService, app.stores.users)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Use(app.rateLimiter.Handler)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/programs", func(r chi.Router) {
		r.Get("/", programHandler.ListPrograms)
		r.Get("/{id}", programHandler.GetProgram)
		r.Get("/{id}/exercises", programHandler.ListProgramExercises)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate, adminOnly)
			r.Post("/", programHandler.CreateProgram)
			r.Patch("/{id}", programHandler.UpdateProgram)
			r.Delete("/{id}", programHandler.DeleteProgram)
		})
	})

	r.Route("/exercises", func(r chi.Router) {
		r.Get("/", exerciseHandler.ListExercises)
		r.Get("/{id}", exerciseHandler.GetExercise)
		r.Get("/{id}/programs", exerciseHandler.ListExercisePrograms)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate, adminOnly)
			r.Post("/", exerciseHandler.CreateExercise)
			r.Patch("/{id}", exerciseHandler.UpdateExercise)
			r.Delete("/{id}", exerciseHandler.DeleteExercise)
			r.Post("/assign-to-program", exerciseHandler.AssignToProgram)
			r.Post("/remove-from-program", exerciseHandler.RemoveFromProgram)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/", userHandler.ListUsers)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/{id}", userHandler.GetUser)
			r.Patch("/{id}", userHandler.UpdateUser)
			r.Delete("/{id}", userHandler.DeleteUser)
			r.Post("/{id}/restore", userHandler.RestoreUser)
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/", profileHandler.GetProfile)
		r.Post("/complete-exercise", profileHandler.CompleteExercise)
		r.Get("/completed-exercises", profileHandler.ListCompletions)
		r.Delete("/completed-exercises/{id}", profileHandler.DeleteCompletion)
	})

	return r
}
