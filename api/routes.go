package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes sets up the read routes and the auth routes
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.health())

	// Auth Handler endpoints
	r.Post("/auth/signup", handlers.authHandler.signup())
	r.Post("/auth/signin", handlers.authHandler.signin())

	r.Get("/profile", handlers.profileHandler.getProfile())
	r.Get("/projects", handlers.projectHandler.getAllProjects())

	// Skill Handler endpoints
	r.Get("/skills", handlers.skillHandler.getAllSkills())
	r.Get("/skills/top", handlers.skillHandler.getTopSkills())

	r.Get("/search", handlers.searchHandler.search())
}

// setupAuthenticatedRoutes sets up every mutating route behind the bearer token check
func setupAuthenticatedRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Post("/profile", handlers.profileHandler.upsertProfile())

		// Project Handler endpoints
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Post("/projects/from-github", handlers.projectHandler.createProjectFromGithub())
	})
}
