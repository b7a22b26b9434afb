package api

import (
	"github.com/go-chi/chi/v5"
)

func setupHealthRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/healthz", handlers.healthHandler.liveness())
	r.Get("/readyz", handlers.healthHandler.readiness())
}

// setupAPIRoutes mounts the content API. Reads are public except the /all
// listings; every write requires credentials.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.protectWrites)

		// Project Handler endpoints
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.listProjects())
			r.With(auth.requireKey).Get("/all", handlers.projectHandler.listAllProjects())
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/{id}", handlers.projectHandler.getProject())
			r.Put("/{id}", handlers.projectHandler.updateProject())
			r.Delete("/{id}", handlers.projectHandler.deleteProject())
		})

		// Skill Handler endpoints
		r.Route("/skills", func(r chi.Router) {
			r.Get("/", handlers.skillHandler.listSkills())
			r.With(auth.requireKey).Get("/all", handlers.skillHandler.listAllSkills())
			r.Get("/category/{category}", handlers.skillHandler.listSkillsByCategory())
			r.Post("/", handlers.skillHandler.createSkill())
			r.Get("/{id}", handlers.skillHandler.getSkill())
			r.Put("/{id}", handlers.skillHandler.updateSkill())
			r.Delete("/{id}", handlers.skillHandler.deleteSkill())
		})

		// Experience Handler endpoints
		r.Route("/experiences", func(r chi.Router) {
			r.Get("/", handlers.experienceHandler.listExperiences())
			r.With(auth.requireKey).Get("/all", handlers.experienceHandler.listAllExperiences())
			r.Get("/current", handlers.experienceHandler.getCurrentExperience())
			r.Post("/", handlers.experienceHandler.createExperience())
			r.Get("/{id}", handlers.experienceHandler.getExperience())
			r.Put("/{id}", handlers.experienceHandler.updateExperience())
			r.Delete("/{id}", handlers.experienceHandler.deleteExperience())
		})

		r.Get("/profile", handlers.profileHandler.getProfile())
		r.Put("/profile", handlers.profileHandler.upsertProfile())

		r.Get("/portfolio", handlers.portfolioHandler.getPortfolio())

		r.Get("/resume/{lang}", handlers.resumeHandler.downloadResume())
		r.Post("/resume/{lang}", handlers.resumeHandler.uploadResume())
	})
}
