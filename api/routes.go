package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPortfolioRoutes mounts the REST API. Reads and contact form
// submissions are public; everything else goes through authMiddleware.
func setupPortfolioRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, limiter rateLimitMiddleware) {
	r.Get("/health", handlers.healthHandler.health())

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.limit)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.getAllProjects())
			r.With(auth.authenticate).Post("/", handlers.projectHandler.createProject())
			r.With(auth.authenticate).Put("/{id}", handlers.projectHandler.updateProject())
			r.With(auth.authenticate).Delete("/{id}", handlers.projectHandler.deleteProject())
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", handlers.skillHandler.getAllSkills())
			r.With(auth.authenticate).Post("/", handlers.skillHandler.createSkill())
			r.With(auth.authenticate).Put("/{id}", handlers.skillHandler.updateSkill())
			r.With(auth.authenticate).Delete("/{id}", handlers.skillHandler.deleteSkill())
		})

		r.Route("/experiences", func(r chi.Router) {
			r.Get("/", handlers.experienceHandler.getAllExperiences())
			r.With(auth.authenticate).Post("/", handlers.experienceHandler.createExperience())
			r.With(auth.authenticate).Put("/{id}", handlers.experienceHandler.updateExperience())
			r.With(auth.authenticate).Delete("/{id}", handlers.experienceHandler.deleteExperience())
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", handlers.messageHandler.createMessage())

			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.Get("/", handlers.messageHandler.getAllMessages())
				r.Get("/{id}", handlers.messageHandler.getMessage())
				r.Patch("/{id}/status", handlers.messageHandler.updateMessageStatus())
				r.Delete("/{id}", handlers.messageHandler.deleteMessage())
			})
		})

		r.Route("/chat", func(r chi.Router) {
			r.Post("/", handlers.chatHandler.chat())
			r.Get("/history", handlers.chatHandler.chatHistory())
		})
	})
}
