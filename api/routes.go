package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/blog-interactions-backend/config"
)

// setupRoutes mounts the public routes and the /api tree. Only the blog
// creation routes allowed by strategy are mounted.
func setupRoutes(r chi.Router, handlers *routeHandlers, strategy config.BlogIDStrategy, acceptedOrigins []string) {
	r.Get("/", textHandler("Hello World"))

	r.Route("/api", func(r chi.Router) {
		r.Use(CORSCheckMiddleware(acceptedOrigins))
		r.Use(corsMiddleware(acceptedOrigins))

		r.HandleFunc("/ping", textHandler("pong"))

		r.Route("/blog", func(r chi.Router) {
			r.Get("/context", handlers.blogHandler.getContextByPath())
			if strategy.AllowsAuto() {
				r.Post("/bind_new", handlers.blogHandler.bindNew())
			}

			r.Route("/{id:[0-9]+}", func(r chi.Router) {
				r.Get("/context", handlers.blogHandler.getContext())
				if strategy.AllowsExplicit() {
					r.Post("/context", handlers.blogHandler.createContext())
				}
				r.Delete("/context", handlers.blogHandler.deleteContext())

				r.Post("/like", handlers.likeHandler.like())

				r.Post("/comments", handlers.commentHandler.createComment())
				r.Delete("/comments", handlers.commentHandler.deleteComment())

				r.Post("/onBuild/genAISummary", handlers.summaryHandler.generateSummary())
				r.Delete("/onBuild/genAISummary", handlers.summaryHandler.deleteSummary())
			})
		})
	})
}
