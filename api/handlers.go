package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-interactions-backend/database"
	"github.com/rpupo63/blog-interactions-backend/services"
	"github.com/rpupo63/blog-interactions-backend/visitor"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, visitors visitor.Resolver, summarizer services.Summarizer) *routeHandlers {
	return &routeHandlers{
		blogHandler:    newBlogHandler(database.BlogRepo()),
		likeHandler:    newLikeHandler(database.BlogRepo(), database.LikeRepo(), visitors),
		commentHandler: newCommentHandler(database.BlogRepo(), database.CommentRepo(), visitors),
		summaryHandler: newSummaryHandler(database.BlogRepo(), summarizer),
	}
}

func textHandler(text string) http.HandlerFunc {
	responder := NewResponder(log.Logger)
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteText(w, http.StatusOK, text)
	}
}
