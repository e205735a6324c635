package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-interactions-backend/database"
	"github.com/rpupo63/blog-interactions-backend/errs"
	"github.com/rpupo63/blog-interactions-backend/services"
)

const msgSummaryExists = "there already exists a summary"

type summaryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	blogRepo   *database.BlogRepo
	summarizer services.Summarizer
}

func newSummaryHandler(blogRepo *database.BlogRepo, summarizer services.Summarizer) summaryHandler {
	logger := log.With().Str("handlerName", "summaryHandler").Logger()

	return summaryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		blogRepo:   blogRepo,
		summarizer: summarizer,
	}
}

// generateSummary asks the model for a summary of the posted content and stores it once
// @Summary Generate AI summary
// @Tags Summaries
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Param request body SummaryRequest true "Post content"
// @Success 200 {object} Envelope "Summary generated, value holds the summary"
// @Failure 400 {object} Envelope "No content"
// @Failure 404 {object} Envelope "blog not found"
// @Failure 409 {object} Envelope "there already exists a summary"
// @Failure 502 {object} Envelope "model call failed"
// @Failure 503 {object} Envelope "model unavailable"
// @Router /api/blog/{id}/onBuild/genAISummary [post]
func (h summaryHandler) generateSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("summary", err))
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("No content"))
			return
		}

		blog, err := findBlog(r, h.blogRepo)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if blog.HasSummary() {
			h.responder.WriteError(w, errs.NewConflictError(msgSummaryExists))
			return
		}

		if h.summarizer == nil {
			h.responder.WriteError(w, errs.NewModelUnavailableError())
			return
		}

		summary, err := h.summarizer.Summarize(r.Context(), req.Content)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		stored, err := h.blogRepo.SetSummaryOnce(r.Context(), blog.ID, summary)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}
		if !stored {
			// either another request stored a summary first or the blog is gone
			current, err := h.blogRepo.FindByID(r.Context(), blog.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
				return
			}
			if current == nil {
				h.responder.WriteError(w, errs.NewNotFoundError(msgBlogNotFound))
				return
			}
			h.responder.WriteError(w, errs.NewConflictError(msgSummaryExists))
			return
		}

		h.logger.Info().Int64("blogID", blog.ID).Int("summaryLength", len(summary)).Msg("summary generated")
		h.responder.WriteOK(w, Envelope{Message: "Summary generated", Value: summary})
	}
}

// deleteSummary clears a blog's summary
// @Summary Delete AI summary
// @Tags Summaries
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} Envelope "Deleted"
// @Failure 404 {object} Envelope "blog not found"
// @Router /api/blog/{id}/onBuild/genAISummary [delete]
func (h summaryHandler) deleteSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := findBlog(r, h.blogRepo)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogRepo.ClearSummary(r.Context(), blog.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}
		h.responder.WriteOK(w, Envelope{Message: msgDeleted})
	}
}
