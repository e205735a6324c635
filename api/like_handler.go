package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-interactions-backend/database"
	"github.com/rpupo63/blog-interactions-backend/errs"
	"github.com/rpupo63/blog-interactions-backend/visitor"
)

type likeHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogRepo  *database.BlogRepo
	likeRepo  *database.LikeRepo
	visitors  visitor.Resolver
}

func newLikeHandler(blogRepo *database.BlogRepo, likeRepo *database.LikeRepo, visitors visitor.Resolver) likeHandler {
	logger := log.With().Str("handlerName", "likeHandler").Logger()

	return likeHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogRepo:  blogRepo,
		likeRepo:  likeRepo,
		visitors:  visitors,
	}
}

// visitorToken resolves the caller's encoded IP.
func visitorToken(r *http.Request, visitors visitor.Resolver) (string, error) {
	token, err := visitors.Token(r)
	if err != nil {
		return "", errs.NewMissingRequiredFieldError(visitors.Header)
	}
	return token, nil
}

// like adds the caller to the blog's like set
// @Summary Like a blog
// @Tags Likes
// @Produce json
// @Param id path int true "Blog ID"
// @Param CF-Connecting-IP header string true "Client IP"
// @Success 200 {object} Envelope "Liked, new_likes holds the new total"
// @Failure 404 {object} Envelope "blog not found"
// @Failure 409 {object} Envelope "Already liked"
// @Router /api/blog/{id}/like [post]
func (h likeHandler) like() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := visitorToken(r, h.visitors)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := findBlog(r, h.blogRepo)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		added, err := h.likeRepo.Add(r.Context(), blog.ID, token)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "like", err))
			return
		}
		if !added {
			h.responder.WriteError(w, errs.NewConflictError("Already liked"))
			return
		}

		count, err := h.likeRepo.Count(r.Context(), blog.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "likes", err))
			return
		}

		h.responder.WriteOK(w, Envelope{Message: "Liked", NewLikes: count})
	}
}
