package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-interactions-backend/database"
	"github.com/rpupo63/blog-interactions-backend/errs"
	"github.com/rpupo63/blog-interactions-backend/models"
)

const (
	msgBlogNotFound      = "blog not found"
	msgBlogAlreadyExists = "blog already exists"
	msgDeleted           = "Deleted"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogRepo  *database.BlogRepo
}

func newBlogHandler(blogRepo *database.BlogRepo) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogRepo:  blogRepo,
	}
}

// blogIDParam reads the numeric {id} path parameter.
func blogIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errs.NewInvalidFieldError("id", "must be an integer")
	}
	return id, nil
}

// findBlog loads a blog or returns a not-found error.
func findBlog(r *http.Request, repo *database.BlogRepo) (*models.Blog, error) {
	id, err := blogIDParam(r)
	if err != nil {
		return nil, err
	}
	blog, err := repo.FindByID(r.Context(), id)
	if err != nil {
		return nil, wrapDatabaseError("find", "blog", err)
	}
	if blog == nil {
		return nil, errs.NewNotFoundError(msgBlogNotFound)
	}
	return blog, nil
}

// getContextByPath looks a blog up by its post link
// @Summary Find blog by link
// @Tags Blogs
// @Produce json
// @Param path query string true "Post link"
// @Success 200 {object} BlogLookupResponse
// @Failure 404 {object} BlogLookupResponse "exist=false"
// @Router /api/blog/context [get]
func (h blogHandler) getContextByPath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := h.blogRepo.FindByPostLink(r.Context(), r.URL.Query().Get("path"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteJSON(w, http.StatusNotFound, BlogLookupResponse{Exist: false, Message: msgBlogNotFound})
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, BlogLookupResponse{Exist: true, Blog: blog})
	}
}

// getContext returns a blog with all of its comments
// @Summary Get blog context
// @Tags Blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} BlogWithComments
// @Failure 404 {object} Envelope "blog not found"
// @Router /api/blog/{id}/context [get]
func (h blogHandler) getContext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := blogIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.FindWithComments(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(msgBlogNotFound))
			return
		}

		comments := blog.Comments
		if comments == nil {
			comments = []models.Comment{}
		}
		h.responder.WriteJSON(w, http.StatusOK, BlogWithComments{Blog: blog, Comments: comments})
	}
}

// bindNew creates a blog with a database assigned id
// @Summary Create blog (auto id)
// @Tags Blogs
// @Produce json
// @Param title query string false "Title"
// @Param post_link query string true "Post link"
// @Success 200 {object} Envelope "value holds the created row"
// @Failure 409 {object} Envelope "blog already exists"
// @Router /api/blog/bind_new [post]
func (h blogHandler) bindNew() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := createRequestFromQuery(r, CreateBlogRequest{})
		if err := validateRequest(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog := &models.Blog{Title: req.Title, PostLink: req.PostLink}
		if err := h.create(r, blog); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteOK(w, Envelope{Value: []*models.Blog{blog}})
	}
}

// createContext creates a blog under an explicit id
// @Summary Create blog (explicit id)
// @Description title and post_link are read from the JSON body, then from the query string.
// @Description Without a link the blog is bound to /blog/{id}.
// @Tags Blogs
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Param request body CreateBlogRequest false "Blog fields"
// @Success 200 {object} Envelope "value holds the created row"
// @Failure 409 {object} Envelope "blog already exists"
// @Router /api/blog/{id}/context [post]
func (h blogHandler) createContext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := blogIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var body CreateBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("blog", err))
			return
		}
		req := createRequestFromQuery(r, body)
		if req.PostLink == "" {
			req.PostLink = fmt.Sprintf("/blog/%d", id)
		}
		if err := validateRequest(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.blogRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewConflictError(msgBlogAlreadyExists))
			return
		}

		blog := &models.Blog{ID: id, Title: req.Title, PostLink: req.PostLink}
		if err := h.create(r, blog); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteOK(w, Envelope{Value: []*models.Blog{blog}})
	}
}

// createRequestFromQuery fills the fields missing from req with query parameters.
func createRequestFromQuery(r *http.Request, req CreateBlogRequest) CreateBlogRequest {
	query := r.URL.Query()
	if req.Title == nil && query.Has("title") {
		title := query.Get("title")
		req.Title = &title
	}
	if req.PostLink == "" {
		req.PostLink = query.Get("post_link")
	}
	return req
}

// create inserts blog unless its link is taken. The unique index on post_link
// catches concurrent inserts that pass the lookup.
func (h blogHandler) create(r *http.Request, blog *models.Blog) error {
	existing, err := h.blogRepo.FindByPostLink(r.Context(), blog.PostLink)
	if err != nil {
		return wrapDatabaseError("find", "blog", err)
	}
	if existing != nil {
		return errs.NewConflictError(msgBlogAlreadyExists)
	}

	if err := h.blogRepo.Add(r.Context(), blog); err != nil {
		if errs.IsDuplicateKey(err) {
			return errs.NewConflictError(msgBlogAlreadyExists)
		}
		return wrapDatabaseError("create", "blog", err)
	}

	h.logger.Info().Int64("blogID", blog.ID).Str("postLink", blog.PostLink).Msg("blog created")
	return nil
}

// deleteContext removes a blog with its likes and comments
// @Summary Delete blog
// @Tags Blogs
// @Produce json
// @Param id path int true "Blog ID"
// @Success 200 {object} Envelope "Deleted"
// @Failure 404 {object} Envelope "blog not found"
// @Router /api/blog/{id}/context [delete]
func (h blogHandler) deleteContext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := findBlog(r, h.blogRepo)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogRepo.Delete(r.Context(), blog.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Int64("blogID", blog.ID).Msg("blog deleted")
		h.responder.WriteOK(w, Envelope{Message: msgDeleted})
	}
}
