package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-interactions-backend/database"
	"github.com/rpupo63/blog-interactions-backend/errs"
	"github.com/rpupo63/blog-interactions-backend/models"
	"github.com/rpupo63/blog-interactions-backend/visitor"
)

const msgCommentNotFound = "comment not found"

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	blogRepo    *database.BlogRepo
	commentRepo *database.CommentRepo
	visitors    visitor.Resolver
}

func newCommentHandler(blogRepo *database.BlogRepo, commentRepo *database.CommentRepo, visitors visitor.Resolver) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		visitors:    visitors,
	}
}

// isVisitorFlag accepts "true" or any value whose leading integer is 1,
// so "1", "01", " +1" and "1abc" all select the visitor path.
func isVisitorFlag(v string) bool {
	if v == "true" {
		return true
	}
	n, ok := leadingInt(v)
	return ok && n == 1
}

// leadingInt parses the optionally signed decimal prefix of v after leading
// whitespace. ok is false when there is no digit.
func leadingInt(v string) (n int64, ok bool) {
	v = strings.TrimLeft(v, " \t\n\r")
	end := 0
	if end < len(v) && (v[end] == '+' || v[end] == '-') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(v[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// createComment posts a visitor comment, optionally as a reply
// @Summary Comment on a blog
// @Tags Comments
// @Produce json
// @Param id path int true "Blog ID"
// @Param to query int false "Parent comment ID"
// @Param value query string true "Comment text"
// @Param isVisitor query string true "1 or true"
// @Param CF-Connecting-IP header string true "Client IP"
// @Success 200 {object} Envelope "Commented, value holds the comment id"
// @Failure 404 {object} Envelope "blog not found"
// @Failure 501 {string} string "Not implemented"
// @Router /api/blog/{id}/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		req := CommentRequest{
			To:        query.Get("to"),
			Value:     query.Get("value"),
			IsVisitor: query.Get("isVisitor"),
		}

		blog, err := findBlog(r, h.blogRepo)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !isVisitorFlag(req.IsVisitor) {
			notImplemented := errs.NewNotImplementedError()
			h.responder.WriteText(w, notImplemented.StatusCode, notImplemented.Error())
			return
		}

		if err := validateRequest(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := visitorToken(r, h.visitors)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var parent *int64
		if req.To != "" {
			parentID, err := strconv.ParseInt(req.To, 10, 64)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("to", "must be an integer"))
				return
			}
			parentComment, err := h.commentRepo.FindByID(r.Context(), parentID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
				return
			}
			if parentComment == nil || parentComment.CommentPool != blog.ID {
				h.responder.WriteError(w, errs.NewInvalidFieldError("to", "parent comment not found in this blog"))
				return
			}
			parent = &parentID
		}

		comment := models.NewVisitorComment(blog.ID, parent, token, req.Value)
		if err := h.commentRepo.Add(r.Context(), comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		h.logger.Debug().Int64("blogID", blog.ID).Int64("commentID", comment.ID).Msg("comment created")
		h.responder.WriteOK(w, Envelope{Message: "Commented", Value: comment.ID})
	}
}

// deleteComment removes a visitor comment written from the caller's IP
// @Summary Delete a comment
// @Tags Comments
// @Produce json
// @Param id path int true "Blog ID"
// @Param id query int true "Comment ID"
// @Param CF-Connecting-IP header string true "Client IP"
// @Success 200 {object} Envelope "Deleted"
// @Failure 403 {object} Envelope "Not allowed to delete a comment from another user"
// @Failure 404 {object} Envelope "comment not found"
// @Router /api/blog/{id}/comments [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := blogIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		commentID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("id", "must be an integer"))
			return
		}

		comment, err := h.commentRepo.FindByID(r.Context(), commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
			return
		}
		if comment == nil || comment.CommentPool != blogID {
			h.responder.WriteError(w, errs.NewNotFoundError(msgCommentNotFound))
			return
		}

		token, err := visitorToken(r, h.visitors)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !comment.OwnedBy(token) {
			h.responder.WriteError(w, errs.NewForbiddenError("Not allowed to delete a comment from another user"))
			return
		}

		deleted, err := h.commentRepo.DeleteOwned(r.Context(), commentID, token)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError(msgCommentNotFound))
			return
		}

		h.responder.WriteOK(w, Envelope{Message: msgDeleted})
	}
}
