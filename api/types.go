package api

import (
	"github.com/rpupo63/blog-interactions-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler    blogHandler
	likeHandler    likeHandler
	commentHandler commentHandler
	summaryHandler summaryHandler
}

// Envelope is the shape of every success and failure body.
// @Description Response envelope
type Envelope struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty" example:"blog not found"`
	Value    any    `json:"value,omitempty"`
	NewLikes int64  `json:"new_likes,omitempty" example:"3"`
}

// BlogLookupResponse answers a lookup by post link.
type BlogLookupResponse struct {
	Exist   bool         `json:"exist"`
	Message string       `json:"message,omitempty"`
	Blog    *models.Blog `json:"blog,omitempty"`
}

// BlogWithComments is a blog row with its comment pool inlined.
type BlogWithComments struct {
	*models.Blog
	Comments []models.Comment `json:"comments"`
}

// CreateBlogRequest is the body (or query) of a blog creation.
type CreateBlogRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=512"`
	PostLink string  `json:"post_link" validate:"required,max=2048"`
}

// CommentRequest is read from the query string of a comment creation.
type CommentRequest struct {
	To        string `json:"to" validate:"omitempty,number"`
	Value     string `json:"value" validate:"required"`
	IsVisitor string `json:"isVisitor"`
}

// SummaryRequest is the body of a summary generation.
type SummaryRequest struct {
	Content string `json:"content"`
}
