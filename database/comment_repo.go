package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/blog-interactions-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByID returns a comment by id, or nil when it does not exist.
func (r *CommentRepo) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByBlog returns every comment of a blog ordered by id.
func (r *CommentRepo) FindByBlog(ctx context.Context, blogID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Where("comment_pool = ?", blogID).Order("id").Find(&comments).Error
	return comments, err
}

// Add inserts a comment and sets its generated id.
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// DeleteOwned deletes the comment only when it belongs to the visitor token.
// It reports whether a row was removed.
func (r *CommentRepo) DeleteOwned(ctx context.Context, id int64, visitorToken string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND is_visitor = ? AND visitor_ip = ?", id, true, visitorToken).
		Delete(&models.Comment{})
	return res.RowsAffected > 0, res.Error
}
