package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/blog-interactions-backend/errs"
	"github.com/rpupo63/blog-interactions-backend/models"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// withLikes preloads the like set so AfterFind can render Blog.Likes.
func (r *BlogRepo) withLikes(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("LikeTokens", orderByID)
}

func firstOrNil(err error, blog *models.Blog) (*models.Blog, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// FindByID returns a blog by id, or nil when it does not exist.
func (r *BlogRepo) FindByID(ctx context.Context, id int64) (*models.Blog, error) {
	var blog models.Blog
	err := r.withLikes(ctx).First(&blog, id).Error
	return firstOrNil(err, &blog)
}

// FindByPostLink returns a blog by its link, or nil when it does not exist.
func (r *BlogRepo) FindByPostLink(ctx context.Context, postLink string) (*models.Blog, error) {
	var blog models.Blog
	err := r.withLikes(ctx).Where("post_link = ?", postLink).First(&blog).Error
	return firstOrNil(err, &blog)
}

// FindWithComments returns a blog and all of its comments, or nil when it does not exist.
func (r *BlogRepo) FindWithComments(ctx context.Context, id int64) (*models.Blog, error) {
	var blog models.Blog
	err := r.withLikes(ctx).Preload("Comments", orderByID).First(&blog, id).Error
	return firstOrNil(err, &blog)
}

// Add inserts a new blog. A zero ID lets the database assign one.
func (r *BlogRepo) Add(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Omit("LikeTokens", "Comments").Create(blog).Error
}

// Delete removes a blog together with its likes and comments.
func (r *BlogRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_pool = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Blog{}, id).Error
	})
	if err != nil {
		return errs.NewTransactionFailedError("delete blog", err)
	}
	return nil
}

// SetSummaryOnce stores summary only if the blog has none yet. It reports
// whether the row was updated.
func (r *BlogRepo) SetSummaryOnce(ctx context.Context, id int64, summary string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ? AND ai_summary IS NULL", id).
		Update("ai_summary", summary)
	return res.RowsAffected > 0, res.Error
}

// ClearSummary resets the AI summary to null.
func (r *BlogRepo) ClearSummary(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ?", id).
		Update("ai_summary", nil).Error
}
