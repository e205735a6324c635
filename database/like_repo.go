package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/blog-interactions-backend/models"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Add inserts token into the blog's like set if it is not there yet. It
// reports whether the token was added.
func (r *LikeRepo) Add(ctx context.Context, blogID int64, token string) (bool, error) {
	like := models.BlogLike{BlogID: blogID, Token: token}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blog_id"}, {Name: "token"}},
			DoNothing: true,
		}).
		Create(&like)
	return res.RowsAffected > 0, res.Error
}

// Count returns the size of the blog's like set, read from the primary so a
// like that was just added is always included.
func (r *LikeRepo) Count(ctx context.Context, blogID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.BlogLike{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

// Tokens returns the like set in insertion order.
func (r *LikeRepo) Tokens(ctx context.Context, blogID int64) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&models.BlogLike{}).
		Where("blog_id = ?", blogID).
		Order("id").
		Pluck("token", &tokens).Error
	return tokens, err
}
