package models

import "time"

// BlogLike is one visitor token in a blog's like set.
type BlogLike struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BlogID    int64     `json:"blogId" gorm:"not null;uniqueIndex:idx_blog_like_unique"`
	Token     string    `json:"token" gorm:"type:text;not null;uniqueIndex:idx_blog_like_unique"`
	CreatedAt time.Time `json:"createdAt"`
}
