package models

import (
	"time"

	"gorm.io/datatypes"
)

// Comment is a threaded comment attached to a blog (its comment pool).
type Comment struct {
	ID          int64                       `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentPool int64                       `json:"commentPool" gorm:"column:comment_pool;not null;index"`
	Parent      *int64                      `json:"parent" gorm:"index"`
	User        *string                     `json:"user" gorm:"column:user_email;type:text"`
	IsVisitor   bool                        `json:"isVisitor" gorm:"not null"`
	VisitorIP   *string                     `json:"visitorIp" gorm:"column:visitor_ip;type:text"`
	Value       string                      `json:"value" gorm:"type:text;not null"`
	CreatedAt   time.Time                   `json:"createdAt" gorm:"not null;autoCreateTime"`
	Likes       datatypes.JSONSlice[string] `json:"likes" gorm:"not null;default:'[]'"`
}

// NewVisitorComment builds an anonymous comment owned by an encoded visitor token.
func NewVisitorComment(blogID int64, parent *int64, visitorToken, value string) *Comment {
	return &Comment{
		CommentPool: blogID,
		Parent:      parent,
		IsVisitor:   true,
		VisitorIP:   &visitorToken,
		Value:       value,
		Likes:       datatypes.JSONSlice[string]{},
	}
}

// OwnedBy reports whether the comment was written by the given visitor token.
func (c *Comment) OwnedBy(visitorToken string) bool {
	return c.IsVisitor && c.VisitorIP != nil && *c.VisitorIP == visitorToken
}
