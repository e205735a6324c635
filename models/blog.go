package models

import (
	"strings"

	"gorm.io/gorm"
)

// Blog is a post known to the comment/like backend, keyed by its public link.
type Blog struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	Title     *string `json:"title" gorm:"type:text"`
	PostLink  string  `json:"postLink" gorm:"column:post_link;type:text;not null;uniqueIndex"`
	AISummary *string `json:"aiSummary" gorm:"column:ai_summary;type:text"`

	// Likes is the comma-joined token list derived from LikeTokens after a find.
	Likes      string     `json:"likes" gorm:"-"`
	LikeTokens []BlogLike `json:"-" gorm:"foreignKey:BlogID;references:ID;constraint:OnDelete:CASCADE"`
	Comments   []Comment  `json:"-" gorm:"foreignKey:CommentPool;references:ID"`
}

// AfterFind fills Likes from the preloaded like set.
func (b *Blog) AfterFind(tx *gorm.DB) error {
	tokens := make([]string, 0, len(b.LikeTokens))
	for _, like := range b.LikeTokens {
		tokens = append(tokens, like.Token)
	}
	b.Likes = strings.Join(tokens, ",")
	return nil
}

// HasSummary reports whether an AI summary has been stored.
func (b *Blog) HasSummary() bool {
	return b.AISummary != nil
}
