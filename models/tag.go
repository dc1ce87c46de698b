package models

import "time"

// Tag is a free-text label. Names are compared exactly as entered.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleTag links an article to a tag. The auto-increment id keeps link order.
type ArticleTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_article_tag" json:"article_id"`
	TagID     uint      `gorm:"not null;uniqueIndex:idx_article_tag;index" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
