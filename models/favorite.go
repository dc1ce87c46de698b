package models

import "time"

// Favorite records that a user favorited an article. The pair is the primary key.
type Favorite struct {
	UserID    string    `gorm:"primaryKey;size:36" json:"user_id"`
	ArticleID uint      `gorm:"primaryKey;index" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Following is a directed edge: FollowerID receives FolloweeID's articles in their feed.
type Following struct {
	FollowerID string    `gorm:"primaryKey;size:36" json:"follower_id"`
	FolloweeID string    `gorm:"primaryKey;size:36;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
