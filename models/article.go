package models

import "time"

// TimestampLayout renders stored timestamps. Values are kept in UTC at millisecond precision
// so the rendered text survives a round trip through the database.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Millisecond).Format(TimestampLayout)
}

// Article is a published piece owned by its author.
type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:1024;not null" json:"description"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	AuthorID    string    `gorm:"size:36;not null;index" json:"author_id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
