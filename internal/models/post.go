package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	Published bool      `gorm:"not null" json:"published"` // Defaults to true in the request, not the column
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Votes is filled from the votes table on read; it is not a column.
	Votes int64 `gorm:"-" json:"votes"`
}

// OwnerID reports the user allowed to modify the post.
func (p Post) OwnerID() uint {
	return p.AuthorID
}
