package model

import "time"

const CategoryAll = "all"

type BoardPost struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Category   string    `gorm:"type:varchar(50);not null;index" json:"category"`
	AuthorName string    `gorm:"type:varchar(100);not null" json:"author_name"`
	AuthorID   string    `gorm:"type:varchar(100);not null" json:"author_id"`
	IsUrgent   bool      `gorm:"not null;default:false" json:"is_urgent"`
	LikesCount int       `gorm:"not null;default:0" json:"likes_count"`
	ViewsCount int       `gorm:"not null;default:0" json:"views_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BoardPostSummary is a list row: the post plus its comment count.
type BoardPostSummary struct {
	BoardPost
	CommentsCount int64 `json:"comments_count"`
}

type BoardComment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	PostID     uint       `gorm:"not null;index" json:"post_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	AuthorName string     `gorm:"type:varchar(100);not null" json:"author_name"`
	AuthorID   string     `gorm:"type:varchar(100);not null" json:"author_id"`
	CreatedAt  time.Time  `json:"created_at"`
	Post       *BoardPost `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

type BoardLike struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PostID    uint       `gorm:"not null;uniqueIndex:idx_board_likes_post_user,priority:1" json:"post_id"`
	UserID    string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_board_likes_post_user,priority:2" json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	Post      *BoardPost `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
