package model

import "time"

type User struct {
	ID         string    `gorm:"type:varchar(100);primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Email      string    `gorm:"type:varchar(100);not null" json:"email"`
	PictureURL *string   `gorm:"type:text" json:"picture_url"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
