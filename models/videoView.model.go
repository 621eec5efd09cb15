package models

import (
	"time"

	"gorm.io/gorm"
)

// VideoView marks that a student has watched a video at least once.
// At most one row exists per (user, video); unmarking removes the row
// outright, so row presence is the source of truth for "watched".
type VideoView struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_view_user_video;not null"`
	VideoID     uint      `json:"video_id" gorm:"uniqueIndex:idx_view_user_video;not null"`
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Video       Video     `json:"-" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}
