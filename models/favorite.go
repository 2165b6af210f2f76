package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TargetKind says which table FavoriteID points into.
type TargetKind string

const (
	TargetPost TargetKind = "post"
	TargetUser TargetKind = "user"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetUser
}

// Favorite is "UserID favorites the FavoriteType entity FavoriteID".
// FavoriteID has no foreign key; rows whose target was deleted are skipped on read.
type Favorite struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FavoriteType TargetKind `gorm:"type:varchar(20);not null;uniqueIndex:ux_favorites_target_user,priority:1" json:"favorite_type"`
	FavoriteID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_favorites_target_user,priority:2" json:"favorite_id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_favorites_target_user,priority:3;index" json:"user_id"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
