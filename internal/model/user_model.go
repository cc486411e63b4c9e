package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(20);not null"`
	Bio          string     `gorm:"type:text"`
	AvatarURL    string     `gorm:"type:varchar(500)"`
	JobTitle     string     `gorm:"type:varchar(100)"`
	Location     string     `gorm:"type:varchar(100)"`
	Website      string     `gorm:"type:varchar(255)"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
