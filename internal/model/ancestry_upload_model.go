package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AncestryUpload struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index:idx_ancestry_user_session"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index:idx_ancestry_user_session"`
	TestProvider  string         `gorm:"type:varchar(50);not null"`
	Confidence    float64        `gorm:"type:double precision;not null"`
	ParsedData    datatypes.JSON `gorm:"type:jsonb;not null"`
	Warnings      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index"`
}

func (AncestryUpload) TableName() string {
	return "ancestry_uploads"
}
