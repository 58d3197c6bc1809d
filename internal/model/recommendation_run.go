package model

import (
	"time"

	"gorm.io/datatypes"
)

type RecommendationRun struct {
	ID         uint           `gorm:"primaryKey"`
	Trigger    string         `gorm:"type:varchar(20);not null"`
	NewsDate   time.Time      `gorm:"type:date;not null"`
	Budget     float64        `gorm:"type:numeric(18,2);not null"`
	TotalCost  float64        `gorm:"type:numeric(18,2);not null"`
	TrimSteps  int            `gorm:"not null"`
	Universe   datatypes.JSON `gorm:"type:jsonb"`
	Sells      datatypes.JSON `gorm:"type:jsonb"`
	Buys       datatypes.JSON `gorm:"type:jsonb"`
	StartedAt  time.Time      `gorm:"not null"`
	FinishedAt time.Time      `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (RecommendationRun) TableName() string {
	return "recommendation_runs"
}
