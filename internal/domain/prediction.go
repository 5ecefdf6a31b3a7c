package domain

import "time"

// Prediction kinds. The value is stored verbatim in the history table.
const (
	KindNutrition  = "nutrition"
	KindFertilizer = "fertilizer"
)

// PredictionRecord is one immutable entry of a user's prediction history.
// Records are append-only: never updated, never deleted. Insertion order is
// the primary-key order.
type PredictionRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(50);index;not null"` // references User.Username, not enforced as a hard key
	Kind      string    `gorm:"size:20;not null"`                // KindNutrition or KindFertilizer
	InputData string    `gorm:"type:text"`                       // submitted form fields, JSON-serialized
	Result    string    `gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
