package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estimation status values
const (
	EstimationStatusSubmitted = "submitted"
	EstimationStatusPartial   = "partial"
)

// Estimation is a locally recorded submission: one row per estimation
// pushed through the billing backend, kept for counter-side history.
type Estimation struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TranNo      string         `gorm:"size:50;not null;index" json:"tranno"`
	EstBatchNo  string         `gorm:"size:50;index" json:"est_batch_no"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Username    string         `gorm:"size:255" json:"username"`
	ItemCount   int            `json:"item_count"`
	GrossAmount float64        `json:"gross_amount"`
	GSTAmount   float64        `json:"gst_amount"`
	GrandTotal  float64        `json:"grand_total"`
	Status      string         `gorm:"size:20;default:'submitted'" json:"status"`
	Warnings    string         `gorm:"type:text" json:"warnings,omitempty"` // newline-separated step warnings
	PrintedAt   *time.Time     `json:"printed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new estimation
func (e *Estimation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Estimation model
func (Estimation) TableName() string {
	return "estimations"
}
