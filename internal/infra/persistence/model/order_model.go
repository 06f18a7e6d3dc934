package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderModel mirrors the 'orders' table. Besides the offer detail reference
// it carries a full copy of the tier's terms taken at creation time, so later
// offer edits never change what an existing order promises.
type OrderModel struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OfferDetailID      uuid.UUID                   `gorm:"type:uuid;not null"`
	CustomerProfileID  uuid.UUID                   `gorm:"type:uuid;index;not null"`
	BusinessProfileID  uuid.UUID                   `gorm:"type:uuid;index;not null"`
	Title              string                      `gorm:"type:varchar(255);not null"`
	Revisions          int                         `gorm:"not null"`
	DeliveryTimeInDays int                         `gorm:"not null"`
	Price              float64                     `gorm:"type:numeric(10,2);not null"`
	Features           datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	OfferType          string                      `gorm:"type:varchar(10);not null"`
	Status             string                      `gorm:"type:varchar(20);index;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
