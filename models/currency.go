package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Currency struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	Code   string    `gorm:"type:varchar(3);uniqueIndex;not null"` // ISO 4217
	Symbol string    `gorm:"type:varchar(8);not null"`
	Name   string    `gorm:"not null"`
}

func (c *Currency) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// SeedCurrencies inserts the built-in currency list if it is not present.
func SeedCurrencies(db *gorm.DB) error {
	defaults := []Currency{
		{Code: "USD", Symbol: "$", Name: "US Dollar"},
		{Code: "EUR", Symbol: "€", Name: "Euro"},
		{Code: "GBP", Symbol: "£", Name: "Pound Sterling"},
		{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
		{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham"},
	}

	for _, cur := range defaults {
		var existing Currency
		if err := db.Where("code = ?", cur.Code).First(&existing).Error; err == nil {
			continue
		}
		cur.ID = uuid.New()
		if err := db.Create(&cur).Error; err != nil {
			return err
		}
	}
	return nil
}
