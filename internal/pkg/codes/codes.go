// Package codes mints the human-readable entity codes (QR001, B001, P001).
// Counters live in the sequences table and are bumped inside the caller's
// transaction, so two concurrent creations can never share a suffix.
package codes

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
)

// Sequence names.
const (
	Quotation = "quotation_request"
	Bid       = "bid"
	Project   = "project"
	Payment   = "payment"
	Warranty  = "warranty"
)

var prefixes = map[string]string{
	Quotation: "QR",
	Bid:       "B",
	Project:   "P",
	Payment:   "PAY",
	Warranty:  "W",
}

// Next increments the named counter and returns the formatted code. Must be
// called inside tx; the row is locked on stores that support FOR UPDATE.
func Next(tx *gorm.DB, name string) (string, error) {
	prefix, ok := prefixes[name]
	if !ok {
		return "", fmt.Errorf("unknown sequence %q", name)
	}

	var seq models.Sequence
	err := database.LockForUpdate(tx).Where("name = ?", name).First(&seq).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		seq = models.Sequence{Name: name, Value: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	default:
		seq.Value++
		if err := tx.Save(&seq).Error; err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%s%03d", prefix, seq.Value), nil
}
