package codes

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/models"
)

func setupCodesTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Sequence{}))
	return db
}

func TestNext_SequentialCodes(t *testing.T) {
	db := setupCodesTest(t)

	first, err := Next(db, Quotation)
	require.NoError(t, err)
	assert.Equal(t, "QR001", first)

	second, err := Next(db, Quotation)
	require.NoError(t, err)
	assert.Equal(t, "QR002", second)

	third, err := Next(db, Quotation)
	require.NoError(t, err)
	assert.Equal(t, "QR003", third)
}

func TestNext_IndependentSequences(t *testing.T) {
	db := setupCodesTest(t)

	q, err := Next(db, Quotation)
	require.NoError(t, err)
	b, err := Next(db, Bid)
	require.NoError(t, err)
	p, err := Next(db, Project)
	require.NoError(t, err)

	assert.Equal(t, "QR001", q)
	assert.Equal(t, "B001", b)
	assert.Equal(t, "P001", p)
}

func TestNext_WidensPastThreeDigits(t *testing.T) {
	db := setupCodesTest(t)
	require.NoError(t, db.Create(&models.Sequence{Name: Bid, Value: 999}).Error)

	code, err := Next(db, Bid)
	require.NoError(t, err)
	assert.Equal(t, "B1000", code)
}

func TestNext_InsideTransaction(t *testing.T) {
	db := setupCodesTest(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := Next(tx, Payment); err != nil {
			return err
		}
		return assertNext(tx, Payment, "PAY002")
	})
	require.NoError(t, err)
}

func assertNext(tx *gorm.DB, name, want string) error {
	code, err := Next(tx, name)
	if err != nil {
		return err
	}
	if code != want {
		return assert.AnError
	}
	return nil
}
