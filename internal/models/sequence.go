package models

// Sequence backs the human-readable entity codes (QR001, B001, P001, ...).
// Each named counter is incremented inside the transaction that consumes it,
// so concurrent inserts can never mint the same code.
type Sequence struct {
	Name  string `gorm:"column:name;primaryKey" json:"name"`
	Value int64  `gorm:"column:value;not null;default:0" json:"value"`
}

func (Sequence) TableName() string {
	return "sequences"
}
