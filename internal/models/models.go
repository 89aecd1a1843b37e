package models

// Aquarium is a tracked tank, the parent entity for measurements. CreatedAt
// is a calendar date stored as YYYY-MM-DD text on every engine.
type Aquarium struct {
	ID        int64   `db:"id"`
	Name      string  `db:"name"`
	CreatedAt string  `db:"created_at"`
	ImagePath *string `db:"image_path"`
}

// Measurement is one water test for an aquarium. Date is the day the water
// was tested (YYYY-MM-DD text); CreatedAt is the RFC3339 insertion timestamp
// and is independent of Date. Absent readings are nil, never zero.
type Measurement struct {
	ID         int64    `db:"id"`
	AquariumID int64    `db:"aquarium_id"`
	Date       string   `db:"date"`
	Nitrate    *float64 `db:"nitrate"`
	Phosphate  *float64 `db:"phosphate"`
	KH         *float64 `db:"kh"`
	Magnesium  *int64   `db:"magnesium"`
	Calcium    *int64   `db:"calcium"`
	CreatedAt  string   `db:"created_at"`
}
