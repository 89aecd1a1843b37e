package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"reeflog/internal/models"
)

// MeasurementForm carries the raw form values of one water test. Numeric
// fields accept comma or period decimal separators; empty fields are stored
// as absent.
type MeasurementForm struct {
	AquariumID string
	Date       string
	Nitrate    string
	Phosphate  string
	KH         string
	Magnesium  string
	Calcium    string
}

// CreateMeasurement validates and inserts one water test, returning the new
// measurement id and its aquarium id.
func CreateMeasurement(db *sqlx.DB, form MeasurementForm) (int64, int64, error) {
	aquariumID, err := strconv.ParseInt(strings.TrimSpace(form.AquariumID), 10, 64)
	if err != nil || aquariumID <= 0 {
		return 0, 0, ErrValidation("Select an aquarium.")
	}
	date, err := ParseDate(form.Date, today())
	if err != nil {
		return 0, 0, err
	}
	nitrate, err := ParseDecimal(form.Nitrate)
	if err != nil {
		return 0, 0, err
	}
	phosphate, err := ParseDecimal(form.Phosphate)
	if err != nil {
		return 0, 0, err
	}
	kh, err := ParseDecimal(form.KH)
	if err != nil {
		return 0, 0, err
	}
	magnesium, err := ParseInteger(form.Magnesium)
	if err != nil {
		return 0, 0, err
	}
	calcium, err := ParseInteger(form.Calcium)
	if err != nil {
		return 0, 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, 0, ErrStore(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM aquariums WHERE id = $1)`, aquariumID); err != nil {
		return 0, 0, ErrStore(err, "check aquarium")
	}
	if !exists {
		return 0, 0, ErrNotFound("Aquarium not found.")
	}

	var id int64
	err = tx.Get(&id, `
INSERT INTO measurements (aquarium_id, date, nitrate, phosphate, kh, magnesium, calcium, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`, aquariumID, date, nitrate, phosphate, kh, magnesium, calcium, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, 0, mapConstraintError(err, "Duplicate measurement.", "Aquarium not found.")
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, ErrStore(err, "commit")
	}
	return id, aquariumID, nil
}

// ListMeasurements returns the aquarium's water tests ordered by date
// ascending, id breaking ties. A row whose date text does not parse falls
// back to the date of its insertion timestamp; a row with no usable date at
// all is omitted rather than failing the listing.
func ListMeasurements(db *sqlx.DB, aquariumID int64) ([]models.Measurement, error) {
	rows := []models.Measurement{}
	err := db.Select(&rows, `
SELECT id, aquarium_id, date, nitrate, phosphate, kh, magnesium, calcium, created_at
FROM measurements
WHERE aquarium_id = $1
ORDER BY date ASC, id ASC
`, aquariumID)
	if err != nil {
		return nil, ErrStore(err, "list measurements")
	}

	measurements := make([]models.Measurement, 0, len(rows))
	for _, row := range rows {
		date, ok := usableDate(row)
		if !ok {
			continue
		}
		row.Date = date
		measurements = append(measurements, row)
	}
	// The fallback may move a row relative to the stored order.
	sort.SliceStable(measurements, func(i, j int) bool {
		if measurements[i].Date != measurements[j].Date {
			return measurements[i].Date < measurements[j].Date
		}
		return measurements[i].ID < measurements[j].ID
	})
	return measurements, nil
}

func usableDate(row models.Measurement) (string, bool) {
	if parsed, err := time.Parse(DateLayout, row.Date); err == nil {
		return parsed.Format(DateLayout), true
	}
	if parsed, err := time.Parse(time.RFC3339, row.CreatedAt); err == nil {
		return parsed.UTC().Format(DateLayout), true
	}
	return "", false
}
