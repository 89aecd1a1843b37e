package services

import (
	"database/sql"
	"errors"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"

	"reeflog/internal/models"
)

// ImageUpload is a photo received with a create or update form.
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

// CreateAquarium inserts a new aquarium and returns its id. The name must be
// non-empty after trimming and unique; createdAt is an optional YYYY-MM-DD
// form value defaulting to today. A supplied photo is persisted through the
// image store before the insert.
func CreateAquarium(db *sqlx.DB, uploadDir, name, createdAt string, image *ImageUpload) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrValidation("The aquarium name is required.")
	}
	date, err := ParseDate(createdAt, today())
	if err != nil {
		return 0, err
	}
	var imagePath *string
	if image != nil {
		stored, err := SaveImage(uploadDir, image.Filename, image.Body)
		if err != nil {
			return 0, err
		}
		imagePath = &stored
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, ErrStore(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.Get(&id, `
INSERT INTO aquariums (name, created_at, image_path)
VALUES ($1, $2, $3)
RETURNING id
`, name, date, imagePath)
	if err != nil {
		return 0, mapConstraintError(err, "An aquarium with that name already exists.", "Aquarium not found.")
	}
	if err := tx.Commit(); err != nil {
		return 0, ErrStore(err, "commit")
	}
	return id, nil
}

// UpdateAquarium replaces the mutable fields of an existing aquarium. An
// empty name or date leaves the stored value unchanged; a new photo replaces
// the stored reference without deleting the old file.
func UpdateAquarium(db *sqlx.DB, uploadDir string, id int64, name, createdAt string, image *ImageUpload) error {
	name = strings.TrimSpace(name)

	tx, err := db.Beginx()
	if err != nil {
		return ErrStore(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	var current models.Aquarium
	if err := tx.Get(&current, `SELECT id, name, created_at, image_path FROM aquariums WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound("Aquarium not found.")
		}
		return ErrStore(err, "load aquarium")
	}

	if name == "" {
		name = current.Name
	}
	date, err := ParseDate(createdAt, current.CreatedAt)
	if err != nil {
		return err
	}
	imagePath := current.ImagePath
	if image != nil {
		stored, err := SaveImage(uploadDir, image.Filename, image.Body)
		if err != nil {
			return err
		}
		imagePath = &stored
	}

	_, err = tx.Exec(`
UPDATE aquariums
SET name = $2, created_at = $3, image_path = $4
WHERE id = $1
`, id, name, date, imagePath)
	if err != nil {
		return mapConstraintError(err, "An aquarium with that name already exists.", "Aquarium not found.")
	}
	if err := tx.Commit(); err != nil {
		return ErrStore(err, "commit")
	}
	return nil
}

// ListAquariums returns every aquarium sorted by name.
func ListAquariums(db *sqlx.DB) ([]models.Aquarium, error) {
	aquariums := []models.Aquarium{}
	err := db.Select(&aquariums, `SELECT id, name, created_at, image_path FROM aquariums ORDER BY name ASC`)
	if err != nil {
		return nil, ErrStore(err, "list aquariums")
	}
	return aquariums, nil
}

func GetAquarium(db *sqlx.DB, id int64) (models.Aquarium, error) {
	var aquarium models.Aquarium
	err := db.Get(&aquarium, `SELECT id, name, created_at, image_path FROM aquariums WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Aquarium{}, ErrNotFound("Aquarium not found.")
	}
	if err != nil {
		return models.Aquarium{}, ErrStore(err, "get aquarium")
	}
	return aquarium, nil
}

// DeleteAquarium removes an aquarium and all of its measurements in one
// transaction, children first. It is not routed over HTTP yet.
func DeleteAquarium(db *sqlx.DB, id int64) error {
	tx, err := db.Beginx()
	if err != nil {
		return ErrStore(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM measurements WHERE aquarium_id = $1`, id); err != nil {
		return ErrStore(err, "delete measurements")
	}
	result, err := tx.Exec(`DELETE FROM aquariums WHERE id = $1`, id)
	if err != nil {
		return ErrStore(err, "delete aquarium")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return ErrStore(err, "delete aquarium")
	}
	if affected == 0 {
		return ErrNotFound("Aquarium not found.")
	}
	if err := tx.Commit(); err != nil {
		return ErrStore(err, "commit")
	}
	return nil
}
