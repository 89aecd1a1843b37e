package services

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAquariumRoundTrip(t *testing.T) {
	database := newTestDB(t)

	id, err := CreateAquarium(database, t.TempDir(), "  Reef One  ", "2024-03-01", nil)
	require.NoError(t, err)
	require.NotZero(t, id)

	aquarium, err := GetAquarium(database, id)
	require.NoError(t, err)
	assert.Equal(t, "Reef One", aquarium.Name)
	assert.Equal(t, "2024-03-01", aquarium.CreatedAt)
	assert.Nil(t, aquarium.ImagePath)
}

func TestCreateAquariumDefaultsDate(t *testing.T) {
	database := newTestDB(t)

	id, err := CreateAquarium(database, t.TempDir(), "Nano", "", nil)
	require.NoError(t, err)

	aquarium, err := GetAquarium(database, id)
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format(DateLayout), aquarium.CreatedAt)
}

func TestCreateAquariumValidation(t *testing.T) {
	database := newTestDB(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := CreateAquarium(database, t.TempDir(), name, "2024-03-01", nil)
		assert.True(t, IsValidation(err), "name %q", name)
	}
	_, err := CreateAquarium(database, t.TempDir(), "Reef", "03/01/2024", nil)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, countRows(t, database, "aquariums"))
}

func TestCreateAquariumDuplicateName(t *testing.T) {
	database := newTestDB(t)

	_, err := CreateAquarium(database, t.TempDir(), "Reef", "", nil)
	require.NoError(t, err)

	_, err = CreateAquarium(database, t.TempDir(), "Reef", "", nil)
	assert.True(t, IsConflict(err))
	assert.Equal(t, 1, countRows(t, database, "aquariums"))
}

func TestCreateAquariumConcurrentSameName(t *testing.T) {
	database := newTestDB(t)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = CreateAquarium(database, t.TempDir(), "Racer", "", nil)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	conflicted := 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case IsConflict(err):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Equal(t, 1, countRows(t, database, "aquariums"))
}

func TestUpdateAquarium(t *testing.T) {
	database := newTestDB(t)

	id, err := CreateAquarium(database, t.TempDir(), "Reef", "2024-03-01", nil)
	require.NoError(t, err)

	require.NoError(t, UpdateAquarium(database, t.TempDir(), id, "Display Tank", "2024-04-01", nil))
	aquarium, err := GetAquarium(database, id)
	require.NoError(t, err)
	assert.Equal(t, "Display Tank", aquarium.Name)
	assert.Equal(t, "2024-04-01", aquarium.CreatedAt)
}

func TestUpdateAquariumEmptyFieldsKeepValues(t *testing.T) {
	database := newTestDB(t)

	id, err := CreateAquarium(database, t.TempDir(), "Reef", "2024-03-01", nil)
	require.NoError(t, err)

	require.NoError(t, UpdateAquarium(database, t.TempDir(), id, "   ", "", nil))
	aquarium, err := GetAquarium(database, id)
	require.NoError(t, err)
	assert.Equal(t, "Reef", aquarium.Name)
	assert.Equal(t, "2024-03-01", aquarium.CreatedAt)
}

func TestUpdateAquariumNameCollision(t *testing.T) {
	database := newTestDB(t)

	_, err := CreateAquarium(database, t.TempDir(), "Reef", "", nil)
	require.NoError(t, err)
	id, err := CreateAquarium(database, t.TempDir(), "Nano", "", nil)
	require.NoError(t, err)

	err = UpdateAquarium(database, t.TempDir(), id, "Reef", "", nil)
	assert.True(t, IsConflict(err))
}

func TestUpdateAquariumNotFound(t *testing.T) {
	database := newTestDB(t)

	err := UpdateAquarium(database, t.TempDir(), 4242, "Reef", "", nil)
	assert.True(t, IsNotFound(err))
}

func TestListAquariumsSortedByName(t *testing.T) {
	database := newTestDB(t)

	for _, name := range []string{"Zebra", "Alpha", "Mid"} {
		_, err := CreateAquarium(database, t.TempDir(), name, "", nil)
		require.NoError(t, err)
	}
	aquariums, err := ListAquariums(database)
	require.NoError(t, err)
	names := make([]string, 0, len(aquariums))
	for _, aquarium := range aquariums {
		names = append(names, aquarium.Name)
	}
	assert.Equal(t, []string{"Alpha", "Mid", "Zebra"}, names)
}

func TestStoreFailuresCarryStoreStatus(t *testing.T) {
	database := newTestDB(t)
	require.NoError(t, database.Close())

	_, err := ListAquariums(database)
	assert.True(t, IsStore(err))

	_, err = CreateAquarium(database, t.TempDir(), "Reef", "", nil)
	assert.True(t, IsStore(err))
	assert.NotContains(t, userMessage(err), "closed",
		"driver detail stays out of the user-facing message")
}

func userMessage(err error) string {
	var serviceErr ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	return ""
}

func TestCreateAquariumWithImage(t *testing.T) {
	database := newTestDB(t)
	uploadDir := t.TempDir()

	image := &ImageUpload{Filename: "tank front.jpg", Body: strings.NewReader("jpeg-bytes")}
	id, err := CreateAquarium(database, uploadDir, "Reef", "", image)
	require.NoError(t, err)

	aquarium, err := GetAquarium(database, id)
	require.NoError(t, err)
	require.NotNil(t, aquarium.ImagePath)
	assert.True(t, strings.HasSuffix(*aquarium.ImagePath, "_tank_front.jpg"))

	path, err := ImagePath(uploadDir, *aquarium.ImagePath)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestDeleteAquariumRemovesMeasurements(t *testing.T) {
	database := newTestDB(t)

	id, err := CreateAquarium(database, t.TempDir(), "Reef", "", nil)
	require.NoError(t, err)
	_, _, err = CreateMeasurement(database, MeasurementForm{AquariumID: itoa(id), Nitrate: "5"})
	require.NoError(t, err)
	require.Equal(t, 1, countRows(t, database, "measurements"))

	require.NoError(t, DeleteAquarium(database, id))
	assert.Equal(t, 0, countRows(t, database, "aquariums"))
	assert.Equal(t, 0, countRows(t, database, "measurements"))

	assert.True(t, IsNotFound(DeleteAquarium(database, id)))
}
