package services

import (
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func newAquarium(t *testing.T, database *sqlx.DB, name string) int64 {
	t.Helper()
	id, err := CreateAquarium(database, t.TempDir(), name, "", nil)
	require.NoError(t, err)
	return id
}

func TestCreateMeasurementCommaDecimal(t *testing.T) {
	database := newTestDB(t)
	aquariumID := newAquarium(t, database, "Reef")

	_, gotAquarium, err := CreateMeasurement(database, MeasurementForm{
		AquariumID: itoa(aquariumID),
		Date:       "2024-05-10",
		Nitrate:    "12,5",
		KH:         "8.1",
		Magnesium:  " 1300 ",
	})
	require.NoError(t, err)
	assert.Equal(t, aquariumID, gotAquarium)

	measurements, err := ListMeasurements(database, aquariumID)
	require.NoError(t, err)
	require.Len(t, measurements, 1)
	m := measurements[0]
	require.NotNil(t, m.Nitrate)
	assert.Equal(t, 12.5, *m.Nitrate)
	require.NotNil(t, m.KH)
	assert.Equal(t, 8.1, *m.KH)
	require.NotNil(t, m.Magnesium)
	assert.Equal(t, int64(1300), *m.Magnesium)
}

func TestCreateMeasurementEmptyFieldsAreAbsent(t *testing.T) {
	database := newTestDB(t)
	aquariumID := newAquarium(t, database, "Reef")

	_, _, err := CreateMeasurement(database, MeasurementForm{
		AquariumID: itoa(aquariumID),
		Nitrate:    "",
		Phosphate:  "  ",
	})
	require.NoError(t, err)

	measurements, err := ListMeasurements(database, aquariumID)
	require.NoError(t, err)
	require.Len(t, measurements, 1)
	assert.Nil(t, measurements[0].Nitrate)
	assert.Nil(t, measurements[0].Phosphate)
	assert.Nil(t, measurements[0].Calcium)
}

func TestCreateMeasurementValidation(t *testing.T) {
	database := newTestDB(t)
	aquariumID := newAquarium(t, database, "Reef")

	cases := []MeasurementForm{
		{AquariumID: ""},
		{AquariumID: "abc"},
		{AquariumID: "0"},
		{AquariumID: itoa(aquariumID), Nitrate: "not-a-number"},
		{AquariumID: itoa(aquariumID), Magnesium: "12.5"},
		{AquariumID: itoa(aquariumID), Date: "10-05-2024"},
	}
	for _, form := range cases {
		_, _, err := CreateMeasurement(database, form)
		assert.True(t, IsValidation(err), "form %+v", form)
	}
	assert.Equal(t, 0, countRows(t, database, "measurements"))
}

func TestCreateMeasurementUnknownAquarium(t *testing.T) {
	database := newTestDB(t)

	_, _, err := CreateMeasurement(database, MeasurementForm{AquariumID: "99"})
	assert.True(t, IsNotFound(err))
}

func TestListMeasurementsEmpty(t *testing.T) {
	database := newTestDB(t)
	aquariumID := newAquarium(t, database, "Reef")

	measurements, err := ListMeasurements(database, aquariumID)
	require.NoError(t, err)
	assert.Empty(t, measurements)
}

func TestListMeasurementsOrderedByDate(t *testing.T) {
	database := newTestDB(t)
	aquariumID := newAquarium(t, database, "Reef")

	for _, date := range []string{"2024-05-10", "2024-01-02", "2024-03-15", "2024-01-02"} {
		_, _, err := CreateMeasurement(database, MeasurementForm{AquariumID: itoa(aquariumID), Date: date})
		require.NoError(t, err)
	}

	measurements, err := ListMeasurements(database, aquariumID)
	require.NoError(t, err)
	require.Len(t, measurements, 4)
	for i := 1; i < len(measurements); i++ {
		assert.LessOrEqual(t, measurements[i-1].Date, measurements[i].Date)
		if measurements[i-1].Date == measurements[i].Date {
			assert.Less(t, measurements[i-1].ID, measurements[i].ID)
		}
	}
}

func TestListMeasurementsMalformedDateFallsBack(t *testing.T) {
	database := newTestDB(t)
	aquariumID := newAquarium(t, database, "Reef")

	id, _, err := CreateMeasurement(database, MeasurementForm{AquariumID: itoa(aquariumID), Date: "2024-05-10"})
	require.NoError(t, err)

	_, err = database.Exec(`UPDATE measurements SET date = 'garbage', created_at = '2024-02-01T10:30:00Z' WHERE id = $1`, id)
	require.NoError(t, err)

	measurements, err := ListMeasurements(database, aquariumID)
	require.NoError(t, err)
	require.Len(t, measurements, 1)
	assert.Equal(t, "2024-02-01", measurements[0].Date)
}

func TestListMeasurementsOmitsUnusableDates(t *testing.T) {
	database := newTestDB(t)
	aquariumID := newAquarium(t, database, "Reef")

	keepID, _, err := CreateMeasurement(database, MeasurementForm{AquariumID: itoa(aquariumID), Date: "2024-05-10"})
	require.NoError(t, err)
	dropID, _, err := CreateMeasurement(database, MeasurementForm{AquariumID: itoa(aquariumID), Date: "2024-05-11"})
	require.NoError(t, err)

	_, err = database.Exec(`UPDATE measurements SET date = 'garbage', created_at = 'also-garbage' WHERE id = $1`, dropID)
	require.NoError(t, err)

	measurements, err := ListMeasurements(database, aquariumID)
	require.NoError(t, err)
	require.Len(t, measurements, 1)
	assert.Equal(t, keepID, measurements[0].ID)
}

func TestParseDecimal(t *testing.T) {
	value, err := ParseDecimal(" 0,25 ")
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, 0.25, *value)

	value, err = ParseDecimal("")
	require.NoError(t, err)
	assert.Nil(t, value)

	_, err = ParseDecimal("1,2,3")
	assert.True(t, IsValidation(err))
}
