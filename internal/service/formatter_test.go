package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/DarkMK69/PTsTest/internal/model"
)

func sampleViews(t *testing.T) []model.EntityView {
	t.Helper()

	birthDate, err := model.ParseDateOnly("1990-05-20")
	require.NoError(t, err)
	alarmTime, err := model.ParseTimeOnly("07:30:00")
	require.NoError(t, err)
	website := "https://example.com"
	updated := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	return []model.EntityView{
		{
			ID:          "11111111-1111-1111-1111-111111111111",
			Name:        "First",
			Description: "seed record",
			Quantity:    3,
			Price:       19.99,
			CreatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			IsActive:    true,
			Priority:    model.PriorityMedium,
			Tags:        []string{"demo", "sample"},
			Metadata:    map[string]string{"env": "seed", "app": "test"},
			Rating:      4.5,
			Counter:     100,
			Website:     &website,
			BirthDate:   &birthDate,
			AlarmTime:   &alarmTime,
		},
		{
			ID:        "22222222-2222-2222-2222-222222222222",
			Name:      "Second",
			CreatedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
			UpdatedAt: &updated,
			Priority:  model.PriorityHigh,
			Tags:      []string{},
			Metadata:  map[string]string{},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("")
	assert.True(t, ok)
	assert.Equal(t, FormatJSON, f)

	f, ok = ParseFormat("CSV")
	assert.True(t, ok)
	assert.Equal(t, FormatCSV, f)

	f, ok = ParseFormat("  excel ")
	assert.True(t, ok)
	assert.Equal(t, FormatExcel, f)

	_, ok = ParseFormat("xml")
	assert.False(t, ok)
}

func TestFormatLookups(t *testing.T) {
	ext, err := FormatJSON.FileExtension()
	require.NoError(t, err)
	assert.Equal(t, ".json", ext)

	ext, err = FormatExcel.FileExtension()
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", ext)

	mime, err := FormatCSV.MimeType()
	require.NoError(t, err)
	assert.Equal(t, "text/csv", mime)

	mime, err = FormatExcel.MimeType()
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", mime)

	_, err = Format("xml").FileExtension()
	assert.Error(t, err)
	_, err = Format("xml").MimeType()
	assert.Error(t, err)
}

func TestFormatJSON_RoundTrips(t *testing.T) {
	views := sampleViews(t)

	payload, err := FormatEntities(views, FormatJSON)
	require.NoError(t, err)

	var decoded []model.EntityView
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, views, decoded)

	// camelCase field names, pretty-printed
	assert.Contains(t, string(payload), `"createdAt"`)
	assert.Contains(t, string(payload), "\n  ")
}

func TestFormatCSV_FlattensNestedFields(t *testing.T) {
	views := sampleViews(t)

	payload, err := FormatEntities(views, FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, exportHeader, records[0])

	first := records[1]
	assert.Equal(t, views[0].ID, first[0])
	assert.Equal(t, "First", first[1])
	assert.Equal(t, "3", first[3])
	assert.Equal(t, "19.99", first[4])
	assert.Equal(t, "2024-03-01T12:00:00Z", first[5])
	assert.Equal(t, "", first[6]) // no updatedAt
	assert.Equal(t, "true", first[7])
	assert.Equal(t, "demo|sample", first[9])
	assert.Equal(t, "app=test;env=seed", first[10]) // sorted keys
	assert.Equal(t, "1990-05-20", first[14])
	assert.Equal(t, "07:30:00", first[15])

	second := records[2]
	assert.Equal(t, "2024-03-02T10:00:00Z", second[6])
	assert.Equal(t, "", second[9])
	assert.Equal(t, "", second[13]) // no website
}

func TestFormatJSONAndCSVProduceDifferentBytes(t *testing.T) {
	views := sampleViews(t)

	jsonPayload, err := FormatEntities(views, FormatJSON)
	require.NoError(t, err)
	csvPayload, err := FormatEntities(views, FormatCSV)
	require.NoError(t, err)

	assert.NotEqual(t, jsonPayload, csvPayload)

	// both decode back to the same logical records
	var decoded []model.EntityView
	require.NoError(t, json.Unmarshal(jsonPayload, &decoded))
	records, err := csv.NewReader(bytes.NewReader(csvPayload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(decoded)+1)
	for i, v := range decoded {
		assert.Equal(t, v.ID, records[i+1][0])
		assert.Equal(t, v.Name, records[i+1][1])
	}
}

func TestFormatExcel_ProducesWorkbook(t *testing.T) {
	views := sampleViews(t)

	payload, err := FormatEntities(views, FormatExcel)
	require.NoError(t, err)

	// xlsx is a zip container
	require.True(t, bytes.HasPrefix(payload, []byte("PK")))

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(views)+1)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, views[0].ID, rows[1][0])
	assert.Equal(t, "Second", rows[2][1])
}

func TestFormatEntities_UnsupportedFormat(t *testing.T) {
	_, err := FormatEntities(sampleViews(t), Format("xml"))
	assert.Error(t, err)
}
