package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/DarkMK69/PTsTest/internal/model"
)

// Format identifies an export output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// Formats lists the recognized format values.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatCSV), string(FormatExcel)}
}

// Valid reports whether f is a recognized format.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatExcel:
		return true
	}
	return false
}

// ParseFormat parses a format value, case-insensitively. An empty
// value defaults to JSON.
func ParseFormat(s string) (Format, bool) {
	if s == "" {
		return FormatJSON, true
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	return f, f.Valid()
}

// FileExtension returns the canonical file extension for the format.
func (f Format) FileExtension() (string, error) {
	switch f {
	case FormatJSON:
		return ".json", nil
	case FormatCSV:
		return ".csv", nil
	case FormatExcel:
		return ".xlsx", nil
	}
	return "", fmt.Errorf("unsupported format: %s", f)
}

// MimeType returns the canonical MIME type for the format.
func (f Format) MimeType() (string, error) {
	switch f {
	case FormatJSON:
		return "application/json", nil
	case FormatCSV:
		return "text/csv", nil
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	}
	return "", fmt.Errorf("unsupported format: %s", f)
}

// exportSheet is the worksheet name used for Excel exports.
const exportSheet = "Entities"

// exportHeader lists the serialized field names, in entity field order.
var exportHeader = []string{
	"id", "name", "description", "quantity", "price",
	"createdAt", "updatedAt", "isActive", "priority",
	"tags", "metadata", "rating", "counter",
	"website", "birthDate", "alarmTime", "refId", "email", "phoneNumber",
}

// FormatEntities serializes the view list into a byte payload for the
// requested format. It is pure: same input, same logical output, no
// side effects.
func FormatEntities(entities []model.EntityView, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return formatJSON(entities)
	case FormatCSV:
		return formatCSV(entities)
	case FormatExcel:
		return formatExcel(entities)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func formatJSON(entities []model.EntityView) ([]byte, error) {
	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json encoding failed: %w", err)
	}
	return data, nil
}

func formatCSV(entities []model.EntityView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("csv encoding failed: %w", err)
	}
	for _, e := range entities {
		if err := w.Write(entityRecord(e)); err != nil {
			return nil, fmt.Errorf("csv encoding failed: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}

func formatExcel(entities []model.EntityView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("xlsx encoding failed: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx encoding failed: %w", err)
	}

	for i, e := range entities {
		record := entityRecord(e)
		row := make([]interface{}, len(record))
		for j, cell := range record {
			row[j] = cell
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx encoding failed: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, start, &row); err != nil {
			return nil, fmt.Errorf("xlsx encoding failed: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}

// entityRecord renders one view as flat cells using invariant,
// locale-independent formatting. Tags are "|"-joined and metadata is
// rendered as ";"-joined k=v pairs with sorted keys.
func entityRecord(e model.EntityView) []string {
	updatedAt := ""
	if e.UpdatedAt != nil {
		updatedAt = e.UpdatedAt.UTC().Format(time.RFC3339)
	}

	pairs := make([]string, 0, len(e.Metadata))
	for k, v := range e.Metadata {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	return []string{
		e.ID,
		e.Name,
		e.Description,
		strconv.Itoa(e.Quantity),
		strconv.FormatFloat(e.Price, 'f', -1, 64),
		e.CreatedAt.UTC().Format(time.RFC3339),
		updatedAt,
		strconv.FormatBool(e.IsActive),
		string(e.Priority),
		strings.Join(e.Tags, "|"),
		strings.Join(pairs, ";"),
		strconv.FormatFloat(e.Rating, 'f', -1, 64),
		strconv.FormatInt(e.Counter, 10),
		deref(e.Website),
		dateCell(e.BirthDate),
		timeCell(e.AlarmTime),
		deref(e.RefID),
		deref(e.Email),
		deref(e.PhoneNumber),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateCell(d *model.DateOnly) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func timeCell(t *model.TimeOnly) string {
	if t == nil {
		return ""
	}
	return t.String()
}
