package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority is the closed set of entity priority levels.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the recognized priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority parses a priority level, case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

const (
	dateOnlyLayout = "2006-01-02"
	timeOnlyLayout = "15:04:05"
)

// DateOnly is a calendar date with no time-of-day component.
// It serializes as "2006-01-02".
type DateOnly time.Time

// ParseDateOnly parses a "2006-01-02" string.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOnly(t), nil
}

func (d DateOnly) String() string {
	return time.Time(d).Format(dateOnlyLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid date value: %s", data)
	}
	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOnly is a time of day with no date component.
// It serializes as "15:04:05".
type TimeOnly time.Time

// ParseTimeOnly parses a "15:04:05" string.
func ParseTimeOnly(s string) (TimeOnly, error) {
	t, err := time.Parse(timeOnlyLayout, s)
	if err != nil {
		return TimeOnly{}, fmt.Errorf("invalid time %q: expected HH:MM:SS", s)
	}
	return TimeOnly(t), nil
}

func (t TimeOnly) String() string {
	return time.Time(t).Format(timeOnlyLayout)
}

func (t TimeOnly) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *TimeOnly) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid time value: %s", data)
	}
	parsed, err := ParseTimeOnly(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Entity is the stored record. Avatar never leaves the repository;
// all external consumers see EntityView instead.
type Entity struct {
	ID          string
	Name        string
	Description string
	Quantity    int
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	IsActive    bool
	Priority    Priority
	Tags        []string
	Metadata    map[string]string
	Rating      float64
	Counter     int64
	Website     *string
	BirthDate   *DateOnly
	AlarmTime   *TimeOnly
	RefID       *string
	Email       *string
	PhoneNumber *string
	Avatar      []byte
}

// EntityView is the read-only projection of Entity used for all
// external presentation. It omits the avatar blob and is otherwise
// 1:1 with the stored attributes.
type EntityView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Quantity    int               `json:"quantity"`
	Price       float64           `json:"price"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   *time.Time        `json:"updatedAt"`
	IsActive    bool              `json:"isActive"`
	Priority    Priority          `json:"priority"`
	Tags        []string          `json:"tags"`
	Metadata    map[string]string `json:"metadata"`
	Rating      float64           `json:"rating"`
	Counter     int64             `json:"counter"`
	Website     *string           `json:"website"`
	BirthDate   *DateOnly         `json:"birthDate"`
	AlarmTime   *TimeOnly         `json:"alarmTime"`
	RefID       *string           `json:"refId"`
	Email       *string           `json:"email"`
	PhoneNumber *string           `json:"phoneNumber"`
}

// View returns the external projection of the entity. Tags and metadata
// are copied so callers cannot mutate the stored collections.
func (e *Entity) View() EntityView {
	tags := make([]string, len(e.Tags))
	copy(tags, e.Tags)

	metadata := make(map[string]string, len(e.Metadata))
	for k, v := range e.Metadata {
		metadata[k] = v
	}

	return EntityView{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Quantity:    e.Quantity,
		Price:       e.Price,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		IsActive:    e.IsActive,
		Priority:    e.Priority,
		Tags:        tags,
		Metadata:    metadata,
		Rating:      e.Rating,
		Counter:     e.Counter,
		Website:     e.Website,
		BirthDate:   e.BirthDate,
		AlarmTime:   e.AlarmTime,
		RefID:       e.RefID,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
	}
}
