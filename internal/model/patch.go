package model

// CreateEntityInput holds the fields accepted when creating an entity.
// IsActive and Priority are pointers because their absent-defaults
// (true, medium) differ from the Go zero value.
type CreateEntityInput struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Quantity    int               `json:"quantity"`
	Price       float64           `json:"price"`
	IsActive    *bool             `json:"isActive"`
	Priority    *Priority         `json:"priority"`
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

// EntityPatch is a partial update. A nil field means "leave unchanged";
// a present field replaces the stored value wholesale, including tags
// and metadata (no merge).
type EntityPatch struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Quantity    *int               `json:"quantity"`
	Price       *float64           `json:"price"`
	IsActive    *bool              `json:"isActive"`
	Priority    *Priority          `json:"priority"`
	Tags        *[]string          `json:"tags"`
	Metadata    *map[string]string `json:"metadata"`
	Rating      *float64           `json:"rating"`
	Counter     *int64             `json:"counter"`
	Website     *string            `json:"website"`
	BirthDate   *DateOnly          `json:"birthDate"`
	AlarmTime   *TimeOnly          `json:"alarmTime"`
	RefID       *string            `json:"refId"`
	Email       *string            `json:"email"`
	PhoneNumber *string            `json:"phoneNumber"`
}
