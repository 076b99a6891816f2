package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"linkpulse/pkg/util"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrInvalidJSON is returned when a payload is not a JSON object
	ErrInvalidJSON = errors.New("invalid json")
	// ErrInvalidSchema is returned when a payload does not match the ClickEvent schema
	ErrInvalidSchema = errors.New("invalid click event schema")
)

var validate = validator.New()

// ClickEvent is the message published for every redirect
type ClickEvent struct {
	LinkID    uuid.UUID `json:"link_id" validate:"required"`
	ShortCode string    `json:"short_code" validate:"required,max=20"`
	ClickedAt EventTime `json:"clicked_at"`
	Referrer  *string   `json:"referrer,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
	IPAddress *string   `json:"ip_address,omitempty" validate:"omitempty,ip"`
}

// Validate checks the event against the schema rules
func (e *ClickEvent) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return nil
}

// DecodeClickEvent decodes and validates a raw channel payload.
// Only broken JSON syntax is ErrInvalidJSON; well-formed non-objects fail the schema.
// A missing clicked_at is stamped with now.
func DecodeClickEvent(payload []byte, now time.Time) (*ClickEvent, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrInvalidSchema)
	}

	var event ClickEvent
	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	if event.ClickedAt.IsZero() {
		event.ClickedAt = EventTime{Time: now.UTC()}
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return &event, nil
}

// EventTime accepts RFC 3339 timestamps and zone-less ISO-8601 timestamps (read as UTC)
type EventTime struct {
	time.Time
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON implements json.Unmarshaler. An explicit null is rejected;
// only an absent clicked_at gets the receive time.
func (t *EventTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return errors.New("clicked_at must not be null")
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("clicked_at must be a string: %w", err)
	}
	s = strings.TrimSpace(s)

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed.UTC()
		return nil
	}

	for _, layout := range zonelessLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("clicked_at %q is not an ISO-8601 timestamp", s)
}

// MarshalJSON implements json.Marshaler
func (t EventTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// ClickRecord is a persisted click enriched with geo data
type ClickRecord struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	LinkID    uuid.UUID `json:"link_id" gorm:"type:char(36);not null;index:ix_clicks_link_id_clicked_at,priority:1"`
	ShortCode string    `json:"short_code" gorm:"type:varchar(20);not null"`
	ClickedAt time.Time `json:"clicked_at" gorm:"not null;index:ix_clicks_link_id_clicked_at,priority:2;index"`
	Referrer  *string   `json:"referrer" gorm:"type:text"`
	UserAgent *string   `json:"user_agent" gorm:"type:text"`
	IPAddress *string   `json:"ip_address" gorm:"type:varchar(45)"`
	Country   string    `json:"country" gorm:"type:varchar(2);not null;default:''"`
	City      string    `json:"city" gorm:"type:varchar(255);not null;default:''"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for ClickRecord
func (ClickRecord) TableName() string {
	return "clicks"
}

// NewClickRecord builds the persisted form of an event. Empty optional fields are stored as NULL.
func NewClickRecord(event *ClickEvent, loc Location) *ClickRecord {
	return &ClickRecord{
		LinkID:    event.LinkID,
		ShortCode: event.ShortCode,
		ClickedAt: event.ClickedAt.UTC(),
		Referrer:  util.StringPtr(util.StringValue(event.Referrer)),
		UserAgent: util.StringPtr(util.StringValue(event.UserAgent)),
		IPAddress: util.StringPtr(util.StringValue(event.IPAddress)),
		Country:   loc.Country,
		City:      loc.City,
	}
}

// IP returns the client IP or an empty string
func (e *ClickEvent) IP() string {
	if e.IPAddress == nil {
		return ""
	}
	return *e.IPAddress
}

// Location is the result of a geo lookup. Empty fields mean unknown.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// IsEmpty reports whether nothing was resolved
func (l Location) IsEmpty() bool {
	return l.Country == "" && l.City == ""
}
