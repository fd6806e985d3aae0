// Package events defines the discrete interaction events the chart core
// emits to its collaborators. The core never performs CRUD itself; an
// AlertRequested event is turned into an alert-creation request by the
// surrounding dashboard.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/quantfold/optionchart/internal/modules/viewport"
)

// EventType identifies the kind of interaction event
type EventType string

const (
	// AlertRequested is emitted when the user picks a context-menu action
	// at a data price.
	AlertRequested EventType = "alert_requested"
	// ViewChanged is emitted after a pan/zoom gesture completes.
	ViewChanged EventType = "view_changed"
	// TimeOffsetChanged is emitted when the what-if time slider moves.
	TimeOffsetChanged EventType = "time_offset_changed"
)

// AlertDirection is the trigger condition selected in the context menu.
type AlertDirection string

const (
	AlertPriceAbove AlertDirection = "price_above"
	AlertPriceBelow AlertDirection = "price_below"
	AlertPriceTouch AlertDirection = "price_touch"
)

// EventData is the interface all event payloads implement, allowing
// type-safe payloads behind a single emit path.
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// AlertRequestedData contains data for AlertRequested events. ID lets the
// CRUD layer correlate the resulting alert with this interaction.
type AlertRequestedData struct {
	ID        string         `json:"id"`
	Direction AlertDirection `json:"direction"`
	Price     float64        `json:"price"`
}

// EventType returns the event type for AlertRequestedData
func (d *AlertRequestedData) EventType() EventType {
	return AlertRequested
}

// NewAlertRequested builds an AlertRequestedData with a fresh identifier.
func NewAlertRequested(direction AlertDirection, price float64) *AlertRequestedData {
	return &AlertRequestedData{
		ID:        uuid.NewString(),
		Direction: direction,
		Price:     price,
	}
}

// ViewChangedData contains data for ViewChanged events
type ViewChangedData struct {
	View viewport.ViewState `json:"view"`
}

// EventType returns the event type for ViewChangedData
func (d *ViewChangedData) EventType() EventType {
	return ViewChanged
}

// TimeOffsetChangedData contains data for TimeOffsetChanged events
type TimeOffsetChangedData struct {
	Hours          float64 `json:"hours"`
	SliderPosition float64 `json:"slider_position"`
}

// EventType returns the event type for TimeOffsetChangedData
func (d *TimeOffsetChangedData) EventType() EventType {
	return TimeOffsetChanged
}

// Handler consumes emitted events. The dashboard registers one per surface.
type Handler func(event Event)

// Event wraps a typed payload with its envelope
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      EventData `json:"data"`
}

// New builds an envelope around a payload with the current timestamp.
func New(data EventData) Event {
	return Event{
		Type:      data.EventType(),
		Timestamp: time.Now(),
		Data:      data,
	}
}

// MarshalJSON customizes JSON serialization for Event
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	aux := struct {
		Data json.RawMessage `json:"data"`
		Alias
	}{
		Alias: Alias(e),
	}
	if e.Data != nil {
		dataBytes, err := json.Marshal(e.Data)
		if err != nil {
			return nil, err
		}
		aux.Data = dataBytes
	}
	return json.Marshal(aux)
}

// UnmarshalJSON customizes JSON deserialization for Event
func (e *Event) UnmarshalJSON(data []byte) error {
	type Alias Event
	aux := struct {
		Data json.RawMessage `json:"data"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Data) == 0 {
		return nil
	}

	var payload EventData
	switch aux.Type {
	case AlertRequested:
		payload = &AlertRequestedData{}
	case ViewChanged:
		payload = &ViewChangedData{}
	case TimeOffsetChanged:
		payload = &TimeOffsetChangedData{}
	default:
		return nil
	}
	if err := json.Unmarshal(aux.Data, payload); err != nil {
		return err
	}
	e.Data = payload
	return nil
}
