package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Event represents one event row, joined against its reference tables.
type Event struct {
	ID                  int
	Title               string
	Description         string
	EventType           string
	Scale               string
	StartDate           string
	EndDate             string
	Location            string
	Status              string
	ResponsibleTeacher  string
	EstimatedBudget     float64
	ParticipantCategory string
	Notes               string
}

// eventColumns is the positional width of an event row as served by the
// backend's join query.
const eventColumns = 13

func eventFromTuple(row tuple) Event {
	return Event{
		ID:                  row.Int(0),
		Title:               row.String(1),
		Description:         row.String(2),
		EventType:           row.String(3),
		Scale:               row.String(4),
		StartDate:           row.String(5),
		EndDate:             row.String(6),
		Location:            row.String(7),
		Status:              row.String(8),
		ResponsibleTeacher:  row.String(9),
		EstimatedBudget:     row.Float(10),
		ParticipantCategory: row.String(11),
		Notes:               row.String(12),
	}
}

// CreateEventRequest represents a new event.
// Reference fields carry ids from the matching reference tables; optional
// fields marshal as null when absent, matching what the backend expects.
type CreateEventRequest struct {
	Title                 string  `json:"title"`
	Description           *string `json:"description"`
	EventTypeID           int     `json:"event_type_id"`
	ScaleID               int     `json:"scale_id"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	LocationID            int     `json:"location_id"`
	Status                string  `json:"status"`
	ResponsibleTeacherID  int     `json:"responsible_teacher_id"`
	EstimatedBudget       *int    `json:"estimated_budget"`
	ParticipantCategoryID int     `json:"participant_category_id"`
	Notes                 *string `json:"notes"`
}

// EventStatuses lists the status values the backend accepts
func EventStatuses() []string {
	return []string{"planned", "in progress", "completed", "canceled"}
}

// CreateEvent adds a new event.
// Callers refetch the event list afterwards so views show server truth.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/event/add_event", req)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// ListEvents retrieves all events
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/event/", nil)
	if err != nil {
		return nil, err
	}

	var rows []tuple
	if err := parseResponse(resp, &rows); err != nil {
		return nil, err
	}
	if err := decodeTuples(rows, eventColumns, "event"); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, eventFromTuple(row))
	}

	return events, nil
}

// GetEvent retrieves a single event by id
func (c *Client) GetEvent(ctx context.Context, id int) (*Event, error) {
	path := fmt.Sprintf("/event/%d", id)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var row tuple
	if err := parseResponse(resp, &row); err != nil {
		return nil, err
	}
	if len(row) < eventColumns {
		return nil, fmt.Errorf("event row has %d columns, expected %d", len(row), eventColumns)
	}

	event := eventFromTuple(row)
	return &event, nil
}

// SearchEventsByName retrieves events matching a title.
// A 404 comes back as a NotFound error, which views render as an
// empty-result message rather than a hard failure.
func (c *Client) SearchEventsByName(ctx context.Context, name string) ([]Event, error) {
	path := "/event/name/" + url.PathEscape(name)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var rows []tuple
	if err := parseResponse(resp, &rows); err != nil {
		return nil, err
	}
	if err := decodeTuples(rows, eventColumns, "event"); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, eventFromTuple(row))
	}

	return events, nil
}
