package api

import (
	"context"
	"net/http"
)

// ReferenceItem is one record of a reference table (event types, scales,
// locations, teachers, participant categories): an id and a display name.
type ReferenceItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ReferenceTables lists the reference table identifiers the backend serves
func ReferenceTables() []string {
	return []string{"event_types", "scales", "locations", "teachers", "participant_categories"}
}

func (c *Client) referenceList(ctx context.Context, path string) ([]ReferenceItem, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var rows []tuple
	if err := parseResponse(resp, &rows); err != nil {
		return nil, err
	}
	if err := decodeTuples(rows, 2, "reference"); err != nil {
		return nil, err
	}

	items := make([]ReferenceItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ReferenceItem{
			ID:   row.Int(0),
			Name: row.String(1),
		})
	}

	return items, nil
}

// EventTypes retrieves the event type reference table
func (c *Client) EventTypes(ctx context.Context) ([]ReferenceItem, error) {
	return c.referenceList(ctx, "/reference/event_types")
}

// Scales retrieves the scale reference table
func (c *Client) Scales(ctx context.Context) ([]ReferenceItem, error) {
	return c.referenceList(ctx, "/reference/scales")
}

// Locations retrieves the location reference table
func (c *Client) Locations(ctx context.Context) ([]ReferenceItem, error) {
	return c.referenceList(ctx, "/reference/locations")
}

// Teachers retrieves the teacher reference table
func (c *Client) Teachers(ctx context.Context) ([]ReferenceItem, error) {
	return c.referenceList(ctx, "/reference/teachers")
}

// ParticipantCategories retrieves the participant category reference table
func (c *Client) ParticipantCategories(ctx context.Context) ([]ReferenceItem, error) {
	return c.referenceList(ctx, "/reference/participant_categories")
}

// Reference retrieves a reference table by its identifier
func (c *Client) Reference(ctx context.Context, table string) ([]ReferenceItem, error) {
	return c.referenceList(ctx, "/reference/"+table)
}
