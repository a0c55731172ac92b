package api

import (
	"context"
	"fmt"
	"net/http"
)

// Stats represents the backend's database counters
type Stats struct {
	TableCount               int `json:"tableCount"`
	EventCount               int `json:"eventCount"`
	TeacherCount             int `json:"teacherCount"`
	LocationCount            int `json:"locationCount"`
	EventTypeCount           int `json:"eventTypeCount"`
	ScaleCount               int `json:"scaleCount"`
	ParticipantCategoryCount int `json:"participantCategoryCount"`
	UserCount                int `json:"userCount"`
}

// AdminTables lists the table identifiers the admin browser can open.
// The users table is admin-only; the rest are open to any authenticated
// role.
func AdminTables() []string {
	return []string{"users", "events", "event_type", "scale", "teacher", "location", "participant_category"}
}

// GetStats retrieves database counters for the admin dashboard
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats Stats
	if err := parseResponse(resp, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// TableRows retrieves every row of an admin table as display cells.
// Column sets vary per table, so rows stay positional.
func (c *Client) TableRows(ctx context.Context, table string) ([][]string, error) {
	path := fmt.Sprintf("/admin/tables/%s", table)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var rows []tuple
	if err := parseResponse(resp, &rows); err != nil {
		return nil, err
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, row.Cells())
	}

	return cells, nil
}

// DeleteTableRecord removes one record from an admin table.
// Callers refetch the table afterwards to re-derive view state from server
// truth.
func (c *Client) DeleteTableRecord(ctx context.Context, table string, id int) error {
	path := fmt.Sprintf("/admin/tables/%s/%d", table, id)
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}
