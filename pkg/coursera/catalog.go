package coursera

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const catalogPath = "/api/courses.v1"

type catalogResponse struct {
	Elements []Course `json:"elements"`
	Paging   struct {
		Total int `json:"total"`
	} `json:"paging"`
}

// ExtractCourses fetches a single page of the course catalog and returns its
// elements in response order. When fields is empty, DefaultFields is
// requested.
//
// Only one page is ever requested: limit must be at least the total catalog
// size for a complete export.
func (c *Client) ExtractCourses(ctx context.Context, limit int, fields ...string) ([]Course, error) {
	if limit <= 0 {
		limit = 20
	}
	selector := DefaultFields
	if len(fields) > 0 {
		selector = strings.Join(fields, ",")
	}

	q := url.Values{}
	q.Set("start", "0")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("fields", selector)

	var data catalogResponse
	if err := c.getJSON(ctx, c.BaseURL+catalogPath+"?"+q.Encode(), &data); err != nil {
		return nil, err
	}
	if len(data.Elements) == 0 {
		return nil, fmt.Errorf("coursera: catalog response contained no courses")
	}
	return data.Elements, nil
}
