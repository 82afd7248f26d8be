package coursera

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const detailFields = "id,name,slug,description,workload,photoUrl,certificates,primaryLanguages,partnerIds"

// basicInfoFields is the enumerated subset ExtractBasicInfo copies through.
var basicInfoFields = []string{
	"id",
	"name",
	"slug",
	"description",
	"workload",
	"photoUrl",
	"certificates",
	"primaryLanguages",
	"partnerIds",
}

// GetCourseDetails looks a course up by slug and returns the first matching
// element of the response as raw decoded JSON.
func (c *Client) GetCourseDetails(ctx context.Context, slug string) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("q", "slug")
	q.Set("slug", slug)
	q.Set("fields", detailFields)

	var data struct {
		Elements []map[string]interface{} `json:"elements"`
	}
	if err := c.getJSON(ctx, c.BaseURL+catalogPath+"?"+q.Encode(), &data); err != nil {
		return nil, err
	}
	if len(data.Elements) == 0 {
		return nil, fmt.Errorf("coursera: no course found for slug %q", slug)
	}
	return data.Elements[0], nil
}

// ExtractBasicInfo copies the enumerated basic fields out of a course detail
// response into a flat mapping. Fields absent from the response are omitted.
// A nil response is an explicit error rather than an empty mapping, so
// callers can't mistake a failed fetch for a sparse course.
func ExtractBasicInfo(details map[string]interface{}) (map[string]string, error) {
	if details == nil {
		return nil, errors.New("coursera: nil course details")
	}
	info := make(map[string]string)
	for _, field := range basicInfoFields {
		v, ok := details[field]
		if !ok || v == nil {
			continue
		}
		info[field] = flattenValue(v)
	}
	return info, nil
}

// flattenValue renders a decoded JSON value as a single cell-friendly string.
func flattenValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, flattenValue(e))
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		if name, ok := t["name"].(string); ok {
			return name
		}
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}
