package coursera

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Course is one element of a catalog or course response. Fields absent from
// the response keep their zero value; no shape validation is performed.
type Course struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Workload     string   `json:"workload"`
	PartnerIDs   []string `json:"partnerIds"`
	Partners     NameList `json:"partners"`
	Skills       NameList `json:"skills"`
	Rating       *float64 `json:"rating"`
	Certificates []string `json:"certificates"`
}

// NameList decodes the two list shapes the API uses interchangeably:
// ["Machine Learning", ...] and [{"name": "Machine Learning"}, ...].
type NameList []string

func (n *NameList) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "" || trimmed == "null" {
		*n = nil
		return nil
	}

	var strs []string
	if err := json.Unmarshal(b, &strs); err == nil {
		*n = strs
		return nil
	}

	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &objs); err != nil {
		return err
	}
	out := make(NameList, 0, len(objs))
	for _, o := range objs {
		if o.Name != "" {
			out = append(out, o.Name)
		}
	}
	*n = out
	return nil
}

// CourseRow is the flattened, column-oriented view of a Course. The same
// struct drives the CSV export, the local SQLite history, and the BigQuery
// schema.
type CourseRow struct {
	ID            string `db:"id" csv:"id" bigquery:"id"`
	Name          string `db:"name" csv:"name" bigquery:"name"`
	Slug          string `db:"slug" csv:"slug" bigquery:"slug"`
	Description   string `db:"description" csv:"description" bigquery:"description"`
	LearningHours string `db:"learning_hours" csv:"learning_hours" bigquery:"learning_hours"`
	Partners      string `db:"partners" csv:"partners" bigquery:"partners"`
	Skills        string `db:"skills" csv:"skills" bigquery:"skills"`
	Rating        string `db:"rating" csv:"rating" bigquery:"rating"`
}

// Flatten converts a Course into its tabular row. Nested lists are joined
// with ", " and line breaks are stripped from the description so each record
// stays on one CSV line.
func (c Course) Flatten() CourseRow {
	rating := ""
	if c.Rating != nil {
		rating = strconv.FormatFloat(*c.Rating, 'f', -1, 64)
	}
	return CourseRow{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   strings.NewReplacer("\n", " ", "\r", " ").Replace(c.Description),
		LearningHours: c.Workload,
		Partners:      strings.Join(c.Partners, ", "),
		Skills:        strings.Join(c.Skills, ", "),
		Rating:        rating,
	}
}

// FlattenAll maps Flatten over a catalog slice, preserving order.
func FlattenAll(courses []Course) []CourseRow {
	rows := make([]CourseRow, len(courses))
	for i, c := range courses {
		rows[i] = c.Flatten()
	}
	return rows
}
