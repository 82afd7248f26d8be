package coursera

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// DefaultBrowseCategory is the browse page scraped when no category is given.
const DefaultBrowseCategory = "data-science"

// browseCourse mirrors one entry of the initialState course map.
type browseCourse struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Workload    string   `json:"workload"`
	Partners    NameList `json:"partners"`
	Skills      NameList `json:"skills"`
	Rating      *float64 `json:"rating"`
}

// BrowseCourses is the fallback for when the catalog API is unavailable: it
// fetches the category browse page and extracts the course map embedded in
// the page's initialState JSON. Results are ordered by course id since the
// embedded map has no order of its own.
func (c *Client) BrowseCourses(col *colly.Collector, category string) ([]Course, error) {
	if category == "" {
		category = DefaultBrowseCategory
	}

	var courses []Course
	var scrapeErr error

	col = col.Clone() // same collector but without old callbacks
	col.IgnoreRobotsTxt = true // fetched like a browser page load, as the API path is
	col.OnResponse(func(res *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
		if err != nil {
			scrapeErr = err
			return
		}
		raw := doc.Find(`script#initialState`).Text()
		if raw == "" {
			scrapeErr = errors.New("coursera: no initialState data in browse page")
			return
		}
		courses, scrapeErr = parseInitialState([]byte(raw))
	})

	if err := col.Visit(c.BaseURL + "/browse/" + category); err != nil {
		return nil, fmt.Errorf("coursera: fetch browse page: %w", err)
	}
	if scrapeErr != nil {
		return nil, scrapeErr
	}
	return courses, nil
}

func parseInitialState(raw []byte) ([]Course, error) {
	var state struct {
		Browse struct {
			Courses map[string]browseCourse `json:"courses"`
		} `json:"browse"`
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("coursera: parse initialState: %w", err)
	}
	if len(state.Browse.Courses) == 0 {
		return nil, errors.New("coursera: no courses in initialState data")
	}

	courses := make([]Course, 0, len(state.Browse.Courses))
	for id, bc := range state.Browse.Courses {
		courses = append(courses, Course{
			ID:          id,
			Name:        bc.Name,
			Slug:        bc.Slug,
			Description: bc.Description,
			Workload:    bc.Workload,
			Partners:    bc.Partners,
			Skills:      bc.Skills,
			Rating:      bc.Rating,
		})
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}
