package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/opencourse/courseport/pkg/coursera"
	"google.golang.org/api/googleapi"
)

type BigQuery struct {
	ctx     context.Context
	client  *bigquery.Client
	dataset *bigquery.Dataset
}

func NewBigQuery(projectID, datasetID string) (BigQuery, error) {
	var bq BigQuery

	// Set up BigQuery
	ctx := context.Background()
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return bq, fmt.Errorf("failed to create client: %v", err)
	}

	dataset := client.Dataset(datasetID)
	if err := dataset.Create(ctx, nil); err != nil {
		if !isDuplicateError(err) {
			return bq, fmt.Errorf("failed to create dataset: %v", err)
		}
	}

	bq = BigQuery{ctx, client, dataset}
	return bq, nil
}

// InsertCourses merges catalog rows into the courses table, updating the
// mutable attributes of courses that were already synced.
func (bq BigQuery) InsertCourses(rows []coursera.CourseRow) error {
	matchClause := `
		WHEN MATCHED THEN
		  UPDATE
		    SET name = s.name,
		        description = s.description,
		        learning_hours = s.learning_hours,
		        partners = s.partners,
		        skills = s.skills,
		        rating = s.rating`
	return bq.insert(coursera.CourseRow{}, "courses", rows, matchClause)
}

func (bq BigQuery) insert(st interface{}, tableName string, data interface{}, whenClause string) error {
	// Infer the table schema
	schema, err := bigquery.InferSchema(st)
	if err != nil {
		return fmt.Errorf("failed to infer schema: %v", err)
	}

	// Get a reference to the table
	table := bq.dataset.Table(tableName)
	if err := table.Create(bq.ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		if !isDuplicateError(err) {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	// Stage new arrivals in a uniquely named temp table so insertions stay
	// auditable after the merge.
	tempName := tableName + "_" + strconv.Itoa(int(time.Now().Unix()))
	newArrivals := bq.dataset.Table(tempName)
	if err := newArrivals.Create(bq.ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		if !isDuplicateError(err) {
			return fmt.Errorf("failed to create arrivals table: %v", err)
		}
	}

	// Upload data
	u := newArrivals.Inserter()
	if err := u.Put(bq.ctx, data); err != nil {
		return fmt.Errorf("failed to insert rows: %v", err)
	}

	// Merge data
	q := bq.client.Query(fmt.Sprintf(`
		MERGE %[1]s.%[2]s t
		USING %[1]s.%[3]s s
		ON t.id = s.id
		  AND t.slug = s.slug
		%[4]s
		WHEN NOT MATCHED THEN
		  INSERT ROW`, bq.dataset.DatasetID, tableName, tempName, whenClause))
	if _, err := q.Run(bq.ctx); err != nil {
		return fmt.Errorf("failed to execute query: %v", err)
	}

	return nil
}

func (bq BigQuery) Close() error {
	return bq.client.Close()
}

func isDuplicateError(err error) bool {
	if e, ok := err.(*googleapi.Error); ok {
		return e.Code == 409
	}
	return false
}
