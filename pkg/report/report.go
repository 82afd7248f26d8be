package report

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/opencourse/courseport/pkg/coursera"
)

// WriteCatalog writes catalog rows to a CSV file at path and returns the
// resolved path. An empty path falls back to a timestamped filename in the
// working directory. Unlike the fetch side, filesystem failures here are
// surfaced to the caller.
func WriteCatalog(rows []coursera.CourseRow, path string) (string, error) {
	if len(rows) == 0 {
		return "", errors.New("report: no courses to write")
	}
	if path == "" {
		path = fmt.Sprintf("coursera_courses_%s.csv", time.Now().Format("20060102_150405"))
	}
	if err := WriteCsv(rows, path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCsv marshals any gocsv-taggable slice to fileName.
func WriteCsv(in interface{}, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(in, file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
