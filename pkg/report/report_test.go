package report

import (
	"bufio"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/opencourse/courseport/pkg/coursera"
)

func sampleRows() []coursera.CourseRow {
	return []coursera.CourseRow{
		{
			ID:            "1",
			Name:          "Machine Learning",
			Slug:          "machine-learning",
			Description:   "A course, with commas",
			LearningHours: "5-7 hours/week",
			Partners:      "Stanford",
			Skills:        "Octave, Linear Algebra",
			Rating:        "4.9",
		},
		{
			ID:   "2",
			Name: "Python",
			Slug: "python",
		},
	}
}

func TestWriteCatalogRoundTrip(t *testing.T) {
	rows := sampleRows()
	path := filepath.Join(t.TempDir(), "catalog.csv")

	got, err := WriteCatalog(rows, path)
	if err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if got != path {
		t.Fatalf("resolved path = %q, want %q", got, path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer file.Close()

	var readBack []coursera.CourseRow
	if err := gocsv.Unmarshal(file, &readBack); err != nil {
		t.Fatalf("read csv back: %v", err)
	}
	if !reflect.DeepEqual(readBack, rows) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", readBack, rows)
	}
}

func TestWriteCatalogHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if _, err := WriteCatalog(sampleRows(), path); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		t.Fatal("written file is empty")
	}
	header := scanner.Text()
	want := "id,name,slug,description,learning_hours,partners,skills,rating"
	if header != want {
		t.Errorf("header = %q, want %q", header, want)
	}
}

func TestWriteCatalogDefaultPath(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})

	path, err := WriteCatalog(sampleRows(), "")
	if err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if !strings.HasPrefix(path, "coursera_courses_") || !strings.HasSuffix(path, ".csv") {
		t.Errorf("default path = %q, want coursera_courses_<timestamp>.csv", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default file not written: %v", err)
	}
}

func TestWriteCatalogEmptyInput(t *testing.T) {
	if _, err := WriteCatalog(nil, "out.csv"); err == nil {
		t.Fatal("expected an error for empty input")
	}
}

func TestWriteCatalogUnwritableTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "nested", "catalog.csv")

	_, err := WriteCatalog(sampleRows(), path)
	if err == nil {
		t.Fatal("expected a filesystem error for an unwritable target")
	}
}
