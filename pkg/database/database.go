package database

import (
	"io"

	"github.com/opencourse/courseport/pkg/coursera"
)

type Database interface {
	io.Closer
	SaveCourses([]coursera.CourseRow) error
}
