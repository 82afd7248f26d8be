package database

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/go-gorp/gorp/v3"
	"github.com/mattn/go-sqlite3"
	"github.com/opencourse/courseport/pkg/coursera"
)

// Sqlite keeps a local history of every course seen across extractions.
type Sqlite struct {
	db    *sql.DB
	dbmap *gorp.DbMap
}

func NewSqlite(file string) Sqlite {
	sqlite := Sqlite{}

	// The cache directory doesn't exist yet on a first run
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Panic("Unable to create database directory: ", err)
		}
	}

	// Initialize the database connection
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		log.Panic("Unable to connect to database: ", err)
	}
	sqlite.db = db

	// Initialize the database mapping, creating the tables if it's our first run
	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.SqliteDialect{}}
	dbmap.AddTableWithName(coursera.CourseRow{}, "courses").SetUniqueTogether("ID", "Slug")
	if err := dbmap.CreateTablesIfNotExists(); err != nil {
		log.Panic("Unable to create tables: ", err)
	}
	sqlite.dbmap = dbmap

	return sqlite
}

// SaveCourses inserts catalog rows, silently skipping courses already on
// record from a previous run.
func (s Sqlite) SaveCourses(rows []coursera.CourseRow) error {
	tx, err := s.dbmap.Begin()
	if err != nil {
		return err
	}
	for i := range rows {
		err := tx.Insert(&rows[i])
		if err != nil {
			var sqliteError sqlite3.Error
			if errors.As(err, &sqliteError) && errors.Is(sqliteError.ExtendedCode, sqlite3.ErrConstraintUnique) {
				continue
			}
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s Sqlite) Close() error {
	return s.db.Close()
}
