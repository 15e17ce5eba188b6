package database

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "github.com/seanankenbruck/ti-bot/internal/errors"
	"github.com/seanankenbruck/ti-bot/internal/tables"
)

const (
	truncateReferenceTables = `TRUNCATE rooms, departments, general_qa RESTART IDENTITY`

	insertRoom = `
		INSERT INTO rooms (room_number, floor, purpose, person_in_room, department, description, photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	insertDepartment = `
		INSERT INTO departments (name, description, career)
		VALUES ($1, $2, $3)
	`
	insertGeneral = `
		INSERT INTO general_qa (emotion_intent, example_question, response)
		VALUES ($1, $2, $3)
	`
)

// Seed replaces the contents of the reference tables with t inside a single
// transaction. Rows are inserted in table order so the serial ids preserve it.
func Seed(ctx context.Context, db *sql.DB, t *tables.Tables) (map[string]int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryError(err, "begin seed transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, truncateReferenceTables); err != nil {
		return nil, apperrors.NewDatabaseQueryError(err, "truncate reference tables")
	}

	for i, r := range t.Rooms() {
		if _, err := tx.ExecContext(ctx, insertRoom,
			r.Number, r.Floor, r.Purpose, r.Person, r.Department, r.Description, r.Photo,
		); err != nil {
			return nil, apperrors.NewDatabaseQueryError(fmt.Errorf("room row %d: %w", i+1, err), "seed rooms")
		}
	}

	for i, d := range t.Departments() {
		if _, err := tx.ExecContext(ctx, insertDepartment, d.Name, d.Description, d.Career); err != nil {
			return nil, apperrors.NewDatabaseQueryError(fmt.Errorf("department row %d: %w", i+1, err), "seed departments")
		}
	}

	for i, g := range t.General() {
		if _, err := tx.ExecContext(ctx, insertGeneral, g.Intent, g.Example, g.Response); err != nil {
			return nil, apperrors.NewDatabaseQueryError(fmt.Errorf("general row %d: %w", i+1, err), "seed general_qa")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewDatabaseQueryError(err, "commit seed transaction")
	}

	return t.Counts(), nil
}
