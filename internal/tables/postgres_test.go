package tables

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSourceLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT room_number, floor, purpose, person_in_room, department, description, photo FROM rooms").
		WillReturnRows(sqlmock.NewRows([]string{"room_number", "floor", "purpose", "person_in_room", "department", "description", "photo"}).
			AddRow("G-16", "ground", "Registration Office", "Ms. Eman Nasih", "Administration", "Handles registration.", "eman.jpg").
			AddRow("G-20", "ground", "WC", "", "", "", ""))
	mock.ExpectQuery("SELECT name, description, career FROM departments").
		WillReturnRows(sqlmock.NewRows([]string{"name", "description", "career"}).
			AddRow("Pharmacy", "Studies medicines.", "Pharmacist"))
	mock.ExpectQuery("SELECT emotion_intent, example_question, response FROM general_qa").
		WillReturnRows(sqlmock.NewRows([]string{"emotion_intent", "example_question", "response"}).
			AddRow("library hours", "when does the library open", "The library opens at 8:30."))

	source := NewPostgresSource(db)
	assert.Equal(t, "postgres", source.Name())

	tbl, err := source.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, tbl.Rooms(), 2)
	assert.Equal(t, "Ms. Eman Nasih", tbl.Rooms()[0].Person)
	assert.Equal(t, "Pharmacy", tbl.Departments()[0].Name)
	assert.Equal(t, "library hours", tbl.General()[0].Intent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSourceQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM rooms").WillReturnError(errors.New("relation \"rooms\" does not exist"))

	_, err = NewPostgresSource(db).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query rooms")
}

func TestPostgresConfigStrings(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: "5432", Database: "tibot", Username: "bot", Password: "pw"}

	assert.Equal(t, "host=db port=5432 user=bot password=pw dbname=tibot sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://bot:pw@db:5432/tibot?sslmode=disable", cfg.URL())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}
