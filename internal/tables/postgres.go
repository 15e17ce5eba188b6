package tables

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	apperrors "github.com/seanankenbruck/ti-bot/internal/errors"
)

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	SSLMode  string
}

// DSN returns the lib/pq connection string
func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, sslMode)
}

// URL returns the connection string in URL form, as golang-migrate expects it
func (c PostgresConfig) URL() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.Database, sslMode)
}

// OpenPostgres opens and pings a connection pool
func OpenPostgres(config PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.NewDatabaseConnectionError(err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// PostgresSource loads the tables from the rooms, departments and
// general_qa tables created by the migrations.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource wraps an open database handle
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Name returns the source name
func (ps *PostgresSource) Name() string {
	return "postgres"
}

// Ping tests the database connection
func (ps *PostgresSource) Ping(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}

// Load reads every table in insertion order
func (ps *PostgresSource) Load(ctx context.Context) (*Tables, error) {
	rooms, err := ps.loadRooms(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryError(err, "load rooms")
	}
	depts, err := ps.loadDepartments(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryError(err, "load departments")
	}
	general, err := ps.loadGeneral(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryError(err, "load general_qa")
	}
	return New(rooms, depts, general), nil
}

func (ps *PostgresSource) loadRooms(ctx context.Context) ([]Room, error) {
	query := `
		SELECT room_number, floor, purpose, person_in_room, department, description, photo
		FROM rooms
		ORDER BY id
	`

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var r Room
		if err := rows.Scan(&r.Number, &r.Floor, &r.Purpose, &r.Person, &r.Department, &r.Description, &r.Photo); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}
	return rooms, nil
}

func (ps *PostgresSource) loadDepartments(ctx context.Context) ([]Department, error) {
	query := `
		SELECT name, description, career
		FROM departments
		ORDER BY id
	`

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var depts []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.Name, &d.Description, &d.Career); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		depts = append(depts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return depts, nil
}

func (ps *PostgresSource) loadGeneral(ctx context.Context) ([]GeneralQA, error) {
	query := `
		SELECT emotion_intent, example_question, response
		FROM general_qa
		ORDER BY id
	`

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query general_qa: %w", err)
	}
	defer rows.Close()

	var general []GeneralQA
	for rows.Next() {
		var g GeneralQA
		if err := rows.Scan(&g.Intent, &g.Example, &g.Response); err != nil {
			return nil, fmt.Errorf("failed to scan general_qa row: %w", err)
		}
		general = append(general, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate general_qa: %w", err)
	}
	return general, nil
}
