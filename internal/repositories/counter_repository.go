package repositories

import (
	"database/sql"
)

type CounterRepository struct {
	db *sql.DB
}

func NewCounterRepository(db *sql.DB) *CounterRepository {
	return &CounterRepository{
		db: db,
	}
}

// Get retrieves the current value of a named counter, 0 if it does not exist
func (r *CounterRepository) Get(name string) (int64, error) {
	query := `
		SELECT value
		FROM counters
		WHERE name = $1
	`

	var value int64
	err := r.db.QueryRow(query, name).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return value, nil
}

// Increment increases a named counter by one and returns the new value.
// The upsert returns the value it produced, so concurrent increments each
// observe their own result.
func (r *CounterRepository) Increment(name string) (int64, error) {
	query := `
		INSERT INTO counters (name, value, updated_at)
		VALUES ($1, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			value = counters.value + 1,
			updated_at = CURRENT_TIMESTAMP
		RETURNING value
	`

	var value int64
	if err := r.db.QueryRow(query, name).Scan(&value); err != nil {
		return 0, err
	}

	return value, nil
}
