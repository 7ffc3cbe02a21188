package itinerary

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrSavedNotFound is returned when no saved itinerary has the requested row ID.
var ErrSavedNotFound = errors.New("saved itinerary not found")

// Saved is an itinerary persisted for later review.
type Saved struct {
	ID        int64      `json:"id"`
	Itinerary *Itinerary `json:"itinerary"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Repository stores itineraries in SQLite. Itinerary IDs are not unique, so rows
// are addressed by their own integer ID.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an itinerary repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, itinerary_id, destination, budget, num_days, days_json, note, created_at`

// Save stores an itinerary with an optional note and returns the saved record.
func (r *Repository) Save(it *Itinerary, note string) (*Saved, error) {
	days, err := json.Marshal(it.Days)
	if err != nil {
		return nil, fmt.Errorf("encoding days: %w", err)
	}

	result, err := r.db.Exec(
		"INSERT INTO saved_itineraries (itinerary_id, destination, budget, num_days, days_json, note) VALUES (?, ?, ?, ?, ?, ?)",
		it.ID, it.Destination, it.Budget, it.NumDays, string(days), note,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting itinerary: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a saved itinerary by row ID.
func (r *Repository) GetByID(id int64) (*Saved, error) {
	query := fmt.Sprintf("SELECT %s FROM saved_itineraries WHERE id = ?", selectColumns)

	s, err := scanSaved(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSavedNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying itinerary %d: %w", id, err)
	}

	return s, nil
}

// List returns all saved itineraries, newest first.
func (r *Repository) List() (saved []*Saved, err error) {
	query := fmt.Sprintf("SELECT %s FROM saved_itineraries ORDER BY created_at DESC, id DESC", selectColumns)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing itineraries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		s, err := scanSaved(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning itinerary: %w", err)
		}
		saved = append(saved, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating itineraries: %w", err)
	}

	return saved, nil
}

// Delete removes a saved itinerary.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM saved_itineraries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting itinerary: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", ErrSavedNotFound, id)
	}

	return nil
}

func scanSaved(row interface{ Scan(...interface{}) error }) (*Saved, error) {
	var s Saved
	var it Itinerary
	var days string

	err := row.Scan(&s.ID, &it.ID, &it.Destination, &it.Budget, &it.NumDays, &days, &s.Note, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(days), &it.Days); err != nil {
		return nil, fmt.Errorf("decoding days: %w", err)
	}
	s.Itinerary = &it

	return &s, nil
}
