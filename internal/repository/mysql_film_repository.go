package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/film-afisha/backend/internal/model"
)

// MySQLFilmRepo is the relational adapter.  Films and screenings live in
// normalized tables joined by film_id; the taken-seat set is a JSON array
// column (see migrations/0001_init.sql).  Atomicity of ReserveSeats relies
// on MySQL's row-level update guarantee: a single UPDATE both checks the
// no-overlap condition and appends the new keys.
type MySQLFilmRepo struct {
	db *sql.DB
}

// NewMySQLFilmRepo returns a MySQLFilmRepo bound to the given database.
func NewMySQLFilmRepo(db *sql.DB) *MySQLFilmRepo { return &MySQLFilmRepo{db: db} }

// ListFilms returns every film ordered by id.
func (r *MySQLFilmRepo) ListFilms(ctx context.Context) ([]model.Film, error) {
	const q = `SELECT id, title, about, description, image, cover, director, rating, tags
               FROM films ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	films := make([]model.Film, 0)
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		films = append(films, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return films, nil
}

// GetFilmAndScreening resolves the pair or reports which half is missing.
func (r *MySQLFilmRepo) GetFilmAndScreening(ctx context.Context, filmID, screeningID string) (*model.Film, *model.Screening, error) {
	const q = `SELECT id, title, about, description, image, cover, director, rating, tags
               FROM films WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, filmID)
	f, err := scanFilm(row)
	if err == sql.ErrNoRows {
		return nil, nil, ErrFilmNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	const sq = "SELECT id, film_id, daytime, hall, `rows`, seats, price, taken FROM screenings WHERE id = ? AND film_id = ?"
	s, err := scanScreening(r.db.QueryRowContext(ctx, sq, screeningID, filmID))
	if err == sql.ErrNoRows {
		return f, nil, ErrScreeningNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return f, s, nil
}

// ListScreenings returns the film's screenings ordered by daytime ascending.
func (r *MySQLFilmRepo) ListScreenings(ctx context.Context, filmID string) ([]model.Screening, error) {
	const q = "SELECT id, film_id, daytime, hall, `rows`, seats, price, taken FROM screenings WHERE film_id = ? ORDER BY daytime ASC"
	rows, err := r.db.QueryContext(ctx, q, filmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Screening, 0)
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ReserveSeats appends the seat keys to the screening's taken array in one
// conditional UPDATE.  JSON_OVERLAPS guards the write: when any requested
// key is already present the row does not match and zero rows are
// affected, in which case the current taken set is re-read to report the
// exact conflicts.  No rows at all means the screening does not exist and
// every key is reported, since nothing could be verified.
func (r *MySQLFilmRepo) ReserveSeats(ctx context.Context, filmID, screeningID string, seatKeys []string) (ReserveResult, error) {
	unique := uniqueKeys(seatKeys)
	if len(unique) == 0 {
		return ReserveResult{Reserved: true}, nil
	}
	payload, err := json.Marshal(unique)
	if err != nil {
		return ReserveResult{}, err
	}

	const q = `UPDATE screenings
                  SET taken = JSON_MERGE_PRESERVE(taken, CAST(? AS JSON))
                WHERE id = ? AND film_id = ?
                  AND NOT JSON_OVERLAPS(taken, CAST(? AS JSON))`
	res, err := r.db.ExecContext(ctx, q, payload, screeningID, filmID, payload)
	if err != nil {
		return ReserveResult{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return ReserveResult{}, err
	}
	if affected > 0 {
		return ReserveResult{Reserved: true}, nil
	}

	// Condition failed or row missing; re-read to tell the two apart.
	const sel = `SELECT taken FROM screenings WHERE id = ? AND film_id = ?`
	var raw []byte
	err = r.db.QueryRowContext(ctx, sel, screeningID, filmID).Scan(&raw)
	if err == sql.ErrNoRows {
		return ReserveResult{Reserved: false, Conflicts: unique}, nil
	}
	if err != nil {
		return ReserveResult{}, err
	}
	taken, err := decodeTaken(raw)
	if err != nil {
		return ReserveResult{}, err
	}
	return ReserveResult{Reserved: false, Conflicts: intersect(taken, unique)}, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFilm(row rowScanner) (*model.Film, error) {
	var f model.Film
	var title, about, description, image, cover, director sql.NullString
	var rating sql.NullFloat64
	var rawTags []byte
	if err := row.Scan(&f.ID, &title, &about, &description, &image, &cover, &director, &rating, &rawTags); err != nil {
		return nil, err
	}
	f.Title = title.String
	f.About = about.String
	f.Description = description.String
	f.Image = image.String
	f.Cover = cover.String
	f.Director = director.String
	f.Rating = rating.Float64
	f.Tags = []string{}
	if len(rawTags) > 0 {
		if err := json.Unmarshal(rawTags, &f.Tags); err != nil {
			return nil, fmt.Errorf("films.tags: %w", err)
		}
	}
	return &f, nil
}

func scanScreening(row rowScanner) (*model.Screening, error) {
	var s model.Screening
	var daytime time.Time
	var hall sql.NullString
	var rawTaken []byte
	if err := row.Scan(&s.ID, &s.FilmID, &daytime, &hall, &s.Rows, &s.Seats, &s.Price, &rawTaken); err != nil {
		return nil, err
	}
	// parseTime=true yields time.Time for DATETIME columns; expose RFC3339 UTC
	s.Daytime = daytime.UTC().Format(time.RFC3339)
	s.Hall = hall.String
	taken, err := decodeTaken(rawTaken)
	if err != nil {
		return nil, err
	}
	s.Taken = taken
	return &s, nil
}

// decodeTaken normalizes the JSON taken column to a plain string slice.
// An empty or NULL column reads as the empty set.
func decodeTaken(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	taken := []string{}
	if err := json.Unmarshal(raw, &taken); err != nil {
		return nil, fmt.Errorf("screenings.taken: %w", err)
	}
	return taken, nil
}
