package medicine

import (
	"context"
	"encoding/json"
	"fmt"

	"medsaver/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// --------------------------------------------------
// Catalogue
// --------------------------------------------------

type PostgresCatalogue struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogue(db *pgxpool.Pool) *PostgresCatalogue {
	return &PostgresCatalogue{db: db}
}

func (r *PostgresCatalogue) SearchByName(ctx context.Context, query string, limit int) ([]CatalogueEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			name,
			COALESCE(manufacturer_name, ''),
			COALESCE(price, 0)::float8,
			COALESCE(type, ''),
			COALESCE(pack_size_label, ''),
			COALESCE(short_composition1, ''),
			COALESCE(short_composition2, ''),
			is_discontinued
		FROM medicines
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []CatalogueEntry{}
	for rows.Next() {
		var e CatalogueEntry
		if err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.ManufacturerName,
			&e.Price,
			&e.Type,
			&e.PackSizeLabel,
			&e.ShortComposition1,
			&e.ShortComposition2,
			&e.IsDiscontinued,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Import bulk-loads entries with COPY.
func (r *PostgresCatalogue) Import(ctx context.Context, entries []CatalogueEntry) (int64, error) {
	return r.db.CopyFrom(
		ctx,
		pgx.Identifier{"medicines"},
		[]string{
			"name",
			"manufacturer_name",
			"price",
			"type",
			"pack_size_label",
			"short_composition1",
			"short_composition2",
			"is_discontinued",
		},
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{
				e.Name,
				e.ManufacturerName,
				e.Price,
				e.Type,
				e.PackSizeLabel,
				e.ShortComposition1,
				e.ShortComposition2,
				e.IsDiscontinued,
			}, nil
		}),
	)
}

// --------------------------------------------------
// Searches
// --------------------------------------------------

type PostgresSearchRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSearchRepository(db *pgxpool.Pool) *PostgresSearchRepository {
	return &PostgresSearchRepository{db: db}
}

func (r *PostgresSearchRepository) Create(ctx context.Context, s *Search) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	found, err := json.Marshal(s.MedicineFound)
	if err != nil {
		return err
	}
	alts, err := json.Marshal(s.GenericAlternatives)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO medicine_searches (id, user_id, search_query, medicine_found, generic_alternatives)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING search_timestamp
	`, s.ID, s.UserID, s.SearchQuery, found, alts).Scan(&s.SearchTimestamp)
}

func (r *PostgresSearchRepository) ListByUser(ctx context.Context, userID string) ([]Search, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, search_query, medicine_found, generic_alternatives, search_timestamp
		FROM medicine_searches
		WHERE user_id = $1
		ORDER BY search_timestamp DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	searches := []Search{}
	for rows.Next() {
		var (
			s           Search
			found, alts []byte
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.SearchQuery, &found, &alts, &s.SearchTimestamp); err != nil {
			return nil, err
		}
		if len(found) > 0 {
			if err := json.Unmarshal(found, &s.MedicineFound); err != nil {
				return nil, fmt.Errorf("decode medicine_found: %w", err)
			}
		}
		if len(alts) > 0 {
			if err := json.Unmarshal(alts, &s.GenericAlternatives); err != nil {
				return nil, fmt.Errorf("decode generic_alternatives: %w", err)
			}
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}

// --------------------------------------------------
// Favorites
// --------------------------------------------------

type PostgresFavoriteRepository struct {
	db *pgxpool.Pool
}

func NewPostgresFavoriteRepository(db *pgxpool.Pool) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

func (r *PostgresFavoriteRepository) Create(ctx context.Context, f *Favorite) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	var details []byte
	if len(f.MedicineDetails) > 0 {
		details = f.MedicineDetails
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO medicine_favorites (id, user_id, medicine_name, medicine_details)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, f.ID, f.UserID, f.MedicineName, details).Scan(&f.CreatedAt)
}

func (r *PostgresFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, medicine_name, medicine_details, created_at
		FROM medicine_favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []Favorite{}
	for rows.Next() {
		var (
			f       Favorite
			details []byte
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.MedicineName, &details, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.MedicineDetails = details
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *PostgresFavoriteRepository) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM medicine_favorites WHERE id = $1 AND user_id = $2
	`, id, userID)
	if db.IsNoRows(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
