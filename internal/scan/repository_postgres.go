package scan

import (
	"context"
	"encoding/json"
	"fmt"

	"medsaver/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *Scan) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	suggestions, err := json.Marshal(s.GenericSuggestions)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO medicine_scans (
			id,
			user_id,
			image_url,
			extracted_text,
			detected_medicine_name,
			confidence_score,
			generic_suggestions,
			price_savings
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING scan_timestamp
	`,
		s.ID,
		s.UserID,
		s.ImageURL,
		s.ExtractedText,
		s.DetectedMedicineName,
		s.ConfidenceScore,
		suggestions,
		s.PriceSavings,
	).Scan(&s.ScanTimestamp)
}

const selectScan = `
	SELECT
		id,
		user_id,
		COALESCE(image_url, ''),
		COALESCE(extracted_text, ''),
		COALESCE(detected_medicine_name, ''),
		COALESCE(confidence_score, 0),
		generic_suggestions,
		COALESCE(price_savings, 0),
		scan_timestamp
	FROM medicine_scans
`

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Scan, error) {
	rows, err := r.db.Query(ctx, selectScan+`
		WHERE user_id = $1
		ORDER BY scan_timestamp DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scans := []Scan{}
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *s)
	}
	return scans, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Scan, error) {
	s, err := scanRow(r.db.QueryRow(ctx, selectScan+`WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, ErrNotFound
	}
	return s, err
}

func scanRow(row pgx.Row) (*Scan, error) {
	var (
		s           Scan
		suggestions []byte
	)
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.ImageURL,
		&s.ExtractedText,
		&s.DetectedMedicineName,
		&s.ConfidenceScore,
		&suggestions,
		&s.PriceSavings,
		&s.ScanTimestamp,
	); err != nil {
		return nil, err
	}
	if len(suggestions) > 0 {
		if err := json.Unmarshal(suggestions, &s.GenericSuggestions); err != nil {
			return nil, fmt.Errorf("decode generic_suggestions: %w", err)
		}
	}
	return &s, nil
}
