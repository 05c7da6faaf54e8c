package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"medsaver/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *Profile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	prefs, err := json.Marshal(p.NotificationPreferences)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO profiles (id, user_id, full_name, email, notification_preferences)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.FullName, p.Email, prefs).Scan(&p.CreatedAt, &p.UpdatedAt)

	if db.IsUniqueViolation(err) {
		return ErrExists
	}
	return err
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (*Profile, error) {
	var (
		p     Profile
		prefs []byte
	)

	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			user_id,
			full_name,
			email,
			phone,
			to_char(date_of_birth, 'YYYY-MM-DD'),
			medical_conditions,
			allergies,
			emergency_contact_name,
			emergency_contact_phone,
			notification_preferences,
			avatar_url,
			created_at,
			updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.Phone,
		&p.DateOfBirth,
		&p.MedicalConditions,
		&p.Allergies,
		&p.EmergencyContactName,
		&p.EmergencyContactPhone,
		&prefs,
		&p.AvatarURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if db.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.NotificationPreferences = DefaultPreferences()
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &p.NotificationPreferences); err != nil {
			return nil, fmt.Errorf("decode notification_preferences: %w", err)
		}
	}
	return &p, nil
}

func (r *PostgresRepository) Save(ctx context.Context, p *Profile) error {
	prefs, err := json.Marshal(p.NotificationPreferences)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET full_name = $2,
		    phone = $3,
		    date_of_birth = $4::date,
		    medical_conditions = $5,
		    allergies = $6,
		    emergency_contact_name = $7,
		    emergency_contact_phone = $8,
		    notification_preferences = $9,
		    avatar_url = $10,
		    updated_at = now()
		WHERE user_id = $1
	`,
		p.UserID,
		p.FullName,
		p.Phone,
		p.DateOfBirth,
		p.MedicalConditions,
		p.Allergies,
		p.EmergencyContactName,
		p.EmergencyContactPhone,
		prefs,
		p.AvatarURL,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
