package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/utils"
)

// PostgresStore reads profiles from the profiles table, one JSONB document per id
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore initializes a store on an open database
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load retrieves a profile document by id
func (r *PostgresStore) Load(ctx context.Context, id string) (*models.Profile, error) {
	if !ValidProfileID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProfileID, id)
	}

	var (
		name sql.NullString
		doc  []byte
	)
	query := `
		SELECT name, document
		FROM profiles
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&name, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", id, err)
	}

	p, err := decodeJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", id, err)
	}
	if name.Valid && name.String != "" {
		p.Name = name.String
	}
	p.ID = id
	normalize(p)
	return p, nil
}

// List returns all profile ids and display names ordered by id
func (r *PostgresStore) List(ctx context.Context) ([]models.ProfileInfo, error) {
	query := `
		SELECT id, COALESCE(name, '')
		FROM profiles
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	out := []models.ProfileInfo{}
	for rows.Next() {
		var info models.ProfileInfo
		if err := rows.Scan(&info.ID, &info.Name); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		if info.Name == "" {
			info.Name = utils.DisplayName(info.ID)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return out, nil
}

// Save inserts or replaces a profile document
func (r *PostgresStore) Save(ctx context.Context, p *models.Profile) error {
	if !ValidProfileID(p.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidProfileID, p.ID)
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile %s: %w", p.ID, err)
	}
	query := `
		INSERT INTO profiles (id, name, document, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, document = EXCLUDED.document, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Name, doc); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.ID, err)
	}
	return nil
}
