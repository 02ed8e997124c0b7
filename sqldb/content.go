package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"broilers/models"
)

const siteContentID = "site"

// Load returns nil, nil before the first Save.
func (s *Store) Load(ctx context.Context) (*models.EditableContent, error) {
	var body string
	err := s.DB.QueryRowContext(ctx, `SELECT body FROM site_content WHERE id = ?`, siteContentID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load site content: %w", err)
	}

	var c models.EditableContent
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		return nil, fmt.Errorf("malformed site content: %w", err)
	}
	return &c, nil
}

func (s *Store) Save(ctx context.Context, c *models.EditableContent) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode site content: %w", err)
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO site_content (id, body) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET body = excluded.body`,
		siteContentID, string(body),
	)
	if err != nil {
		return fmt.Errorf("failed to save site content: %w", err)
	}
	return nil
}
