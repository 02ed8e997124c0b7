package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"broilers/models"
)

const orderColumns = `id, customer_name, whatsapp, hens_count, delivery_time, address, special_instructions, status, created_at, updated_at`

// Timestamps are stored as unix milliseconds.
func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (models.Order, error) {
	var (
		o                models.Order
		status           string
		created, updated int64
	)
	err := row.Scan(&o.ID, &o.CustomerName, &o.WhatsApp, &o.HensCount, &o.DeliveryTime, &o.Address, &o.SpecialInstructions, &status, &created, &updated)
	if err != nil {
		return o, err
	}
	o.Status = models.OrderStatus(status)
	o.CreatedAt = fromMillis(created)
	o.UpdatedAt = fromMillis(updated)
	return o, nil
}

func (s *Store) Insert(ctx context.Context, o *models.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.DB.ExecContext(ctx, query,
		o.ID, o.CustomerName, o.WhatsApp, o.HensCount, o.DeliveryTime, o.Address, o.SpecialInstructions,
		string(o.Status), toMillis(o.CreatedAt), toMillis(o.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", o.ID, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.Order, error) {
	return s.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
}

func (s *Store) ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return s.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = ? ORDER BY created_at DESC`, string(status))
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*models.Order, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", id, err)
	}
	return &o, nil
}

func (s *Store) CompareAndSetStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(to), toMillis(at), id, string(from),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) RenameStatus(ctx context.Context, from, to models.OrderStatus) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `UPDATE orders SET status = ? WHERE status = ?`, string(to), string(from))
	if err != nil {
		return 0, fmt.Errorf("failed to rename status %s: %w", from, err)
	}
	return res.RowsAffected()
}
