package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yourfavcrm/crm/internal/crm/domain"
)

type dealsRepo struct {
	db *sql.DB
}

const dealColumns = `id, title, description, value, status, priority, customer_id, customer_name, customer_company, expected_close_date, created_at, updated_at, assigned_to, source, tags`

func scanDeal(row interface{ Scan(...any) error }) (domain.Deal, error) {
	var (
		d                    domain.Deal
		createdAt, updatedAt string
		tags                 string
	)
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Value, &d.Status, &d.Priority,
		&d.CustomerID, &d.CustomerName, &d.CustomerCompany, &d.ExpectedCloseDate,
		&createdAt, &updatedAt, &d.AssignedTo, &d.Source, &tags)
	if err != nil {
		return domain.Deal{}, err
	}

	if d.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return domain.Deal{}, fmt.Errorf("sqlite: bad created_at for deal %s: %w", d.ID, err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return domain.Deal{}, fmt.Errorf("sqlite: bad updated_at for deal %s: %w", d.ID, err)
	}
	if err = json.Unmarshal([]byte(tags), &d.Tags); err != nil {
		return domain.Deal{}, fmt.Errorf("sqlite: bad tags for deal %s: %w", d.ID, err)
	}
	return d, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (r *dealsRepo) ListDeals(ctx context.Context, ownerID string) ([]domain.Deal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE owner_id = ? ORDER BY seq`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deals := []domain.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func (r *dealsRepo) CreateDeal(ctx context.Context, ownerID string, d domain.Deal) error {
	tags, err := encodeTags(d.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO deals (owner_id, id, title, description, value, status, priority, customer_id, customer_name, customer_company, expected_close_date, created_at, updated_at, assigned_to, source, tags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ownerID, d.ID, d.Title, d.Description, d.Value, d.Status, d.Priority,
		d.CustomerID, d.CustomerName, d.CustomerCompany, d.ExpectedCloseDate,
		d.CreatedAt.Format(time.RFC3339Nano), d.UpdatedAt.Format(time.RFC3339Nano),
		d.AssignedTo, d.Source, tags)
	return err
}

func (r *dealsRepo) UpdateDeal(ctx context.Context, ownerID, id string, p domain.DealPatch) (domain.Deal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Deal{}, err
	}
	defer func() { _ = tx.Rollback() }()

	d, err := scanDeal(tx.QueryRowContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE owner_id = ? AND id = ?`, ownerID, id))
	if err != nil {
		return domain.Deal{}, mapNotFound(err)
	}

	d.Apply(p, time.Now().UTC())

	tags, err := encodeTags(d.Tags)
	if err != nil {
		return domain.Deal{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE deals SET title = ?, description = ?, value = ?, status = ?, priority = ?, customer_id = ?, customer_name = ?, customer_company = ?, expected_close_date = ?, updated_at = ?, source = ?, tags = ?
		 WHERE owner_id = ? AND id = ?`,
		d.Title, d.Description, d.Value, d.Status, d.Priority,
		d.CustomerID, d.CustomerName, d.CustomerCompany, d.ExpectedCloseDate,
		d.UpdatedAt.Format(time.RFC3339Nano), d.Source, tags,
		ownerID, id); err != nil {
		return domain.Deal{}, err
	}

	return d, tx.Commit()
}

func (r *dealsRepo) DeleteDeal(ctx context.Context, ownerID, id string) (domain.Deal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Deal{}, err
	}
	defer func() { _ = tx.Rollback() }()

	d, err := scanDeal(tx.QueryRowContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE owner_id = ? AND id = ?`, ownerID, id))
	if err != nil {
		return domain.Deal{}, mapNotFound(err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM deals WHERE owner_id = ? AND id = ?`, ownerID, id); err != nil {
		return domain.Deal{}, err
	}

	return d, tx.Commit()
}
