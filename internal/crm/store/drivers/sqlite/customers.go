package sqlite

import (
	"context"
	"database/sql"

	"github.com/yourfavcrm/crm/internal/crm/domain"
)

type customersRepo struct {
	db *sql.DB
}

const customerColumns = `id, name, email, phone, company, website, status, value, last_contact, avatar`

func scanCustomer(row interface{ Scan(...any) error }) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Website,
		&c.Status, &c.Value, &c.LastContact, &c.Avatar)
	return c, err
}

func (r *customersRepo) ListCustomers(ctx context.Context, ownerID string) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE owner_id = ? ORDER BY seq`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *customersRepo) CreateCustomer(ctx context.Context, ownerID string, c domain.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (owner_id, id, name, email, phone, company, website, status, value, last_contact, avatar)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ownerID, c.ID, c.Name, c.Email, c.Phone, c.Company, c.Website, c.Status, c.Value, c.LastContact, c.Avatar)
	return err
}

func (r *customersRepo) UpdateCustomer(ctx context.Context, ownerID, id string, p domain.CustomerPatch) (domain.Customer, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Customer{}, err
	}
	defer func() { _ = tx.Rollback() }()

	c, err := scanCustomer(tx.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE owner_id = ? AND id = ?`, ownerID, id))
	if err != nil {
		return domain.Customer{}, mapNotFound(err)
	}

	c.Apply(p)

	if _, err := tx.ExecContext(ctx,
		`UPDATE customers SET name = ?, email = ?, phone = ?, company = ?, website = ?, status = ?, value = ?, last_contact = ?, avatar = ?
		 WHERE owner_id = ? AND id = ?`,
		c.Name, c.Email, c.Phone, c.Company, c.Website, c.Status, c.Value, c.LastContact, c.Avatar,
		ownerID, id); err != nil {
		return domain.Customer{}, err
	}

	return c, tx.Commit()
}

func (r *customersRepo) DeleteCustomer(ctx context.Context, ownerID, id string) (domain.Customer, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Customer{}, err
	}
	defer func() { _ = tx.Rollback() }()

	c, err := scanCustomer(tx.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE owner_id = ? AND id = ?`, ownerID, id))
	if err != nil {
		return domain.Customer{}, mapNotFound(err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM customers WHERE owner_id = ? AND id = ?`, ownerID, id); err != nil {
		return domain.Customer{}, err
	}

	return c, tx.Commit()
}
