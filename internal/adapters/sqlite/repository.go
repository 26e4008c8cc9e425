package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/masterdash/internal/domain"
	"github.com/csg33k/masterdash/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id        TEXT PRIMARY KEY,
	seq       INTEGER NOT NULL,
	name      TEXT NOT NULL,
	email     TEXT NOT NULL,
	position  TEXT NOT NULL,
	status    TEXT NOT NULL,
	rating    INTEGER NOT NULL,
	joined_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS customers (
	id      TEXT PRIMARY KEY,
	seq     INTEGER NOT NULL,
	name    TEXT NOT NULL,
	company TEXT NOT NULL,
	email   TEXT NOT NULL,
	phone   TEXT NOT NULL,
	city    TEXT NOT NULL,
	status  TEXT NOT NULL,
	spent   INTEGER NOT NULL,
	since   TEXT NOT NULL
);`

// Repository serves the master datasets from SQLite. It is seeded once from
// the bundled data and only read afterwards.
type Repository struct {
	db *sql.DB
}

// New opens dsn, creates the tables and replaces their contents with the
// rows of seed. An empty dsn or ":memory:" keeps everything in memory.
func New(ctx context.Context, dsn string, seed ports.Dataset) (*Repository, error) {
	memory := dsn == "" || dsn == ":memory:"
	if memory {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if memory {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	r := &Repository{db: db}
	if err := r.seed(ctx, seed); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the database handle.
func (r *Repository) Close() error { return r.db.Close() }

func (r *Repository) Employees() ports.Lookup[domain.Employee] { return employees{r.db} }
func (r *Repository) Customers() ports.Lookup[domain.Customer] { return customers{r.db} }

func (r *Repository) seed(ctx context.Context, seed ports.Dataset) error {
	emps, err := seed.Employees().ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load employees: %w", err)
	}
	custs, err := seed.Customers().ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM employees; DELETE FROM customers;`); err != nil {
		return err
	}
	for i, e := range emps {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO employees (id, seq, name, email, position, status, rating, joined_at)
			VALUES (?,?,?,?,?,?,?,?)`,
			e.ID, i, e.Name, e.Email, e.Position, e.Status, e.Rating, e.JoinedAt,
		); err != nil {
			return fmt.Errorf("seed employee %s: %w", e.ID, err)
		}
	}
	for i, c := range custs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO customers (id, seq, name, company, email, phone, city, status, spent, since)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			c.ID, i, c.Name, c.Company, c.Email, c.Phone, c.City, c.Status, c.Spent, c.Since,
		); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// ── Employees ─────────────────────────────────────────────────────────────────

const employeeColumns = `id, name, email, position, status, rating, joined_at`

type employees struct{ db *sql.DB }

func (q employees) ListAll(ctx context.Context) ([]domain.Employee, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (q employees) FindByID(ctx context.Context, id string) (domain.Employee, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=?`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("%q: %w", id, domain.ErrNotFound)
	}
	return e, err
}

func scanEmployee(s scanner) (domain.Employee, error) {
	var e domain.Employee
	err := s.Scan(&e.ID, &e.Name, &e.Email, &e.Position, &e.Status, &e.Rating, &e.JoinedAt)
	return e, err
}

// ── Customers ─────────────────────────────────────────────────────────────────

const customerColumns = `id, name, company, email, phone, city, status, spent, since`

type customers struct{ db *sql.DB }

func (q customers) ListAll(ctx context.Context) ([]domain.Customer, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (q customers) FindByID(ctx context.Context, id string) (domain.Customer, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id=?`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return c, fmt.Errorf("%q: %w", id, domain.ErrNotFound)
	}
	return c, err
}

func scanCustomer(s scanner) (domain.Customer, error) {
	var c domain.Customer
	err := s.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.City, &c.Status, &c.Spent, &c.Since)
	return c, err
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...any) error
}

