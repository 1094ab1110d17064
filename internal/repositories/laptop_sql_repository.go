package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"laptopstore/internal/models"
)

const (
	insertLaptopSQL = `INSERT INTO laptops (name, description, price, processor, ram, storage, display, os, graphics)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	selectLaptopSQL = `SELECT id, name, description, price, processor, ram, storage, display, os, graphics
		FROM laptops WHERE id = $1`
	selectLaptopsSQL = `SELECT id, name, description, price, processor, ram, storage, display, os, graphics
		FROM laptops ORDER BY id`
	updateLaptopSQL = `UPDATE laptops SET name = $1, description = $2, price = $3, processor = $4, ram = $5,
		storage = $6, display = $7, os = $8, graphics = $9 WHERE id = $10`
	deleteLaptopSQL = `DELETE FROM laptops WHERE id = $1`
)

// SQLLaptopRepository runs hand-written statements through database/sql.
// The $N placeholders work with both lib/pq and go-sqlite3.
type SQLLaptopRepository struct {
	db *sql.DB
}

// NewSQLLaptopRepository creates a new instance of SQLLaptopRepository.
func NewSQLLaptopRepository(db *sql.DB) *SQLLaptopRepository {
	return &SQLLaptopRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLaptop(row rowScanner) (models.Laptop, error) {
	var l models.Laptop
	err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Price, &l.Processor, &l.RAM, &l.Storage, &l.Display, &l.OS, &l.Graphics)
	return l, err
}

func (r *SQLLaptopRepository) Insert(ctx context.Context, laptop *models.Laptop) error {
	var id int64
	err := r.db.QueryRowContext(ctx, insertLaptopSQL,
		laptop.Name, laptop.Description, laptop.Price, laptop.Processor, laptop.RAM,
		laptop.Storage, laptop.Display, laptop.OS, laptop.Graphics,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create laptop: %w", err)
	}
	laptop.ID = id
	return nil
}

func (r *SQLLaptopRepository) GetByID(ctx context.Context, id int64) (*models.Laptop, error) {
	laptop, err := scanLaptop(r.db.QueryRowContext(ctx, selectLaptopSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("laptop with ID %d %w", id, ErrLaptopNotFound)
		}
		return nil, fmt.Errorf("failed to get laptop by ID %d: %w", id, err)
	}
	return &laptop, nil
}

func (r *SQLLaptopRepository) GetAll(ctx context.Context) ([]models.Laptop, error) {
	rows, err := r.db.QueryContext(ctx, selectLaptopsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query laptops: %w", err)
	}
	defer rows.Close()

	laptops := make([]models.Laptop, 0)
	for rows.Next() {
		laptop, err := scanLaptop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan laptop row: %w", err)
		}
		laptops = append(laptops, laptop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during laptop row iteration: %w", err)
	}
	return laptops, nil
}

func (r *SQLLaptopRepository) Update(ctx context.Context, laptop *models.Laptop) error {
	res, err := r.db.ExecContext(ctx, updateLaptopSQL,
		laptop.Name, laptop.Description, laptop.Price, laptop.Processor, laptop.RAM,
		laptop.Storage, laptop.Display, laptop.OS, laptop.Graphics, laptop.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update laptop: %w", err)
	}
	return checkAffected(res, fmt.Sprintf("laptop with ID %d", laptop.ID), "for update")
}

func (r *SQLLaptopRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteLaptopSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete laptop: %w", err)
	}
	return checkAffected(res, fmt.Sprintf("laptop with ID %d", id), "for deletion")
}

func checkAffected(res sql.Result, subject, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %w %s", subject, ErrLaptopNotFound, op)
	}
	return nil
}
