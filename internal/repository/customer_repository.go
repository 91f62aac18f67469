package repository

import (
	"database/sql"
	"errors"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
)

type CustomerRepositoryInterface interface {
	GetByID(id int) (*model.Customer, error)
	ListAll() ([]model.Customer, error)
}

type CustomerRepository struct {
	DB *sql.DB
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

func (r *CustomerRepository) GetByID(id int) (*model.Customer, error) {
	query := `
        SELECT id, phone, first_name, last_name, location, preferred_product
        FROM customers
        WHERE id = $1
    `
	var c model.Customer
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Phone, &c.FirstName, &c.LastName, &c.Location, &c.PreferredProduct)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// ListAll fetches all customers (used when sending campaigns).
func (r *CustomerRepository) ListAll() ([]model.Customer, error) {
	query := `
        SELECT id, phone, first_name, last_name, location, preferred_product
        FROM customers
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Phone, &c.FirstName, &c.LastName, &c.Location, &c.PreferredProduct); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
