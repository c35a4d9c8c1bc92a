package payment

import (
	"database/sql"
	"errors"
	"fmt"
)

var ErrPaymentNotFound = errors.New("payment not found")

type Repository interface {
	insert(payment *Payment) (int64, error)
	getByUid(uid string) (*Payment, error)
	getAll() ([]*Payment, error)
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) Repository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) insert(payment *Payment) (int64, error) {
	query := `
		INSERT INTO payments (uid, card_number, card_holder_name, expiry_date, amount, currency, cvv, payment_date, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(query,
		payment.Uid,
		payment.CardNumber,
		payment.CardHolderName,
		payment.ExpiryDate,
		payment.Amount,
		payment.Currency,
		payment.Cvv,
		payment.PaymentDate,
		payment.State,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create payment: %v", err)
	}

	payment.ID = id
	return id, nil
}

func (r *paymentRepository) getByUid(uid string) (*Payment, error) {
	query := `
		SELECT id, uid, card_number, card_holder_name, expiry_date, amount, currency, cvv, payment_date, state
		FROM payments
		WHERE uid = $1;
	`
	var p Payment
	err := r.db.QueryRow(query, uid).Scan(
		&p.ID, &p.Uid, &p.CardNumber, &p.CardHolderName, &p.ExpiryDate,
		&p.Amount, &p.Currency, &p.Cvv, &p.PaymentDate, &p.State,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("could not find payment: %v", err)
	}

	return &p, nil
}

func (r *paymentRepository) getAll() ([]*Payment, error) {
	query := `
		SELECT id, uid, card_number, card_holder_name, expiry_date, amount, currency, cvv, payment_date, state
		FROM payments
		ORDER BY id;
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("could not list payments: %v", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(
			&p.ID, &p.Uid, &p.CardNumber, &p.CardHolderName, &p.ExpiryDate,
			&p.Amount, &p.Currency, &p.Cvv, &p.PaymentDate, &p.State,
		); err != nil {
			return nil, fmt.Errorf("could not scan payment: %v", err)
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list payments: %v", err)
	}
	return payments, nil
}
