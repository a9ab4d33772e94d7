package repository

import (
	"context"
	"database/sql"

	"github.com/arkumar/gym-booking/internal/model"
)

// PaymentRepo persists the standalone payment ledger.  Payments carry their
// cart line items in the payment_items table; both are written in one
// transaction so a ledger entry is never missing its items.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// nullable converts an empty string to a NULL column value so unused
// method-specific detail columns stay NULL instead of empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create inserts a payment together with its line items.  The generated ID
// and creation timestamp are populated on the provided record.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO payments (user_id, amount, payment_method, card_name, card_number, expiry, cvv, upi_id, bank, status, transaction_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	d := p.PaymentDetails
	res, err := tx.ExecContext(ctx, q,
		p.UserID, p.Amount, p.PaymentMethod,
		nullable(d.CardName), nullable(d.CardNumber), nullable(d.Expiry), nullable(d.CVV),
		nullable(d.UPIID), nullable(d.Bank),
		p.Status, nullable(p.TransactionID))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	if len(p.Items) > 0 {
		query := `INSERT INTO payment_items (payment_id, item_id, name, price, quantity, image) VALUES `
		args := make([]any, 0, len(p.Items)*6)
		for i, it := range p.Items {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?)"
			args = append(args, p.ID, it.ID, it.Name, it.Price, it.Quantity, nullable(it.Image))
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM payments WHERE id = ?`, p.ID).Scan(&p.CreatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByUser returns a user's payments, newest first, with items attached.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	const q = `SELECT id, user_id, amount, payment_method, card_name, card_number, expiry, cvv, upi_id, bank, status, transaction_id, created_at
	           FROM payments WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		var cardName, cardNumber, expiry, cvv, upiID, bank, txnID sql.NullString
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Amount, &p.PaymentMethod,
			&cardName, &cardNumber, &expiry, &cvv, &upiID, &bank,
			&p.Status, &txnID, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.PaymentDetails = model.PaymentDetails{
			CardName:   cardName.String,
			CardNumber: cardNumber.String,
			Expiry:     expiry.String,
			CVV:        cvv.String,
			UPIID:      upiID.String,
			Bank:       bank.String,
		}
		p.TransactionID = txnID.String
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Attach line items.  Payment lists are short, so one query per payment
	// keeps the code simple.
	for i := range payments {
		items, err := r.itemsFor(ctx, payments[i].ID)
		if err != nil {
			return nil, err
		}
		payments[i].Items = items
	}
	return payments, nil
}

func (r *PaymentRepo) itemsFor(ctx context.Context, paymentID uint64) ([]model.PaymentItem, error) {
	const q = `SELECT item_id, name, price, quantity, image FROM payment_items WHERE payment_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.PaymentItem, 0)
	for rows.Next() {
		var it model.PaymentItem
		var image sql.NullString
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity, &image); err != nil {
			return nil, err
		}
		it.Image = image.String
		items = append(items, it)
	}
	return items, rows.Err()
}
