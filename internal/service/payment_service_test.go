package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkumar/gym-booking/internal/model"
	"github.com/arkumar/gym-booking/internal/queue"
	"github.com/arkumar/gym-booking/internal/repository"
)

func newPaymentService(t *testing.T) (*PaymentService, sqlmock.Sqlmock, *fakePublisher) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	pub := &fakePublisher{}
	return NewPaymentService(repository.NewPaymentRepo(db), pub), mock, pub
}

func TestPaymentServiceCreate(t *testing.T) {
	svc, mock, pub := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
		WithArgs("u1", 999.0, model.MethodUPI,
			nil, nil, nil, nil, "rahul@okbank", nil,
			model.PaymentCompleted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payment_items`)).
		WithArgs(uint64(3), "sku-9", "Protein Shaker", 999.0, uint32(1), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT created_at FROM payments WHERE id = ?`)).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))
	mock.ExpectCommit()

	p := &model.Payment{
		UserID:         "u1",
		Amount:         999,
		PaymentMethod:  model.MethodUPI,
		PaymentDetails: model.PaymentDetails{UPIID: "rahul@okbank"},
		Items:          []model.PaymentItem{{ID: "sku-9", Name: "Protein Shaker", Price: 999, Quantity: 1}},
	}
	require.NoError(t, svc.Create(context.Background(), p))

	assert.Equal(t, uint64(3), p.ID)
	assert.Equal(t, model.PaymentCompleted, p.Status)
	_, err := uuid.Parse(p.TransactionID)
	assert.NoError(t, err, "transaction id should be a UUID")

	require.Len(t, pub.events, 1)
	assert.Equal(t, queue.TypePaymentCompleted, pub.events[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentServiceValidation(t *testing.T) {
	svc, mock, pub := newPaymentService(t)

	base := func() *model.Payment {
		return &model.Payment{
			UserID:        "u1",
			Amount:        500,
			PaymentMethod: model.MethodCard,
			PaymentDetails: model.PaymentDetails{
				CardName:   "Rahul Kumar",
				CardNumber: "4111111111111111",
				Expiry:     "09/27",
				CVV:        "123",
			},
		}
	}

	cases := []struct {
		name   string
		mutate func(p *model.Payment)
		msg    string
	}{
		{"missing user", func(p *model.Payment) { p.UserID = " " }, "User ID is required"},
		{"zero amount", func(p *model.Payment) { p.Amount = 0 }, "Amount must be greater than zero"},
		{"bad method", func(p *model.Payment) { p.PaymentMethod = "crypto" }, "Unsupported payment method"},
		{"missing card name", func(p *model.Payment) { p.PaymentDetails.CardName = "" }, "Cardholder name is required"},
		{"short card number", func(p *model.Payment) { p.PaymentDetails.CardNumber = "4111" }, "Card number must be 13 to 19 digits"},
		{"bad expiry month", func(p *model.Payment) { p.PaymentDetails.Expiry = "13/27" }, "Expiry must be in MM/YY format"},
		{"bad cvv", func(p *model.Payment) { p.PaymentDetails.CVV = "12" }, "CVV must be 3 or 4 digits"},
		{"bad upi", func(p *model.Payment) {
			p.PaymentMethod = model.MethodUPI
			p.PaymentDetails = model.PaymentDetails{UPIID: "not-an-upi"}
		}, "Invalid UPI ID"},
		{"missing bank", func(p *model.Payment) {
			p.PaymentMethod = model.MethodNetbanking
			p.PaymentDetails = model.PaymentDetails{}
		}, "Bank is required"},
		{"zero quantity item", func(p *model.Payment) {
			p.Items = []model.PaymentItem{{ID: "x", Name: "X", Price: 10, Quantity: 0}}
		}, "Item quantity must be at least 1"},
		{"negative item price", func(p *model.Payment) {
			p.Items = []model.PaymentItem{{ID: "x", Name: "X", Price: -1, Quantity: 1}}
		}, "Item price cannot be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base()
			tc.mutate(p)
			err := svc.Create(context.Background(), p)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.msg, ve.Msg)
		})
	}

	// Nothing must reach the database or the broker on validation failure.
	assert.Empty(t, pub.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}
