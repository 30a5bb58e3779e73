package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
)

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrAccountNotFound    = errors.New("entry references an unknown account")
	ErrPlaceholderAccount = errors.New("entry references a placeholder account")
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// NewTransaction carries the header fields of a transaction being posted.
type NewTransaction struct {
	Description     string
	Date            time.Time
	ReferenceNumber *string
	Notes           *string
	IsSplit         bool
	TotalAmount     decimal.Decimal
}

// CreateWithEntries posts a transaction atomically: either the header and
// every entry land, or nothing does. Entries must already have passed the
// ledger validators; this method still refuses placeholder or unknown
// accounts since only the database can see concurrent edits.
//
// The cached accounts.balance column is refreshed inside the same database
// transaction. It is informational only; reads always recompute from entries.
func (r *Repo) CreateWithEntries(ctx context.Context, userID string, t NewTransaction, entries []ledger.Entry) (string, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	type accountInfo struct {
		placeholder bool
		normal      ledger.Side
	}
	seen := make(map[string]accountInfo)
	deltas := make(map[string]decimal.Decimal)

	for _, e := range entries {
		accID := e.AccountID.String()
		info, ok := seen[accID]
		if !ok {
			var placeholder bool
			var normal string
			err := tx.QueryRow(ctx, `
				SELECT a.is_placeholder, t.normal_balance
				FROM accounts a
				JOIN account_types t ON t.id = a.account_type_id
				WHERE a.id = $1::uuid AND a.is_active AND (a.user_id IS NULL OR a.user_id = $2::uuid)
			`, accID, userID).Scan(&placeholder, &normal)
			if errors.Is(err, pgx.ErrNoRows) {
				return "", ErrAccountNotFound
			}
			if err != nil {
				return "", err
			}
			info = accountInfo{placeholder: placeholder, normal: ledger.Side(normal)}
			seen[accID] = info
		}
		if info.placeholder {
			return "", ErrPlaceholderAccount
		}

		delta := e.Amount
		if e.Side != info.normal {
			delta = delta.Neg()
		}
		deltas[accID] = deltas[accID].Add(delta)
	}

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (user_id, reference_number, description, transaction_date, total_amount, notes, is_split)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		RETURNING id::text
	`, userID, t.ReferenceNumber, t.Description, t.Date, t.TotalAmount.StringFixed(2), t.Notes, t.IsSplit).Scan(&id)
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		var desc *string
		if e.Description != "" {
			d := e.Description
			desc = &d
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO transaction_entries (transaction_id, account_id, entry_side, quantity, price, amount, line_number, description)
			VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, $8)
		`, id, e.AccountID.String(), string(e.Side),
			e.Quantity.String(), e.Price.String(), e.Amount.StringFixed(2),
			e.LineNumber, desc)
		if err != nil {
			return "", err
		}
	}

	for accID, delta := range deltas {
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET balance = balance + $2::numeric, updated_at = NOW()
			WHERE id = $1::uuid
		`, accID, delta.StringFixed(2)); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// List returns transaction headers newest first, optionally filtered by date
// range and tag name.
func (r *Repo) List(ctx context.Context, userID string, limit int, from, to, tag string) ([]Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT DISTINCT tx.id::text, tx.user_id::text, tx.reference_number, tx.description,
		       tx.transaction_date::text, tx.total_amount::text, tx.notes, tx.is_split, tx.created_at
		FROM transactions tx
		LEFT JOIN transaction_tags tt ON tt.transaction_id = tx.id
		LEFT JOIN tags tg ON tg.id = tt.tag_id
		WHERE tx.user_id = $1::uuid
		  AND ($2 = '' OR tx.transaction_date >= $2::date)
		  AND ($3 = '' OR tx.transaction_date <= $3::date)
		  AND ($4 = '' OR tg.name = $4)
		ORDER BY tx.transaction_date DESC, tx.created_at DESC
		LIMIT $5
	`, userID, from, to, tag, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0, limit)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	var total string
	err := row.Scan(&t.ID, &t.UserID, &t.ReferenceNumber, &t.Description,
		&t.TransactionDate, &total, &t.Notes, &t.IsSplit, &t.CreatedAt)
	if err != nil {
		return Transaction{}, err
	}
	t.TotalAmount, err = decimal.NewFromString(total)
	if err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Get loads one transaction header plus its entries in posting order.
func (r *Repo) Get(ctx context.Context, userID, id string) (Transaction, []EntryView, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, reference_number, description,
		       transaction_date::text, total_amount::text, notes, is_split, created_at
		FROM transactions
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)

	t, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, nil, ErrNotFound
	}
	if err != nil {
		return Transaction{}, nil, err
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT e.id::text, e.account_id::text, a.name, e.entry_side,
		       e.quantity::text, e.price::text, e.amount::text, e.line_number, e.description
		FROM transaction_entries e
		JOIN accounts a ON a.id = e.account_id
		WHERE e.transaction_id = $1::uuid
		ORDER BY e.line_number
	`, id)
	if err != nil {
		return Transaction{}, nil, err
	}
	defer rows.Close()

	entries := make([]EntryView, 0)
	for rows.Next() {
		var e EntryView
		var quantity, price, amount string
		if err := rows.Scan(&e.ID, &e.AccountID, &e.AccountName, &e.Side,
			&quantity, &price, &amount, &e.LineNumber, &e.Description); err != nil {
			return Transaction{}, nil, err
		}
		if e.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return Transaction{}, nil, err
		}
		if e.Price, err = decimal.NewFromString(price); err != nil {
			return Transaction{}, nil, err
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return Transaction{}, nil, err
		}
		entries = append(entries, e)
	}
	return t, entries, rows.Err()
}

// UpdateMetadata edits the header fields only; posted entries never change.
func (r *Repo) UpdateMetadata(ctx context.Context, userID, id string, req UpdateTransactionRequest) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE transactions SET
			description      = COALESCE($3, description),
			reference_number = COALESCE($4, reference_number),
			notes            = COALESCE($5, notes),
			updated_at       = NOW()
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID, req.Description, req.ReferenceNumber, req.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
