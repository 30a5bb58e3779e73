package prices

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
	ErrAccountNotFound  = errors.New("account not found")
	ErrNotInvestment    = errors.New("account is not an investment account")
	ErrNoPriceAvailable = errors.New("no price available")
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// Add records a price observation. Only investment accounts take prices; the
// classification is the same type-name heuristic the valuation path uses.
func (r *Repo) Add(ctx context.Context, userID string, req CreatePriceRequest, priceDate time.Time) (string, error) {
	var typeName string
	err := r.Pool.QueryRow(ctx, `
		SELECT t.name
		FROM accounts a
		JOIN account_types t ON t.id = a.account_type_id
		WHERE a.id = $1::uuid AND (a.user_id IS NULL OR a.user_id = $2::uuid)
	`, req.AccountID, userID).Scan(&typeName)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrAccountNotFound
	}
	if err != nil {
		return "", err
	}

	probe := ledger.Account{Type: ledger.AccountType{Name: typeName}}
	if !probe.IsInvestment() {
		return "", ErrNotInvestment
	}

	var id string
	err = r.Pool.QueryRow(ctx, `
		INSERT INTO account_prices (user_id, account_id, price, price_date, notes)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		RETURNING id::text
	`, userID, req.AccountID, req.Price.String(), priceDate, req.Notes).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListByAccount returns all observations for one account, newest first.
func (r *Repo) ListByAccount(ctx context.Context, userID, accountID string) ([]AccountPrice, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id::text, account_id::text, price::text, price_date::text, notes, created_at
		FROM account_prices
		WHERE account_id = $1::uuid AND user_id = $2::uuid
		ORDER BY price_date DESC, created_at DESC
	`, accountID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AccountPrice, 0)
	for rows.Next() {
		var p AccountPrice
		var price string
		if err := rows.Scan(&p.ID, &p.AccountID, &price, &p.PriceDate, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PointsByAccount returns the observations shaped for the ledger core.
func (r *Repo) PointsByAccount(ctx context.Context, userID, accountID string) ([]ledger.PricePoint, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT price::text, price_date, created_at
		FROM account_prices
		WHERE account_id = $1::uuid AND user_id = $2::uuid
	`, accountID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ledger.PricePoint, 0)
	for rows.Next() {
		var p ledger.PricePoint
		var price string
		if err := rows.Scan(&price, &p.Date, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
