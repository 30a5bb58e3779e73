package reports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
)

// Store fetches the raw rows the aggregation runs over. All computation
// happens in the ledger package; the queries here only materialize snapshots.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

func (s *Store) ActiveAccounts(ctx context.Context, userID string) ([]ledger.Account, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT a.id::text, a.parent_id::text, a.name, COALESCE(a.code, ''), a.is_placeholder, a.is_active,
		       t.id::text, t.name, t.category, t.normal_balance
		FROM accounts a
		JOIN account_types t ON t.id = a.account_type_id
		WHERE a.is_active AND (a.user_id IS NULL OR a.user_id = $1::uuid)
		ORDER BY a.name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ledger.Account, 0)
	for rows.Next() {
		var (
			id, typeID          string
			parentID            *string
			typeName, cat, norm string
			acc                 ledger.Account
		)
		if err := rows.Scan(&id, &parentID, &acc.Name, &acc.Code, &acc.IsPlaceholder, &acc.IsActive,
			&typeID, &typeName, &cat, &norm); err != nil {
			return nil, err
		}
		if acc.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if parentID != nil {
			p, err := uuid.Parse(*parentID)
			if err != nil {
				return nil, err
			}
			acc.ParentID = &p
		}
		tid, err := uuid.Parse(typeID)
		if err != nil {
			return nil, err
		}
		acc.Type = ledger.AccountType{
			ID:            tid,
			Name:          typeName,
			Category:      ledger.Category(cat),
			NormalBalance: ledger.Side(norm),
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

func (s *Store) EntriesByAccount(ctx context.Context, userID string) (map[uuid.UUID][]ledger.Entry, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT e.account_id::text, e.entry_side, e.quantity::text, e.price::text, e.amount::text, e.line_number
		FROM transaction_entries e
		JOIN transactions tx ON tx.id = e.transaction_id
		WHERE tx.user_id = $1::uuid
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]ledger.Entry)
	for rows.Next() {
		var (
			accID, side             string
			quantity, price, amount string
			e                       ledger.Entry
		)
		if err := rows.Scan(&accID, &side, &quantity, &price, &amount, &e.LineNumber); err != nil {
			return nil, err
		}
		if e.AccountID, err = uuid.Parse(accID); err != nil {
			return nil, err
		}
		e.Side = ledger.Side(side)
		if e.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, err
		}
		if e.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		out[e.AccountID] = append(out[e.AccountID], e)
	}
	return out, rows.Err()
}

func (s *Store) PricePoints(ctx context.Context, userID string, accountID uuid.UUID) ([]ledger.PricePoint, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT price::text, price_date, created_at
		FROM account_prices
		WHERE account_id = $1::uuid AND user_id = $2::uuid
	`, accountID.String(), userID)
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
