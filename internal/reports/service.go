package reports

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vishalshettydev/Personal-Finance-Manager-sub000/internal/ledger"
)

// DataSource is the slice of Store the aggregation needs; split out so the
// service can be tested against an in-memory source.
type DataSource interface {
	ActiveAccounts(ctx context.Context, userID string) ([]ledger.Account, error)
	EntriesByAccount(ctx context.Context, userID string) (map[uuid.UUID][]ledger.Entry, error)
	PricePoints(ctx context.Context, userID string, accountID uuid.UUID) ([]ledger.PricePoint, error)
}

// UnavailableAccount marks an account whose balance could not be resolved.
// Per the propagation policy these render as "unavailable", never as zero.
type UnavailableAccount struct {
	AccountID uuid.UUID `json:"account_id"`
	Name      string    `json:"name"`
	Reason    string    `json:"reason"`
}

// AccountValuation is the per-account investment summary line.
type AccountValuation struct {
	AccountID                uuid.UUID       `json:"account_id"`
	Name                     string          `json:"name"`
	TypeName                 string          `json:"type_name"`
	InvestedBalance          decimal.Decimal `json:"invested_balance"`
	Units                    decimal.Decimal `json:"units"`
	MarketValue              decimal.Decimal `json:"market_value"`
	UnrealizedGain           decimal.Decimal `json:"unrealized_gain"`
	UnrealizedGainPercentage decimal.Decimal `json:"unrealized_gain_percentage"`
	HasPrice                 bool            `json:"has_price"`
}

// Snapshot is everything the report endpoints derive from one consistent
// read of the entry log. Balances are always recomputed here; the cached
// account balances never feed a report.
type Snapshot struct {
	Accounts     []ledger.Account
	Balances     map[uuid.UUID]decimal.Decimal
	MarketValues map[uuid.UUID]decimal.Decimal
	Investments  []AccountValuation
	Unavailable  []UnavailableAccount
}

type Service struct {
	Source DataSource
}

func NewService(source DataSource) *Service {
	return &Service{Source: source}
}

// Snapshot fetches accounts and entries, reduces balances through the ledger
// core, and marks investment holdings to market. The per-account price
// lookups are independent of one another and fan out concurrently; the
// snapshot is only assembled once every lookup has finished.
func (s *Service) Snapshot(ctx context.Context, userID string, asOf time.Time) (*Snapshot, error) {
	accounts, err := s.Source.ActiveAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.Source.EntriesByAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Accounts:     accounts,
		Balances:     make(map[uuid.UUID]decimal.Decimal, len(accounts)),
		MarketValues: make(map[uuid.UUID]decimal.Decimal),
	}

	type holding struct {
		account ledger.Account
		balance decimal.Decimal
		units   decimal.Decimal
	}
	var holdings []holding

	for _, acc := range accounts {
		balance, err := ledger.Balance(acc, entries[acc.ID])
		if err != nil {
			snap.Unavailable = append(snap.Unavailable, UnavailableAccount{
				AccountID: acc.ID,
				Name:      acc.Name,
				Reason:    err.Error(),
			})
			continue
		}
		snap.Balances[acc.ID] = balance

		if acc.IsInvestment() && !acc.IsPlaceholder {
			units, err := ledger.Units(acc, entries[acc.ID])
			if err != nil {
				snap.Unavailable = append(snap.Unavailable, UnavailableAccount{
					AccountID: acc.ID,
					Name:      acc.Name,
					Reason:    err.Error(),
				})
				continue
			}
			holdings = append(holdings, holding{account: acc, balance: balance, units: units})
		}
	}

	// independent lookups, no ordering requirement between them
	points := make(map[uuid.UUID][]ledger.PricePoint, len(holdings))
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		fetchErr error
	)
	for _, h := range holdings {
		wg.Add(1)
		go func(accountID uuid.UUID) {
			defer wg.Done()
			pts, err := s.Source.PricePoints(ctx, userID, accountID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if fetchErr == nil {
					fetchErr = err
				}
				return
			}
			points[accountID] = pts
		}(h.account.ID)
	}
	wg.Wait()
	if fetchErr != nil {
		return nil, fetchErr
	}

	for _, h := range holdings {
		var latest *ledger.PricePoint
		if p, ok := ledger.LatestPrice(points[h.account.ID], asOf); ok {
			latest = &p
		}
		v := ledger.ValueInvestment(h.balance, h.units, latest)
		snap.MarketValues[h.account.ID] = v.MarketValue
		snap.Investments = append(snap.Investments, AccountValuation{
			AccountID:                h.account.ID,
			Name:                     h.account.Name,
			TypeName:                 h.account.Type.Name,
			InvestedBalance:          h.balance,
			Units:                    h.units,
			MarketValue:              v.MarketValue,
			UnrealizedGain:           v.UnrealizedGain,
			UnrealizedGainPercentage: v.UnrealizedGainPercentage,
			HasPrice:                 v.HasPrice,
		})
	}
	sort.Slice(snap.Investments, func(i, j int) bool {
		return snap.Investments[i].Name < snap.Investments[j].Name
	})

	return snap, nil
}

// BalanceSheet assembles the full report from a snapshot.
func (s *Service) BalanceSheet(ctx context.Context, userID string, asOf time.Time) (ledger.BalanceSheet, []UnavailableAccount, error) {
	snap, err := s.Snapshot(ctx, userID, asOf)
	if err != nil {
		return ledger.BalanceSheet{}, nil, err
	}

	// accounts with an unresolved balance stay out of the totals; they are
	// reported separately instead of silently contributing zero
	resolved := make([]ledger.Account, 0, len(snap.Accounts))
	for _, acc := range snap.Accounts {
		if _, ok := snap.Balances[acc.ID]; ok || acc.IsPlaceholder {
			resolved = append(resolved, acc)
		}
	}

	return ledger.BuildBalanceSheet(resolved, snap.Balances, snap.MarketValues), snap.Unavailable, nil
}

// AccountTree builds the hierarchical chart-of-accounts view with roll-up
// totals from recomputed balances.
func (s *Service) AccountTree(ctx context.Context, userID string, asOf time.Time) ([]*ledger.TreeNode, []UnavailableAccount, error) {
	snap, err := s.Snapshot(ctx, userID, asOf)
	if err != nil {
		return nil, nil, err
	}
	tree, err := ledger.BuildHierarchy(snap.Accounts, snap.Balances)
	if err != nil {
		return nil, nil, err
	}
	return tree, snap.Unavailable, nil
}
