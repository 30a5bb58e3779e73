package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrHasEntries     = errors.New("account has posted entries")
	ErrCyclicParent   = errors.New("parent assignment would create a cycle")
	ErrTypeNotFound   = errors.New("account type not found")
	ErrParentNotFound = errors.New("parent account not found")
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const accountColumns = `
	a.id::text, a.user_id::text, a.parent_id::text, a.account_type_id::text,
	a.name, a.code, a.description, a.is_placeholder, a.is_active,
	a.balance::text, a.created_at,
	t.id::text, t.name, t.category, t.normal_balance`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	var balance string
	err := row.Scan(
		&a.ID, &a.UserID, &a.ParentID, &a.AccountTypeID,
		&a.Name, &a.Code, &a.Description, &a.IsPlaceholder, &a.IsActive,
		&balance, &a.CreatedAt,
		&a.Type.ID, &a.Type.Name, &a.Type.Category, &a.Type.NormalBalance,
	)
	if err != nil {
		return Account{}, err
	}
	a.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

func (r *Repository) ListTypes(ctx context.Context) ([]AccountType, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id::text, name, category, normal_balance
		FROM account_types
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AccountType, 0)
	for rows.Next() {
		var t AccountType
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.NormalBalance); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, userID string, req CreateAccountRequest) (string, error) {
	var exists bool
	if err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM account_types WHERE id = $1::uuid)`,
		req.AccountTypeID,
	).Scan(&exists); err != nil {
		return "", err
	}
	if !exists {
		return "", ErrTypeNotFound
	}

	if req.ParentID != nil {
		if err := r.Pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM accounts
				WHERE id = $1::uuid AND (user_id IS NULL OR user_id = $2::uuid)
			)`, *req.ParentID, userID,
		).Scan(&exists); err != nil {
			return "", err
		}
		if !exists {
			return "", ErrParentNotFound
		}
	}

	var id string
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO accounts (user_id, parent_id, account_type_id, name, code, description, is_placeholder)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7)
		RETURNING id::text
	`, userID, req.ParentID, req.AccountTypeID, req.Name, req.Code, req.Description, req.IsPlaceholder).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListByUser returns the user's accounts plus shared/system accounts, with
// their type resolved. Inactive accounts are included only when asked.
func (r *Repository) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]Account, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		JOIN account_types t ON t.id = a.account_type_id
		WHERE (a.user_id IS NULL OR a.user_id = $1::uuid)
		  AND (a.is_active OR $2)
		ORDER BY a.name
	`, userID, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Account, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		JOIN account_types t ON t.id = a.account_type_id
		WHERE a.id = $1::uuid AND (a.user_id IS NULL OR a.user_id = $2::uuid)
	`, id, userID)

	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return a, err
}

// HasEntries reports whether any posted line references the account. Used to
// keep the account type immutable once posted against and to refuse turning
// a posted account into a placeholder.
func (r *Repository) HasEntries(ctx context.Context, id string) (bool, error) {
	var has bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transaction_entries WHERE account_id = $1::uuid)`,
		id,
	).Scan(&has)
	return has, err
}

// Update edits account metadata. The account type is deliberately not
// editable here. A parent change is rejected when it would close a cycle;
// the ancestor walk runs in SQL so the check and the write see the same data.
func (r *Repository) Update(ctx context.Context, userID, id string, req UpdateAccountRequest) error {
	if req.IsPlaceholder != nil && *req.IsPlaceholder {
		has, err := r.HasEntries(ctx, id)
		if err != nil {
			return err
		}
		if has {
			return ErrHasEntries
		}
	}

	if req.ParentID != nil {
		if *req.ParentID == id {
			return ErrCyclicParent
		}
		var cyclic bool
		err := r.Pool.QueryRow(ctx, `
			WITH RECURSIVE ancestors AS (
				SELECT id, parent_id FROM accounts WHERE id = $1::uuid
				UNION ALL
				SELECT a.id, a.parent_id
				FROM accounts a
				JOIN ancestors anc ON a.id = anc.parent_id
			)
			SELECT EXISTS (SELECT 1 FROM ancestors WHERE id = $2::uuid)
		`, *req.ParentID, id).Scan(&cyclic)
		if err != nil {
			return err
		}
		if cyclic {
			return ErrCyclicParent
		}
	}

	tag, err := r.Pool.Exec(ctx, `
		UPDATE accounts SET
			name           = COALESCE($3, name),
			parent_id      = COALESCE($4::uuid, parent_id),
			code           = COALESCE($5, code),
			description    = COALESCE($6, description),
			is_placeholder = COALESCE($7, is_placeholder),
			updated_at     = NOW()
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID, req.Name, req.ParentID, req.Code, req.Description, req.IsPlaceholder)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate is the only removal path; accounts are never hard-deleted.
func (r *Repository) Deactivate(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE accounts SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
