package repo

import (
	"context"
	"database/sql"

	"github.com/airbean/airbean-api/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// base routes queries through the transaction carried in ctx when present.
type base struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func newBase(db *sqlx.DB) base {
	return base{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (b base) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return b.db.ExecContext(ctx, query, args...)
}

func (b base) getContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return b.db.GetContext(ctx, dest, query, args...)
}

func (b base) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return b.db.SelectContext(ctx, dest, query, args...)
}
