package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/paypost/go-paypost/internal/util"
	"github.com/pkg/errors"
)

type TxFn func(tx *sql.Tx) error

// WithTransaction runs f inside a database transaction. The transaction is committed if f returns
// nil and rolled back otherwise (or if f panics, in which case the panic is re-raised).
func WithTransaction(ctx context.Context, db *sql.DB, f TxFn) error {
	return WithConfiguredTransaction(ctx, db, nil, f)
}

func WithConfiguredTransaction(ctx context.Context, db *sql.DB, options *sql.TxOptions, f TxFn) (err error) {
	tx, err := db.BeginTx(ctx, options)
	if err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to start transaction")
		return errors.Wrap(err, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			util.LogFromContext(ctx).Error().Interface("p", p).Msg("Recovered from panic, rolling back transaction and panicking again")

			if txErr := tx.Rollback(); txErr != nil {
				util.LogFromContext(ctx).Warn().Err(txErr).Msg("Failed to roll back transaction after recovering from panic")
			}

			panic(p)
		} else if err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Msg("Received error, rolling back transaction")

			if txErr := tx.Rollback(); txErr != nil {
				util.LogFromContext(ctx).Warn().Err(txErr).Msg("Failed to roll back transaction after receiving error")
			}
		} else {
			err = errors.Wrap(tx.Commit(), "failed to commit transaction")
			if err != nil {
				util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to commit transaction")
			}
		}
	}()

	err = f(tx)

	return err
}

// EscapeLike escapes the LIKE wildcards % and _ in val.
func EscapeLike(val string) string {
	res := strings.ReplaceAll(val, "%", "\\%")
	res = strings.ReplaceAll(res, "_", "\\_")
	return res
}

// LikeSearchPattern turns free text into a "%term%" pattern with wildcards in the text escaped.
func LikeSearchPattern(val string) string {
	return "%" + EscapeLike(strings.TrimSpace(val)) + "%"
}
