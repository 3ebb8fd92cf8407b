package main

import (
	"context"
	"database/sql"
	"time"

	inscripcionservice "coicit/internal/inscripcion/service"
	inscripcionstore "coicit/internal/inscripcion/store"
	dErrors "coicit/pkg/domain-errors"
)

const defaultInscripcionTxTimeout = 5 * time.Second

// inscripcionPostgresTx runs the enrollment rule checks inside one database
// transaction.
type inscripcionPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newInscripcionPostgresTx(db *sql.DB) *inscripcionPostgresTx {
	return &inscripcionPostgresTx{db: db}
}

func (t *inscripcionPostgresTx) RunInTx(ctx context.Context, fn func(store inscripcionservice.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transacción abortada: contexto cancelado")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultInscripcionTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(inscripcionstore.NewPostgresTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}
