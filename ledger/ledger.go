// Package ledger owns every mutation that touches a product's stock counters:
// cart lines, seller stock edits, order placement and drift repair.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
	StatusRemoved Status = "removed"
)

// Result is returned by the cart mutations. Line is nil once the line is gone.
type Result struct {
	Status Status           `json:"status"`
	Line   *models.CartLine `json:"line,omitempty"`
}

type Options struct {
	// MaxRetries bounds how many times a transaction that lost a stock race is re-run.
	MaxRetries    int
	RetryInterval time.Duration
}

type Ledger struct {
	db   *gorm.DB
	opts Options
}

func New(db *gorm.DB, opts Options) *Ledger {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 20 * time.Millisecond
	}
	return &Ledger{db: db, opts: opts}
}

// DB exposes the underlying handle for read-only catalog queries.
func (l *Ledger) DB() *gorm.DB {
	return l.db
}

// transact runs fn in a database transaction, re-running it with exponential
// backoff while it fails with ErrStockConflict.
func (l *Ledger) transact(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.opts.RetryInterval
	b.Reset()

	attempt := 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(l.opts.MaxRetries)), ctx)
	return backoff.Retry(func() error {
		attempt++
		err := l.db.WithContext(ctx).Transaction(fn)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrStockConflict) {
			log.Warn().Err(err).Str("op", op).Int("attempt", attempt).Msg("Stock race lost, retrying")
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}
