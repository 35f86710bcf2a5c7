package persistence

import (
	"context"

	"gorm.io/gorm"
)

// txContextKey carries the active transaction handle through a unit of work
type txContextKey struct{}

// GormUnitOfWork implements shared.UnitOfWork on top of a GORM transaction.
// The transaction handle travels in the context; repositories created over
// the base connection pick it up transparently via dbFromContext.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do runs fn inside a single database transaction. Every repository call
// made with the derived context joins the same transaction; an error from
// fn rolls everything back.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// dbFromContext resolves the connection for a repository call: the active
// transaction if the context carries one, otherwise the base connection
func dbFromContext(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return base.WithContext(ctx)
}
