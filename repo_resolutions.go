package mfa

import (
	"context"
	"database/sql"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Resolutions persists the resolution audit trail.
type Resolutions interface {
	repository.Repository[*ResolutionRecord]

	Record(ctx context.Context, event ActivityEvent) (*ResolutionRecord, error)
	RecordTx(ctx context.Context, tx bun.IDB, event ActivityEvent) (*ResolutionRecord, error)
	LatestForUser(ctx context.Context, username string) (*ResolutionRecord, error)
}

type resolutions struct {
	repository.Repository[*ResolutionRecord]
	db *bun.DB
}

var (
	_ Resolutions                              = (*resolutions)(nil)
	_ repository.Repository[*ResolutionRecord] = (*resolutions)(nil)
)

// NewResolutionsRepository creates the audit repository on a Bun DB.
func NewResolutionsRepository(db *bun.DB) Resolutions {
	repo := repository.NewRepository[*ResolutionRecord](db, repository.ModelHandlers[*ResolutionRecord]{
		NewRecord: func() *ResolutionRecord { return &ResolutionRecord{} },
		GetID: func(r *ResolutionRecord) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *ResolutionRecord, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &resolutions{
		Repository: repo,
		db:         db,
	}
}

func (r *resolutions) Record(ctx context.Context, event ActivityEvent) (*ResolutionRecord, error) {
	return r.RecordTx(ctx, r.db, event)
}

func (r *resolutions) RecordTx(ctx context.Context, tx bun.IDB, event ActivityEvent) (*ResolutionRecord, error) {
	return r.Repository.CreateTx(ctx, tx, NewResolutionRecord(event))
}

// LatestForUser returns the most recent audit record for username, or nil
// when none exists.
func (r *resolutions) LatestForUser(ctx context.Context, username string) (*ResolutionRecord, error) {
	record := &ResolutionRecord{}

	err := r.db.NewSelect().
		Model(record).
		Where("username = ?", username).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Validate() error
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
	Resolutions() Resolutions
}

type mngr struct {
	db          *bun.DB
	resolutions Resolutions
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:          db,
		resolutions: NewResolutionsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.resolutions == nil {
		return errors.New("repository resolutions should be initialized")
	}
	return nil
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	return m.db.RunInTx(ctx, opts, fn)
}

func (m mngr) Resolutions() Resolutions {
	return m.resolutions
}

// NewRecorderSink adapts the audit repository into an ActivitySink so the
// resolver can persist every resolution outcome.
func NewRecorderSink(repo Resolutions) ActivitySink {
	return ActivitySinkFunc(func(ctx context.Context, event ActivityEvent) error {
		_, err := repo.Record(ctx, event)
		return err
	})
}
