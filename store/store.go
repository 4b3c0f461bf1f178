package store

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ardnew/dragon/log"
)

// Memory opens a database that lives only as long as the Store.
const Memory = ":memory:"

// DefaultFile is the database file name within the cache directory.
const DefaultFile = "history.db"

// Option configures a [Store].
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the logger SQL statements are traced to.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Store is the play history.
type Store struct {
	db     *gorm.DB
	logger log.Logger
}

// Open opens or creates the database at path and migrates its schema.
// Path may be [Memory].
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	var o options

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, ErrOpen.Wrap(err).With(slog.String("path", path))
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger{o.logger},
	})
	if err != nil {
		return nil, ErrOpen.Wrap(err).With(slog.String("path", path))
	}

	if path == Memory {
		// each connection would get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, ErrOpen.Wrap(err)
		}

		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.WithContext(ctx).AutoMigrate(&Record{}); err != nil {
		return nil, ErrOpen.Wrap(err).With(slog.String("path", path))
	}

	o.logger.DebugContext(ctx, "history opened", slog.String("path", path))

	return &Store{db: db, logger: o.logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Save inserts r and sets its ID and CreatedAt.
func (s *Store) Save(ctx context.Context, r *Record) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return ErrQuery.Wrap(err).With(slog.String("level", r.Level))
	}

	return nil
}

// List returns the most recent records, newest first. A limit less than 1
// returns every record. If level is not empty only its records are listed.
func (s *Store) List(ctx context.Context, level string, limit int) ([]Record, error) {
	q := s.db.WithContext(ctx).Model(&Record{}).Order("created_at desc, id desc")

	if level != "" {
		q = q.Where("level = ?", level)
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []Record
	if err := q.Find(&records).Error; err != nil {
		return nil, ErrQuery.Wrap(err)
	}

	return records, nil
}

// Clear soft-deletes every record and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	tx := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&Record{})
	if tx.Error != nil {
		return 0, ErrQuery.Wrap(tx.Error)
	}

	return tx.RowsAffected, nil
}

// Count returns the number of records, including deleted ones if
// unscoped is set.
func (s *Store) Count(ctx context.Context, unscoped bool) (int64, error) {
	q := s.db.WithContext(ctx)
	if unscoped {
		q = q.Unscoped()
	}

	var n int64
	if err := q.Model(&Record{}).Count(&n).Error; err != nil {
		return 0, ErrQuery.Wrap(err)
	}

	return n, nil
}
