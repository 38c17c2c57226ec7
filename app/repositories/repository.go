package repositories

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Store owns the badger handle and hands out the repositories built on it.
type Store struct {
	db       *badger.DB
	dbPath   string
	isTestDB bool

	Posts    *BadgerPostRepository
	Comments *BadgerCommentRepository
	Users    *BadgerUserRepository
}

// Open opens (or creates) the database at path. An empty path or "test_db"
// opens a throwaway directory that Close removes.
func Open(path string, logger *zap.Logger) (*Store, error) {
	isTest := false
	if path == "" || path == "test_db" {
		tempPath, err := os.MkdirTemp("", "quillblog_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}

	opts := badger.DefaultOptions(path).WithLogger(newBadgerLogger(logger))
	if isTest {
		opts = opts.WithSyncWrites(false).WithNumVersionsToKeep(1)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	s := NewStore(db)
	s.dbPath = path
	s.isTestDB = isTest
	return s, nil
}

// OpenInMemory opens a database that lives only in memory.
func OpenInMemory(logger *zap.Logger) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(newBadgerLogger(logger)))
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// NewStore wraps an already open database.
func NewStore(db *badger.DB) *Store {
	return &Store{
		db:       db,
		Posts:    NewBadgerPostRepository(db),
		Comments: NewBadgerCommentRepository(db),
		Users:    NewBadgerUserRepository(db),
	}
}

// DB exposes the underlying handle for backup and restore.
func (s *Store) DB() *badger.DB {
	return s.db
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}

	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %w", err)
		}
	}
	return nil
}

// Clear drops every key, sequences included.
func (s *Store) Clear() error {
	return s.db.DropAll()
}

// badgerLogger routes badger's internal logging through zap.
type badgerLogger struct {
	sugar *zap.SugaredLogger
}

func newBadgerLogger(logger *zap.Logger) badger.Logger {
	if logger == nil {
		return nil
	}
	return &badgerLogger{sugar: logger.Named("badger").Sugar()}
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.sugar.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.sugar.Debugf(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.sugar.Debugf(format, args...) }
