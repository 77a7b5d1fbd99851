package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-blob/pkg/simpleblob"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simpleblob.Repository using PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE blob.file (
//	    id            UUID PRIMARY KEY,
//	    name          TEXT NOT NULL,
//	    media_type    TEXT NOT NULL DEFAULT '',
//	    size          BIGINT NOT NULL,
//	    last_modified BIGINT NOT NULL,
//	    backend_name  TEXT NOT NULL,
//	    object_key    TEXT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) simpleblob.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) simpleblob.Repository {
	return &Repository{db: pool}
}

func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("file already exists")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) CreateFile(ctx context.Context, record *simpleblob.FileRecord) error {
	query := `
		INSERT INTO blob.file (
			id, name, media_type, size, last_modified,
			backend_name, object_key, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		record.ID, record.Name, record.MediaType, record.Size, record.LastModified,
		record.BackendName, record.ObjectKey, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create file", err)
	}

	return nil
}

func (r *Repository) GetFile(ctx context.Context, id uuid.UUID) (*simpleblob.FileRecord, error) {
	query := `
		SELECT id, name, media_type, size, last_modified,
		       backend_name, object_key, created_at, updated_at
		FROM blob.file WHERE id = $1`

	var record simpleblob.FileRecord
	err := r.db.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.Name, &record.MediaType, &record.Size, &record.LastModified,
		&record.BackendName, &record.ObjectKey, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simpleblob.ErrFileNotFound
		}
		return nil, r.handlePostgresError("get file", err)
	}

	return &record, nil
}

func (r *Repository) ListFiles(ctx context.Context) ([]*simpleblob.FileRecord, error) {
	query := `
		SELECT id, name, media_type, size, last_modified,
		       backend_name, object_key, created_at, updated_at
		FROM blob.file ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list files", err)
	}
	defer rows.Close()

	var records []*simpleblob.FileRecord
	for rows.Next() {
		var record simpleblob.FileRecord
		if err := rows.Scan(
			&record.ID, &record.Name, &record.MediaType, &record.Size, &record.LastModified,
			&record.BackendName, &record.ObjectKey, &record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, r.handlePostgresError("list files", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list files", err)
	}

	return records, nil
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blob.file WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete file", err)
	}
	if tag.RowsAffected() == 0 {
		return simpleblob.ErrFileNotFound
	}
	return nil
}
