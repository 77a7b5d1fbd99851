package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-blob/pkg/simpleblob"
)

func newRecord(name string, createdAt time.Time) *simpleblob.FileRecord {
	return &simpleblob.FileRecord{
		ID:           uuid.New(),
		Name:         name,
		MediaType:    "text/plain",
		Size:         int64(len(name)),
		LastModified: createdAt.UnixMilli(),
		BackendName:  "memory",
		ObjectKey:    "files/aa/bb_" + name,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestRepository_CreateGet(t *testing.T) {
	repo := New()
	ctx := context.Background()

	record := newRecord("a.txt", time.Now().UTC())
	require.NoError(t, repo.CreateFile(ctx, record))

	got, err := repo.GetFile(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	// The stored record is a copy; mutating the original has no effect.
	record.Name = "changed"
	got, err = repo.GetFile(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.Name)
}

func TestRepository_GetMissing(t *testing.T) {
	repo := New()
	_, err := repo.GetFile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, simpleblob.ErrFileNotFound)
}

func TestRepository_ListOrdered(t *testing.T) {
	repo := New()
	ctx := context.Background()

	base := time.Now().UTC()
	for i, name := range []string{"c.txt", "a.txt", "b.txt"} {
		require.NoError(t, repo.CreateFile(ctx, newRecord(name, base.Add(time.Duration(i)*time.Second))))
	}

	records, err := repo.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c.txt", records[0].Name)
	assert.Equal(t, "a.txt", records[1].Name)
	assert.Equal(t, "b.txt", records[2].Name)
}

func TestRepository_Delete(t *testing.T) {
	repo := New()
	ctx := context.Background()

	record := newRecord("a.txt", time.Now().UTC())
	require.NoError(t, repo.CreateFile(ctx, record))
	require.NoError(t, repo.DeleteFile(ctx, record.ID))

	_, err := repo.GetFile(ctx, record.ID)
	assert.ErrorIs(t, err, simpleblob.ErrFileNotFound)

	err = repo.DeleteFile(ctx, record.ID)
	assert.ErrorIs(t, err, simpleblob.ErrFileNotFound)
}
