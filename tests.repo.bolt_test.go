package main

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/boltdb/bolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltStore returns a new instance of bolt store in a temporary path.
func newTestBoltStore() (*boltBookStorage, error) {
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.books",
		},
	}

	client, err := GetBoltDBClient(testConfig)
	if err != nil {
		return nil, err
	}

	return &boltBookStorage{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.BoltDB,
	}, nil
}

// closeTestBoltStore closes the temporary bolt store and removes the underlying data file.
func (bs *boltBookStorage) closeTestBoltStore() error {
	defer os.Remove(bs.config.FilePath)
	return bs.Close()
}

func TestBoltStore(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	books := []Book{
		{Title: "Zen and the Art", Author: "Robert Pirsig", Year: "1974", ISBN: "9780060839871"},
		{Title: "Anna Karenina", Author: "Leo Tolstoy", Year: "1878", ISBN: "9780143035008"},
		{Title: "Middlemarch", Author: "George Eliot", Year: "1871", ISBN: "9780141439549"},
	}

	t.Run("Load Empty Bucket", func(t *testing.T) {
		got, err := bs.Load(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Persist Keeps Insertion Order", func(t *testing.T) {
		err := bs.Persist(context.Background(), books)
		require.NoError(t, err)
		got, err := bs.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, books, got)
	})

	t.Run("Persist Overwrites Previous Content", func(t *testing.T) {
		err := bs.Persist(context.Background(), books[2:])
		require.NoError(t, err)
		got, err := bs.Load(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, books[2:], got)
	})

	t.Run("Persist Empty List", func(t *testing.T) {
		err := bs.Persist(context.Background(), []Book{})
		require.NoError(t, err)
		got, err := bs.Load(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Load Missing Bucket", func(t *testing.T) {
		err := bs.client.Update(func(tx *bolt.Tx) error {
			return tx.DeleteBucket([]byte(bs.config.BucketName))
		})
		require.NoError(t, err)
		got, err := bs.Load(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSequenceKey_Ordering(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, sequenceKey(1))
	assert.Equal(t, -1, bytes.Compare(sequenceKey(9), sequenceKey(10)))
	assert.Equal(t, -1, bytes.Compare(sequenceKey(255), sequenceKey(256)))
}
