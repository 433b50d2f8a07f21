package postgresql

import (
	"context"
	"testing"

	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTx struct {
	pgx.Tx
}

func TestGetQuerier(t *testing.T) {
	db := &database.DB{}

	t.Run("returns the transaction when the context carries one", func(t *testing.T) {
		tx := stubTx{}
		ctx := ContextWithTx(context.Background(), tx)

		q := GetQuerier(ctx, db)
		require.Equal(t, tx, q)
	})

	t.Run("falls back to the pool on a plain context", func(t *testing.T) {
		q := GetQuerier(context.Background(), db)
		_, isTx := q.(pgx.Tx)
		assert.False(t, isTx)
	})

	t.Run("ignores transactions stored under foreign keys", func(t *testing.T) {
		type foreignKey struct{}
		ctx := context.WithValue(context.Background(), foreignKey{}, stubTx{})
		q := GetQuerier(ctx, db)
		_, isTx := q.(pgx.Tx)
		assert.False(t, isTx)
	})
}
