package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/dualseed/domain"
)

type execCall struct {
	sql  string
	args []any
}

type execStub struct {
	calls []execCall
	err   error
}

func (e *execStub) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.calls = append(e.calls, execCall{sql: sql, args: args})
	return pgconn.CommandTag{}, e.err
}

func TestInsertRowsBuildsMultiRowStatement(t *testing.T) {
	db := &execStub{}
	store := newRelationalStore(db)
	now := time.Now()

	err := store.InsertRows(context.Background(), domain.KindCustomer,
		[]string{"_id", "_tz", "name", "doc_number"},
		[][]any{
			{"a", now, "Acme", "123.456.789-00"},
			{"b", now, "Initech", "12.345.678.9012-34"},
		})
	require.NoError(t, err)
	require.Len(t, db.calls, 1)

	call := db.calls[0]
	assert.Contains(t, call.sql, `INSERT INTO "customer"`)
	assert.Contains(t, call.sql, `"_id","_tz","name","doc_number"`)
	assert.Contains(t, call.sql, "($1,$2,$3,$4),($5,$6,$7,$8)")
	assert.Equal(t, []any{"a", now, "Acme", "123.456.789-00", "b", now, "Initech", "12.345.678.9012-34"}, call.args)
}

func TestInsertRowsQuotesReservedColumns(t *testing.T) {
	db := &execStub{}
	store := newRelationalStore(db)

	err := store.InsertRows(context.Background(), domain.KindSaleProduct,
		[]string{"_id", "sale_id", "product_id", "index", "quantity"},
		[][]any{{"x", "s", "p", 0, 3}})
	require.NoError(t, err)
	assert.Contains(t, db.calls[0].sql, `"index"`)
}

func TestInsertRowsSkipsEmptyBatch(t *testing.T) {
	db := &execStub{}
	store := newRelationalStore(db)

	require.NoError(t, store.InsertRows(context.Background(), domain.KindProduct, []string{"_id"}, nil))
	assert.Empty(t, db.calls)
}

func TestInsertRowsRejectsRaggedRows(t *testing.T) {
	db := &execStub{}
	store := newRelationalStore(db)

	err := store.InsertRows(context.Background(), domain.KindProduct, []string{"_id", "name"}, [][]any{{"only-id"}})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, db.calls)
}

func TestInsertRowsWrapsDriverError(t *testing.T) {
	boom := errors.New("connection reset")
	store := newRelationalStore(&execStub{err: boom})

	err := store.InsertRows(context.Background(), domain.KindSale, []string{"_id"}, [][]any{{"s"}})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "insert into sale")
}

func TestDeleteAll(t *testing.T) {
	db := &execStub{}
	store := newRelationalStore(db)

	require.NoError(t, store.DeleteAll(context.Background(), domain.KindSaleProduct))
	require.Len(t, db.calls, 1)
	assert.Equal(t, `DELETE FROM "sale_product"`, db.calls[0].sql)
	assert.Empty(t, db.calls[0].args)
}

func TestNullTime(t *testing.T) {
	assert.Nil(t, NullTime(nil))
	assert.Nil(t, NullTime(&time.Time{}))

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, ts, NullTime(&ts))
}
