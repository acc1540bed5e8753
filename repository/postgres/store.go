package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/dualseed/domain"
	"github.com/fastygo/dualseed/repository"
)

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type relationalStore struct {
	db      execer
	builder sq.StatementBuilderType
}

// NewRelationalStore returns a Postgres-backed RelationalStore.
func NewRelationalStore(pool *pgxpool.Pool) repository.RelationalStore {
	return newRelationalStore(pool)
}

func newRelationalStore(db execer) *relationalStore {
	return &relationalStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *relationalStore) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	query, args, err := s.buildInsert(table, columns, rows)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (s *relationalStore) DeleteAll(ctx context.Context, table string) error {
	query, args, err := s.builder.Delete(quoteIdent(table)).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

func (s *relationalStore) buildInsert(table string, columns []string, rows [][]any) (string, []any, error) {
	insert := s.builder.Insert(quoteIdent(table)).Columns(quoteIdents(columns)...)
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, domain.WrapError(domain.ErrCodeInvalid,
				fmt.Sprintf("%s row %d has %d values for %d columns", table, i, len(row), len(columns)),
				domain.ErrColumnMismatch)
		}
		insert = insert.Values(row...)
	}
	return insert.ToSql()
}
