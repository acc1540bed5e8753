package repository

import "context"

// RelationalStore accepts parameterized batch inserts against fixed tables.
type RelationalStore interface {
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error
	DeleteAll(ctx context.Context, table string) error
}

// DocumentStore accepts unordered batch inserts of schemaless documents.
type DocumentStore interface {
	InsertMany(ctx context.Context, collection string, docs []any) error
}

// SchemaBootstrapper creates the relational tables when they are missing.
type SchemaBootstrapper interface {
	EnsureSchema(ctx context.Context) error
}
