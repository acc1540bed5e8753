// Package storetest provides in-memory store ports for tests. The relational
// fake enforces the seed schema's primary and foreign keys.
package storetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/fastygo/dualseed/domain"
	"github.com/fastygo/dualseed/repository"
)

type foreignKey struct {
	column string
	table  string
}

var foreignKeys = map[string][]foreignKey{
	domain.KindSale: {
		{column: "customer_id", table: domain.KindCustomer},
	},
	domain.KindSaleProduct: {
		{column: "sale_id", table: domain.KindSale},
		{column: "product_id", table: domain.KindProduct},
	},
}

// Relational is a RelationalStore keeping rows keyed by table and _id.
type Relational struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]any
	calls  []string
	failOn map[string]error
}

func NewRelational() *Relational {
	return &Relational{
		tables: make(map[string]map[string]map[string]any),
		failOn: make(map[string]error),
	}
}

// FailInserts makes every later insert into table return err.
func (r *Relational) FailInserts(table string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failOn[table] = err
}

func (r *Relational) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, "insert:"+table)
	if err := r.failOn[table]; err != nil {
		return err
	}

	staged := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(columns) {
			return domain.ErrColumnMismatch
		}
		record := make(map[string]any, len(columns))
		for i, column := range columns {
			record[column] = row[i]
		}
		if err := r.checkRow(table, record); err != nil {
			return err
		}
		staged = append(staged, record)
	}

	if r.tables[table] == nil {
		r.tables[table] = make(map[string]map[string]any)
	}
	for _, record := range staged {
		r.tables[table][record["_id"].(string)] = record
	}
	return nil
}

func (r *Relational) checkRow(table string, record map[string]any) error {
	id, ok := record["_id"].(string)
	if !ok || id == "" {
		return fmt.Errorf("%s: missing _id", table)
	}
	if _, dup := r.tables[table][id]; dup {
		return fmt.Errorf("%s: duplicate key %s", table, id)
	}
	for _, fk := range foreignKeys[table] {
		ref, _ := record[fk.column].(string)
		if _, ok := r.tables[fk.table][ref]; !ok {
			return fmt.Errorf("%s.%s: %q not present in %s", table, fk.column, ref, fk.table)
		}
	}
	return nil
}

func (r *Relational) DeleteAll(ctx context.Context, table string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, "delete:"+table)
	for child, fks := range foreignKeys {
		for _, fk := range fks {
			if fk.table == table && len(r.tables[child]) > 0 && len(r.tables[table]) > 0 {
				return fmt.Errorf("delete %s: still referenced by %s", table, child)
			}
		}
	}
	delete(r.tables, table)
	return nil
}

// Rows returns a copy of the rows of table.
func (r *Relational) Rows(table string) []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]map[string]any, 0, len(r.tables[table]))
	for _, record := range r.tables[table] {
		out = append(out, record)
	}
	return out
}

// IDs returns the set of _id values stored in table.
func (r *Relational) IDs(table string) map[string]struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]struct{}, len(r.tables[table]))
	for id := range r.tables[table] {
		ids[id] = struct{}{}
	}
	return ids
}

// Calls lists operations in the order they were issued, as "insert:<table>"
// or "delete:<table>".
func (r *Relational) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Documents is a DocumentStore that appends every document it receives.
type Documents struct {
	mu          sync.Mutex
	collections map[string][]any
	calls       []string
	failOn      map[string]error
}

func NewDocuments() *Documents {
	return &Documents{
		collections: make(map[string][]any),
		failOn:      make(map[string]error),
	}
}

// FailInserts makes every later insert into collection return err.
func (d *Documents) FailInserts(collection string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failOn[collection] = err
}

func (d *Documents) InsertMany(ctx context.Context, collection string, docs []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, "insert:"+collection)
	if err := d.failOn[collection]; err != nil {
		return err
	}
	d.collections[collection] = append(d.collections[collection], docs...)
	return nil
}

// Docs returns a copy of the documents stored in collection.
func (d *Documents) Docs(collection string) []any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]any(nil), d.collections[collection]...)
}

func (d *Documents) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

// Schema is a SchemaBootstrapper that counts invocations.
type Schema struct {
	Err   error
	Calls int
}

func (s *Schema) EnsureSchema(ctx context.Context) error {
	s.Calls++
	return s.Err
}

var (
	_ repository.RelationalStore    = (*Relational)(nil)
	_ repository.DocumentStore      = (*Documents)(nil)
	_ repository.SchemaBootstrapper = (*Schema)(nil)
)
