package postgres

import (
	"time"

	"github.com/jackc/pgx/v5"
)

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func quoteIdents(names []string) []string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quoteIdent(name)
	}
	return quoted
}

// NullTime maps a missing timestamp to SQL NULL.
func NullTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}
