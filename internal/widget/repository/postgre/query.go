package postgre

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"

	"widget-srv/internal/widget/query"
)

// Query - Execute a composed widget statement, scanning every column as text.
func (r *implRepository) Query(ctx context.Context, stmt query.Statement) ([]query.Row, error) {
	rows, err := r.db.QueryContext(ctx, stmt.Text, stmt.Args...)
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.Query: Failed to execute query: %v", err)
		return nil, fmt.Errorf("execute widget query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var result []query.Row
	for rows.Next() {
		values := make([]null.String, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			r.l.Errorf(ctx, "widget.repository.postgre.Query: Failed to scan row: %v", err)
			return nil, fmt.Errorf("scan widget row: %w", err)
		}

		row := make(query.Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.Query: Failed to iterate rows: %v", err)
		return nil, fmt.Errorf("iterate widget rows: %w", err)
	}

	return result, nil
}
