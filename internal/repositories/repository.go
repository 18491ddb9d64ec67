package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/logger"
	"igreja_backend/internal/mapping"
)

// Repository is the generic data-access layer shared by every entity: one SQL
// statement per list request (conjunctive predicates, one ORDER BY, an
// OFFSET/LIMIT window) plus the pre-pagination COUNT.
type Repository struct {
	DB     *sql.DB
	Entity *mapping.Entity
}

func predicateSQL(kind domain.PredicateKind, column string, arg int) string {
	switch kind {
	case domain.PredicateGTE:
		return fmt.Sprintf("%s >= $%d", column, arg)
	case domain.PredicateLTE:
		return fmt.Sprintf("%s <= $%d", column, arg)
	default:
		return fmt.Sprintf("%s = $%d", column, arg)
	}
}

// whereClause renders the conjunctive predicates in the order the filters
// were specified. Column names come from the static filter specs, never from
// raw user input.
func whereClause(filters []domain.Filter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		args = append(args, f.Value)
		parts = append(parts, predicateSQL(f.Kind, f.Column, len(args)))
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// List runs the windowed select plus the count query and assembles the paged
// result.
func (r Repository) List(ctx context.Context, filters []domain.Filter, spec domain.PageSpec) (domain.PagedResult[map[string]any], error) {
	var zero domain.PagedResult[map[string]any]

	where, args := whereClause(filters)
	order := r.Entity.SortColumn(spec.Sort)
	dir := "DESC"
	if spec.Order == "asc" {
		dir = "ASC"
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM " + r.Entity.Table + where
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return zero, r.upstream("listar "+r.Entity.Name, err)
	}

	listSQL := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		strings.Join(r.Entity.Columns, ", "), r.Entity.Table, where, order, dir, len(args)+1, len(args)+2)
	rows, err := r.DB.QueryContext(ctx, listSQL, append(args, spec.Limit, spec.Offset())...)
	if err != nil {
		return zero, r.upstream("listar "+r.Entity.Name, err)
	}
	defer func() { _ = rows.Close() }()

	records := []map[string]any{}
	for rows.Next() {
		record, err := scanRecord(rows, r.Entity.Columns)
		if err != nil {
			return zero, r.upstream("listar "+r.Entity.Name, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return zero, r.upstream("listar "+r.Entity.Name, err)
	}

	return domain.NewPagedResult(records, total, spec), nil
}

// GetByID loads one record or a NotFoundError.
func (r Repository) GetByID(ctx context.Context, id int64) (map[string]any, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1",
		strings.Join(r.Entity.Columns, ", "), r.Entity.Table)

	row := r.DB.QueryRowContext(ctx, query, id)
	record, err := scanRecordRow(row, r.Entity.Columns)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: r.Entity.Name}
		}
		return nil, r.upstream("buscar "+r.Entity.Name, err)
	}
	return record, nil
}

// Insert writes a partial storage record and returns the full inserted row.
func (r Repository) Insert(ctx context.Context, record map[string]any) (map[string]any, error) {
	columns := sortedKeys(record)
	if len(columns) == 0 {
		return nil, domain.ValidationError{Fields: []domain.FieldError{{Field: "body", Message: "nenhum campo para gravar"}}}
	}

	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = record[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.Entity.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(r.Entity.Columns, ", "))

	row := r.DB.QueryRowContext(ctx, query, args...)
	inserted, err := scanRecordRow(row, r.Entity.Columns)
	if err != nil {
		return nil, r.writeError("criar "+r.Entity.Name, err)
	}
	return inserted, nil
}

// Update applies a partial storage record to one row and returns the updated
// row. Only the keys present in record are touched.
func (r Repository) Update(ctx context.Context, id int64, record map[string]any) (map[string]any, error) {
	columns := sortedKeys(record)
	if len(columns) == 0 {
		return r.GetByID(ctx, id)
	}

	sets := make([]string, 0, len(columns)+1)
	args := make([]any, 0, len(columns)+1)
	for _, col := range columns {
		args = append(args, record[col])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if _, ok := r.Entity.Fields["updated_at"]; ok {
		args = append(args, time.Now().UTC())
		sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		r.Entity.Table, strings.Join(sets, ", "), len(args), strings.Join(r.Entity.Columns, ", "))

	row := r.DB.QueryRowContext(ctx, query, args...)
	updated, err := scanRecordRow(row, r.Entity.Columns)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: r.Entity.Name}
		}
		return nil, r.writeError("atualizar "+r.Entity.Name, err)
	}
	return updated, nil
}

// Delete removes one row or reports NotFoundError.
func (r Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM "+r.Entity.Table+" WHERE id = $1", id)
	if err != nil {
		return r.upstream("remover "+r.Entity.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return r.upstream("remover "+r.Entity.Name, err)
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: r.Entity.Name}
	}
	return nil
}

// upstream logs the provider detail and returns the fixed client-facing
// message.
func (r Repository) upstream(action string, err error) error {
	logger.Global().Error().Err(err).Str("entity", r.Entity.Name).Msg("erro no banco de dados")
	return domain.UpstreamError{Msg: "erro ao " + action, Err: err}
}

// writeError additionally maps unique violations to ConflictError.
func (r Repository) writeError(action string, err error) error {
	if isUniqueViolation(err) {
		return domain.ConflictError{Resource: r.Entity.Name, Err: err}
	}
	return r.upstream(action, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads the current row into a storage record keyed by column.
// Behind an any destination lib/pq hands text and NUMERIC columns back as
// []byte and DATE/TIMESTAMP columns as time.Time; both are normalized to the
// strings the API serves.
func scanRecord(row rowScanner, columns []string) (map[string]any, error) {
	values := make([]any, len(columns))
	dests := make([]any, len(columns))
	for i := range values {
		dests[i] = &values[i]
	}
	if err := row.Scan(dests...); err != nil {
		return nil, err
	}

	record := make(map[string]any, len(columns))
	for i, col := range columns {
		switch v := values[i].(type) {
		case []byte:
			record[col] = string(v)
		case time.Time:
			record[col] = formatTime(v)
		default:
			record[col] = v
		}
	}
	return record, nil
}

// formatTime renders DATE columns (midnight, no sub-day component) as plain
// dates and everything else as RFC 3339.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

func scanRecordRow(row *sql.Row, columns []string) (map[string]any, error) {
	return scanRecord(row, columns)
}

func sortedKeys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
