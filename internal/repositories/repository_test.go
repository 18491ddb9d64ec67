package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/mapping"
)

func memberColumns() []string {
	return mapping.Members.Columns
}

func TestList_BuildsWindowedQueryAndCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewMemberRepo(db)

	filters := []domain.Filter{
		{Column: "tipo_membro", Kind: domain.PredicateEquals, Value: "membro"},
		{Column: "data_ingresso", Kind: domain.PredicateGTE, Value: "2024-01-01"},
	}
	spec := domain.PageSpec{Page: 2, Limit: 10, Order: "asc", Sort: "joinDate"}

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM membros WHERE tipo_membro = $1 AND data_ingresso >= $2")).
		WithArgs("membro", "2024-01-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))

	rows := sqlmock.NewRows(memberColumns()).
		AddRow(int64(11), "Ana", "ana@x.com", nil, nil, nil, "2024-02-01", "membro", "ativo", nil, nil, nil).
		AddRow(int64(12), "Bia", "bia@x.com", nil, nil, nil, "2024-03-01", "membro", "ativo", nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(
		"ORDER BY data_ingresso ASC LIMIT $3 OFFSET $4")).
		WithArgs("membro", "2024-01-01", 10, 10).
		WillReturnRows(rows)

	result, err := repo.List(context.Background(), filters, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 23 {
		t.Fatalf("total = %d, want 23", result.Total)
	}
	if result.TotalPages != 3 {
		t.Fatalf("total_pages = %d, want ceil(23/10)=3", result.TotalPages)
	}
	if len(result.Data) != 2 {
		t.Fatalf("page slice length = %d", len(result.Data))
	}
	if result.Data[0]["nome"] != "Ana" {
		t.Fatalf("unexpected first row: %v", result.Data[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestList_EmptyPageKeepsEnvelopeShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewStreamRepo(db)
	spec := domain.PageSpec{Page: 1, Limit: 10, Order: "desc"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM transmissoes")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM transmissoes ORDER BY data DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(mapping.Streams.Columns))

	result, err := repo.List(context.Background(), nil, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Data == nil {
		t.Fatalf("empty page must be [], not null")
	}
	if result.TotalPages != 0 {
		t.Fatalf("total_pages = %d, want 0", result.TotalPages)
	}
}

func TestGetByID_Miss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewMemberRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM membros WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(memberColumns()))

	_, err = repo.GetByID(context.Background(), 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

// lib/pq scans DATE/TIMESTAMP into time.Time and text into []byte; records
// must come out of the repository as plain strings either way.
func TestGetByID_NormalizesPostgresRowTypes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewMemberRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM membros WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(memberColumns()).
			AddRow(int64(1), []byte("Maria Souza"), []byte("maria@example.com"), nil, nil,
				time.Date(1990, 6, 2, 0, 0, 0, 0, time.UTC),
				time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
				[]byte("membro"), []byte("ativo"), nil,
				time.Date(2023, 1, 10, 14, 5, 9, 0, time.UTC), nil))

	record, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if record["nome"] != "Maria Souza" {
		t.Fatalf("text column not normalized: %#v", record["nome"])
	}
	if record["data_ingresso"] != "2023-01-10" {
		t.Fatalf("date column not normalized: %#v", record["data_ingresso"])
	}
	if record["data_nascimento"] != "1990-06-02" {
		t.Fatalf("date column not normalized: %#v", record["data_nascimento"])
	}
	if record["created_at"] != "2023-01-10T14:05:09Z" {
		t.Fatalf("timestamp column not normalized: %#v", record["created_at"])
	}
}

func TestInsert_ReturnsInsertedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewEventRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO eventos (criado_por, data, horario, local, titulo) VALUES ($1, $2, $3, $4, $5) RETURNING")).
		WithArgs(int64(3), "2025-08-01", "10:00", "Templo", "Culto").
		WillReturnRows(sqlmock.NewRows(mapping.Events.Columns).
			AddRow(int64(1), "Culto", nil, "2025-08-01", "10:00", "Templo", nil, int64(3), nil, nil))

	record := map[string]any{
		"titulo":  "Culto",
		"data":    "2025-08-01",
		"horario": "10:00",
		"local":   "Templo",
	}
	inserted, err := repo.InsertOwned(context.Background(), record, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted["titulo"] != "Culto" {
		t.Fatalf("unexpected inserted row: %v", inserted)
	}
	if inserted["criado_por"] != int64(3) {
		t.Fatalf("creator not attached from identity: %v", inserted)
	}
}

func TestUpdate_PartialTouchesOnlyPresentColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewMemberRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE membros SET telefone = $1, updated_at = $2 WHERE id = $3 RETURNING")).
		WithArgs("11 98888-0000", sqlmock.AnyArg(), int64(5)).
		WillReturnRows(sqlmock.NewRows(memberColumns()).
			AddRow(int64(5), "Ana", "ana@x.com", "11 98888-0000", nil, nil, "2024-02-01", "membro", "ativo", nil, nil, nil))

	updated, err := repo.Update(context.Background(), 5, map[string]any{"telefone": "11 98888-0000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated["telefone"] != "11 98888-0000" {
		t.Fatalf("unexpected updated row: %v", updated)
	}
}

func TestDelete_Miss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewVisitorRepo(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM visitantes WHERE id = $1")).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), 8)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestStoreErrorWrapsIntoUpstream(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewMemberRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM membros")).
		WillReturnError(errTimeout{})

	_, err = repo.List(context.Background(), nil, domain.PageSpec{Page: 1, Limit: 10})
	if !domain.IsUpstream(err) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

type errTimeout struct{}

func (errTimeout) Error() string { return "connection timed out" }

func TestUniqueViolationBecomesConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewMemberRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO membros")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "membros_email_key"})

	_, err = repo.Insert(context.Background(), map[string]any{
		"nome":          "Ana",
		"email":         "ana@x.com",
		"data_ingresso": "2024-02-01",
		"tipo_membro":   "membro",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestOtherPostgresErrorsStayUpstream(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewMemberRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO membros")).
		WillReturnError(&pq.Error{Code: "23503", Message: "insert or update violates foreign key"})

	_, err = repo.Insert(context.Background(), map[string]any{
		"nome":          "Ana",
		"data_ingresso": "2024-02-01",
		"tipo_membro":   "membro",
	})
	if domain.IsConflict(err) {
		t.Fatalf("non-unique violation must not map to conflict: %v", err)
	}
	if !domain.IsUpstream(err) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
