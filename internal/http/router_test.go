package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	"igreja_backend/internal/cache"
	"igreja_backend/internal/config"
	"igreja_backend/internal/domain"
	"igreja_backend/internal/http/middleware"
	"igreja_backend/internal/logger"
)

const testSecret = "segredo-de-teste"

func newTestServer(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("error", true)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	rdb := config.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	env := config.Env{
		JWTSecret:       testSecret,
		Environment:     "test",
		UploadDir:       t.TempDir(),
		UploadPublicURL: "/uploads",
	}
	return NewRouter(env, db, cache.New(rdb)), mock, mr
}

func bearerFor(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := middleware.GenerateToken([]byte(testSecret), userID, role, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func doJSON(r *gin.Engine, method, path, auth, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestUnauthenticatedRequestNeverTouchesTheStore(t *testing.T) {
	r, mock, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/members", "", "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	body := decodeEnvelope(t, w)
	if body["success"] != false || body["error"] == "" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store was touched on an unauthenticated request: %v", err)
	}
}

func TestListMembersTranslatesFieldsAndPaginates(t *testing.T) {
	r, mock, _ := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM membros")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery(regexp.QuoteMeta("FROM membros ORDER BY data_ingresso DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "email", "telefone", "endereco", "data_nascimento", "data_ingresso", "tipo_membro", "status", "foto_url", "created_at", "updated_at"}).
			AddRow(int64(1), "Maria Souza", "maria@example.com", nil, nil, nil, "2023-01-10", "membro", "ativo", nil, nil, nil))

	w := doJSON(r, http.MethodGet, "/api/members", bearerFor(t, 2, domain.RoleLeader), "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{`"membershipType":"membro"`, `"name":"Maria Souza"`, `"total":21`, `"total_pages":3`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %s in %s", want, body)
		}
	}
	if strings.Contains(body, "tipo_membro") {
		t.Fatalf("storage column leaked to the response: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMemberInvalidatesStatsKeys(t *testing.T) {
	r, mock, mr := newTestServer(t)

	mr.Set(cache.KeyMemberStats, `{"total":1}`)
	mr.Set(cache.KeyDashboardStats, `{"totalMembers":1}`)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM membros WHERE email = $1 AND id <> $2")).
		WithArgs("joao@example.com", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO membros (data_ingresso, email, nome, tipo_membro) VALUES ($1, $2, $3, $4) RETURNING")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "email", "telefone", "endereco", "data_nascimento", "data_ingresso", "tipo_membro", "status", "foto_url", "created_at", "updated_at"}).
			AddRow(int64(10), "João Lima", "joao@example.com", nil, nil, nil, "2024-02-01", "membro", "ativo", nil, nil, nil))

	payload := `{"name":"João Lima","email":"joao@example.com","joinDate":"2024-02-01","membershipType":"membro"}`
	w := doJSON(r, http.MethodPost, "/api/members", bearerFor(t, 1, domain.RoleLeader), payload)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if mr.Exists(cache.KeyMemberStats) || mr.Exists(cache.KeyDashboardStats) {
		t.Fatal("member write did not invalidate the stats keys")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMemberRequiresLeaderRole(t *testing.T) {
	r, mock, _ := newTestServer(t)

	payload := `{"name":"João Lima","joinDate":"2024-02-01","membershipType":"membro"}`
	w := doJSON(r, http.MethodPost, "/api/members", bearerFor(t, 3, domain.RoleMember), payload)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store was touched on a forbidden request: %v", err)
	}
}

func TestValidationFailureListsEveryField(t *testing.T) {
	r, mock, _ := newTestServer(t)

	payload := `{"amount":-5,"type":"aluguel"}`
	w := doJSON(r, http.MethodPost, "/api/donations", bearerFor(t, 1, domain.RoleLeader), payload)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, field := range []string{`"amount"`, `"type"`, `"date"`} {
		if !strings.Contains(body, field) {
			t.Fatalf("missing violation for %s: %s", field, body)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store was touched on invalid input: %v", err)
	}
}

func TestMemberCanListEvents(t *testing.T) {
	r, mock, _ := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM eventos")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM eventos ORDER BY data DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "titulo", "descricao", "data", "horario", "local", "imagem_url", "criado_por", "created_at", "updated_at"}).
			AddRow(int64(1), "Culto", nil, "2025-08-01", "10:00", "Templo", nil, int64(2), nil, nil))

	w := doJSON(r, http.MethodGet, "/api/events?page=1&limit=10", bearerFor(t, 4, domain.RoleMember), "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"title":"Culto"`) {
		t.Fatalf("event missing from listing: %s", w.Body.String())
	}
}

func TestCreateEventStampsTheCreator(t *testing.T) {
	r, mock, _ := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO eventos (criado_por, data, horario, local, titulo)")).
		WithArgs(int64(5), "2025-08-01", "10:00", "Templo", "Culto").
		WillReturnRows(sqlmock.NewRows([]string{"id", "titulo", "descricao", "data", "horario", "local", "imagem_url", "criado_por", "created_at", "updated_at"}).
			AddRow(int64(9), "Culto", nil, "2025-08-01", "10:00", "Templo", nil, int64(5), nil, nil))

	payload := `{"title":"Culto","date":"2025-08-01","time":"10:00","location":"Templo"}`
	w := doJSON(r, http.MethodPost, "/api/events", bearerFor(t, 5, domain.RoleLeader), payload)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"title":"Culto"`) {
		t.Fatalf("created event not echoed: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEventUpdateByNonOwnerIsForbidden(t *testing.T) {
	r, mock, _ := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT criado_por FROM eventos WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"criado_por"}).AddRow(int64(9)))

	w := doJSON(r, http.MethodPut, "/api/events/4", bearerFor(t, 5, domain.RoleLeader), `{"title":"Culto de oração"}`)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (%s)", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected store access: %v", err)
	}
}

func TestEventUpdateByAdminBypassesOwnership(t *testing.T) {
	r, mock, _ := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT criado_por FROM eventos WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"criado_por"}).AddRow(int64(9)))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE eventos SET titulo = $1, updated_at = $2 WHERE id = $3 RETURNING")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "titulo", "descricao", "data", "horario", "local", "imagem_url", "criado_por", "created_at", "updated_at"}).
			AddRow(int64(4), "Culto de oração", nil, "2024-05-01", "19:00", "Templo", nil, int64(9), nil, nil))

	w := doJSON(r, http.MethodPut, "/api/events/4", bearerFor(t, 1, domain.RoleAdmin), `{"title":"Culto de oração"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnknownRouteKeepsEnvelope(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/nada", "", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	body := decodeEnvelope(t, w)
	if body["success"] != false {
		t.Fatalf("missing failure envelope: %v", body)
	}
}

func TestHealthReportsOKWhenBothProbesPass(t *testing.T) {
	r, mock, _ := newTestServer(t)

	mock.ExpectPing()

	w := doJSON(r, http.MethodGet, "/api/health", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"status":"ok"`) || !strings.Contains(body, `"redis":"up"`) || !strings.Contains(body, `"database":"up"`) {
		t.Fatalf("unexpected health body: %s", body)
	}
}

func TestHealthFailsWhenRedisIsDown(t *testing.T) {
	r, mock, mr := newTestServer(t)

	mock.ExpectPing()
	mr.Close()

	w := doJSON(r, http.MethodGet, "/api/health", "", "")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with redis down, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"status":"unhealthy"`) || !strings.Contains(body, `"redis":"down"`) {
		t.Fatalf("unexpected health body: %s", body)
	}
}
