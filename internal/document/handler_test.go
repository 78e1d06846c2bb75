package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jsonshare/internal/document/repository"
	"jsonshare/internal/document/service"
	userrepo "jsonshare/internal/user/repository"
	"jsonshare/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*DocumentHandler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewDocumentService(repository.NewDocumentRepository(db), userrepo.NewUserRepository(db))
	return NewDocumentHandler(svc), mock
}

func authedRequest(method, target, body, userID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func docRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "content", "slug", "user_id", "created_at", "updated_at"}).
		AddRow("doc_1", "Doc", `{}`, "abcDEF1234", "user_1", time.Now(), time.Now())
}

func TestCreateDocumentValidationDetails(t *testing.T) {
	h, mock := newTestHandler(t)

	req := authedRequest(http.MethodPost, "/documents", `{"title": "", "content": "{oops"}`, "user_1")
	rec := httptest.NewRecorder()
	h.CreateDocument(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"title"`)
	assert.Contains(t, rec.Body.String(), `"field":"content"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDocumentMalformedBody(t *testing.T) {
	h, mock := newTestHandler(t)

	req := authedRequest(http.MethodPost, "/documents", `not even json`, "user_1")
	rec := httptest.NewRecorder()
	h.CreateDocument(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDocumentCreated(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("user_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO json_documents`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))

	req := authedRequest(http.MethodPost, "/documents", `{"title": "Doc", "content": "{}"}`, "user_1")
	rec := httptest.NewRecorder()
	h.CreateDocument(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDocumentNotFound(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT .+ FROM json_documents WHERE id = \$1 AND user_id = \$2`).
		WithArgs("doc_1", "user_2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "slug", "user_id", "created_at", "updated_at"}))

	req := authedRequest(http.MethodGet, "/documents/doc_1", "", "user_2")
	req.SetPathValue("id", "doc_1")
	rec := httptest.NewRecorder()
	h.GetDocument(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Document not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDocumentSuccessBody(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec(`DELETE FROM json_documents`).
		WithArgs("doc_1", "user_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := authedRequest(http.MethodDelete, "/documents/doc_1", "", "user_1")
	req.SetPathValue("id", "doc_1")
	rec := httptest.NewRecorder()
	h.DeleteDocument(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublicDocumentNoAuth(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT .+ FROM json_documents WHERE slug = \$1`).
		WithArgs("abcDEF1234").
		WillReturnRows(docRow())

	// No identity on the context at all.
	req := httptest.NewRequest(http.MethodGet, "/documents/public/abcDEF1234", nil)
	req.SetPathValue("slug", "abcDEF1234")
	rec := httptest.NewRecorder()
	h.GetPublicDocument(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"doc_1"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDocuments(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT .+ FROM json_documents WHERE user_id = \$1`).
		WithArgs("user_1").
		WillReturnRows(docRow())

	req := authedRequest(http.MethodGet, "/documents", "", "user_1")
	rec := httptest.NewRecorder()
	h.ListDocuments(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"doc_1"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
