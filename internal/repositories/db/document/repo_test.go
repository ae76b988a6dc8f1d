package documentrepo

import (
	"context"
	"database/sql"
	"docstore/internal/models"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *repository) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := NewRepository(sqlxDB)
	return sqlxDB, mock, repo
}

func TestCreateDocument_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	doc := &models.Document{
		ID:            "doc123",
		SiteID:        "finance",
		Path:          "invoices/2024/inv-001.pdf",
		ContentType:   "application/pdf",
		ContentLength: 2048,
		UserID:        "joe",
		InsertedDate:  time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO documents (id, site_id, path, deep_link_path, content_type, content_length, user_id, inserted_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)).
		WithArgs(doc.ID, doc.SiteID, doc.Path, doc.DeepLinkPath, doc.ContentType, doc.ContentLength, doc.UserID, doc.InsertedDate).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateDocument(context.Background(), doc)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDocument_InsertError(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	doc := &models.Document{
		ID:           "doc-error",
		SiteID:       "finance",
		Path:         "broken.txt",
		ContentType:  "text/plain",
		UserID:       "joe",
		InsertedDate: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO documents (id, site_id, path, deep_link_path, content_type, content_length, user_id, inserted_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)).
		WithArgs(doc.ID, doc.SiteID, doc.Path, doc.DeepLinkPath, doc.ContentType, doc.ContentLength, doc.UserID, doc.InsertedDate).
		WillReturnError(errors.New("db failure"))

	err := repo.CreateDocument(context.Background(), doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CreateDocument")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentByID_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	inserted := time.Now()

	rows := sqlmock.NewRows([]string{"id", "site_id", "path", "deep_link_path", "content_type", "content_length", "user_id", "inserted_date"}).
		AddRow("doc123", "finance", "invoices/inv-001.pdf", "", "application/pdf", int64(2048), "joe", inserted)

	mock.ExpectQuery(regexp.QuoteMeta("FROM documents d")).
		WithArgs("finance", "doc123").
		WillReturnRows(rows)

	doc, err := repo.DocumentByID(context.Background(), "finance", "doc123")
	assert.NoError(t, err)
	assert.Equal(t, "doc123", doc.ID)
	assert.Equal(t, "invoices/inv-001.pdf", doc.Path)
	assert.Equal(t, int64(2048), doc.ContentLength)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM documents d")).
		WithArgs("finance", "missing").
		WillReturnError(sql.ErrNoRows)

	doc, err := repo.DocumentByID(context.Background(), "finance", "missing")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDocument_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	doc := &models.Document{ID: "missing", SiteID: "finance", Path: "new/path.pdf"}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents")).
		WithArgs(doc.Path, doc.DeepLinkPath, doc.ContentType, doc.SiteID, doc.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDocument(context.Background(), doc)
	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM documents WHERE site_id = $1 AND id = $2`)).
		WithArgs("finance", "doc123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "finance", "doc123")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM documents WHERE site_id = $1 AND id = $2`)).
		WithArgs("finance", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "finance", "missing")
	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySite_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	inserted := time.Now()

	rows := sqlmock.NewRows([]string{"id", "site_id", "path", "deep_link_path", "content_type", "content_length", "user_id", "inserted_date"}).
		AddRow("doc1", "finance", "a.pdf", "", "application/pdf", int64(10), "joe", inserted).
		AddRow("doc2", "finance", "b.pdf", "", "application/pdf", int64(20), "joe", inserted)

	mock.ExpectQuery(regexp.QuoteMeta("FROM documents d")).
		WithArgs("finance", 11, 0).
		WillReturnRows(rows)

	docs, err := repo.ListBySite(context.Background(), "finance", 11, 0)
	assert.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, "doc1", docs[0].ID)
	assert.Equal(t, "doc2", docs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountBySite_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM documents WHERE site_id = $1`)).
		WithArgs("finance").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	count, err := repo.CountBySite(context.Background(), "finance")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
