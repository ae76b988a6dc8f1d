package tagrepo

import (
	"context"
	"database/sql"
	"docstore/internal/models"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *repository) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := NewRepository(sqlxDB)
	return sqlxDB, mock, repo
}

func TestUpsert_SingleValue(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	tag := &models.Tag{
		DocumentID:   "doc1",
		Key:          "department",
		Value:        "finance",
		UserID:       "joe",
		InsertedDate: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tags")).
		WithArgs("finance", tag.DocumentID, tag.Key, pq.StringArray{"finance"}, tag.UserID, tag.InsertedDate).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), tag, "finance")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_MultiValue(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	tag := &models.Tag{
		DocumentID:   "doc1",
		Key:          "reviewers",
		Values:       []string{"alice", "bob"},
		UserID:       "joe",
		InsertedDate: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tags")).
		WithArgs("finance", tag.DocumentID, tag.Key, pq.StringArray{"alice", "bob"}, tag.UserID, tag.InsertedDate).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), tag, "finance")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagByKey_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	inserted := time.Now()

	rows := sqlmock.NewRows([]string{"document_id", "site_id", "tag_key", "tag_values", "user_id", "inserted_date", "seq"}).
		AddRow("doc1", "finance", "department", pq.StringArray{"legal"}, "joe", inserted, int64(3))

	mock.ExpectQuery(regexp.QuoteMeta("FROM tags t")).
		WithArgs("finance", "doc1", "department").
		WillReturnRows(rows)

	tag, err := repo.TagByKey(context.Background(), "finance", "doc1", "department")
	assert.NoError(t, err)
	assert.Equal(t, "department", tag.Key)
	assert.Equal(t, "legal", tag.Value)
	assert.Empty(t, tag.Values)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagByKey_MultiValue(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"document_id", "site_id", "tag_key", "tag_values", "user_id", "inserted_date", "seq"}).
		AddRow("doc1", "finance", "reviewers", pq.StringArray{"alice", "bob"}, "joe", time.Now(), int64(4))

	mock.ExpectQuery(regexp.QuoteMeta("FROM tags t")).
		WithArgs("finance", "doc1", "reviewers").
		WillReturnRows(rows)

	tag, err := repo.TagByKey(context.Background(), "finance", "doc1", "reviewers")
	assert.NoError(t, err)
	assert.Empty(t, tag.Value)
	assert.Equal(t, []string{"alice", "bob"}, tag.Values)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagByKey_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM tags t")).
		WithArgs("finance", "doc1", "missing").
		WillReturnError(sql.ErrNoRows)

	tag, err := repo.TagByKey(context.Background(), "finance", "doc1", "missing")
	assert.Nil(t, tag)
	assert.ErrorIs(t, err, models.ErrTagNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDocument_InsertionOrder(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	inserted := time.Now()

	rows := sqlmock.NewRows([]string{"document_id", "site_id", "tag_key", "tag_values", "user_id", "inserted_date", "seq"}).
		AddRow("doc1", "finance", "department", pq.StringArray{"finance"}, "joe", inserted, int64(1)).
		AddRow("doc1", "finance", "status", pq.StringArray{"active"}, "joe", inserted, int64(2))

	mock.ExpectQuery(regexp.QuoteMeta("FROM tags t")).
		WithArgs("finance", "doc1", 11, 0).
		WillReturnRows(rows)

	tags, err := repo.ListByDocument(context.Background(), "finance", "doc1", 11, 0)
	assert.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, "department", tags[0].Key)
	assert.Equal(t, "status", tags[1].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tags WHERE site_id = $1 AND document_id = $2 AND tag_key = $3")).
		WithArgs("finance", "doc1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "finance", "doc1", "missing")
	assert.ErrorIs(t, err, models.ErrTagNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDocumentsByTag_KeyAndValue(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"document_id"}).
		AddRow("doc1").
		AddRow("doc3")

	mock.ExpectQuery(regexp.QuoteMeta("FROM tags t")).
		WithArgs("finance", "department", "legal", 11, 0).
		WillReturnRows(rows)

	ids, err := repo.FindDocumentsByTag(context.Background(), "finance", "department", "legal", 11, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"doc1", "doc3"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
