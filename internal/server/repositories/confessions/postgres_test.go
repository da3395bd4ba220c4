package confessions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lovelab/internal/common"
	"github.com/dmitrijs2005/lovelab/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList_OrdersByCreatedAtThenID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	t1 := time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "text", "crush", "hearts", "created_at"}).
		AddRow("b", "second", "", int64(2), t1).
		AddRow("a", "first", "Sam", int64(0), t0)

	mock.ExpectQuery(`SELECT id, text, crush, hearts, created_at\s+FROM confessions\s+ORDER BY created_at DESC, id DESC`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, &models.Confession{ID: "b", Text: "second", Hearts: 2, CreatedAt: t1}, got[0])
	assert.Equal(t, "Sam", got[1].Crush)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyIsNonNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT .* FROM confessions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "crush", "hearts", "created_at"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT .* FROM confessions`).WillReturnError(errors.New("conn reset"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select confessions")
}

func TestList_RowError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	rows := sqlmock.NewRows([]string{"id", "text", "crush", "hearts", "created_at"}).
		AddRow("a", "t", "", int64(0), time.Now()).
		RowError(0, errors.New("row boom"))
	mock.ExpectQuery(`SELECT .* FROM confessions`).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	require.Error(t, err)
}

func TestInsert_FillsServerColumns(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2025, 2, 14, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO confessions (id, text, crush, hearts)`)).
		WithArgs("id-1", "I like you", "Sam").
		WillReturnRows(sqlmock.NewRows([]string{"hearts", "created_at"}).AddRow(int64(0), created))

	c := &models.Confession{ID: "id-1", Text: "I like you", Crush: "Sam", Hearts: 99}
	require.NoError(t, repo.Insert(context.Background(), c))
	assert.Equal(t, int64(0), c.Hearts)
	assert.Equal(t, created, c.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT INTO confessions`).WillReturnError(errors.New("check violation"))

	err := repo.Insert(context.Background(), &models.Confession{ID: "x", Text: " "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestSetHearts(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		execErr error
		wantErr error
		anyErr  bool
	}{
		{name: "updated", result: sqlmock.NewResult(0, 1)},
		{name: "missing row", result: sqlmock.NewResult(0, 0), wantErr: common.ErrorNotFound},
		{name: "unexpected count", result: sqlmock.NewResult(0, 2), anyErr: true},
		{name: "rows affected error", result: sqlmock.NewErrorResult(errors.New("ra")), anyErr: true},
		{name: "exec error", execErr: errors.New("down"), anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			exp := mock.ExpectExec(regexp.QuoteMeta(`UPDATE confessions SET hearts = $2 WHERE id = $1`)).
				WithArgs("id-1", int64(5))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.SetHearts(context.Background(), "id-1", 5)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestIncrementHearts(t *testing.T) {
	q := regexp.QuoteMeta(`UPDATE confessions SET hearts = hearts + 1 WHERE id = $1 RETURNING hearts`)

	t.Run("returns new value", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("id-1").
			WillReturnRows(sqlmock.NewRows([]string{"hearts"}).AddRow(int64(8)))

		n, err := repo.IncrementHearts(context.Background(), "id-1")
		require.NoError(t, err)
		assert.Equal(t, int64(8), n)
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("nope").WillReturnRows(sqlmock.NewRows([]string{"hearts"}))

		_, err := repo.IncrementHearts(context.Background(), "nope")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("id-1").WillReturnError(errors.New("down"))

		_, err := repo.IncrementHearts(context.Background(), "id-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}
