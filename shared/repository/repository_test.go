package repository_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"resalab/infras/otel/mocks"
	"resalab/infras/postgres"
	"resalab/shared/dto"
	"resalab/shared/failure"
	"resalab/shared/model"
	"resalab/shared/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int64  `db:"id" insert:"-"`
	Name string `db:"name"`
	model.Metadata
}

type widgetPart struct {
	WidgetID int64  `db:"widget_id"`
	PartID   int64  `db:"part_id"`
	PartName string `db:"part_name" table:"parts" column:"name"`
}

func (widgetPart) GetJoinQuery() string {
	return "JOIN parts ON parts.id = widget_parts.part_id"
}

func newRepository[T any](t *testing.T, table, primary string) (repository.Repository[T], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[T]("widget", table, primary, conn, mocks.NewOtel()), mock
}

// newSplitRepository backs the read and write pools with different mocks.
func newSplitRepository[T any](t *testing.T, table, primary string) (repository.Repository[T], sqlmock.Sqlmock, sqlmock.Sqlmock) {
	t.Helper()

	readDB, readMock, err := sqlmock.New()
	require.NoError(t, err)

	writeDB, writeMock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		readDB.Close()
		writeDB.Close()
	})

	conn := &postgres.Connection{Read: sqlx.NewDb(readDB, "postgres"), Write: sqlx.NewDb(writeDB, "postgres")}

	return repository.NewRepository[T]("widget", table, primary, conn, mocks.NewOtel()), readMock, writeMock
}

func byID(id int64) dto.FilterGroup {
	return dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "widgets"},
	}}
}

func TestNewRepository_Columns(t *testing.T) {
	repo, _ := newRepository[widget](t, "widgets", "id")

	assert.Equal(t, []string{"name", "created_at", "modified_at"}, repo.InsertColumns)
	assert.Equal(t, []string{"name", "modified_at"}, repo.UpdateColumns)

	joined, _ := newRepository[widgetPart](t, "widget_parts", "widget_id")

	assert.Equal(t, []string{"widget_id", "part_id"}, joined.InsertColumns)
}

func TestRepository_InsertReturning(t *testing.T) {
	query := regexp.QuoteMeta("INSERT INTO widgets (name, created_at, modified_at) VALUES ($1, $2, $3) RETURNING id")

	t.Run("returns generated id", func(t *testing.T) {
		repo, mock := newRepository[widget](t, "widgets", "id")

		mock.ExpectQuery(query).
			WithArgs("lamp", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		id, err := repo.InsertReturning(context.Background(), widget{Name: "lamp", Metadata: model.Metadata{CreatedAt: time.Now(), ModifiedAt: time.Now()}})

		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation is a conflict", func(t *testing.T) {
		repo, mock := newRepository[widget](t, "widgets", "id")

		mock.ExpectQuery(query).
			WithArgs("lamp", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

		_, err := repo.InsertReturning(context.Background(), widget{Name: "lamp"})

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("foreign key violation is a bad request", func(t *testing.T) {
		repo, mock := newRepository[widget](t, "widgets", "id")

		mock.ExpectQuery(query).
			WithArgs("lamp", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint"})

		_, err := repo.InsertReturning(context.Background(), widget{Name: "lamp"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("check violation is a bad request", func(t *testing.T) {
		repo, mock := newRepository[widget](t, "widgets", "id")

		mock.ExpectQuery(query).
			WithArgs("lamp", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23514", Message: "violates check constraint"})

		_, err := repo.InsertReturning(context.Background(), widget{Name: "lamp"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestRepository_Find(t *testing.T) {
	query := `SELECT widgets\.id, widgets\.name, widgets\.created_at, widgets\.modified_at FROM widgets\s+WHERE \(widgets\.id = \$1\)`

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepository[widget](t, "widgets", "id")
		now := time.Now()

		mock.ExpectPrepare(query).
			ExpectQuery().
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "modified_at"}).AddRow(7, "lamp", now, now))

		result, err := repo.Find(context.Background(), byID(7))
		require.NoError(t, err)

		found, ok := result.Get()
		require.True(t, ok)
		assert.Equal(t, int64(7), found.ID)
		assert.Equal(t, "lamp", found.Name)
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newRepository[widget](t, "widgets", "id")

		mock.ExpectPrepare(query).
			ExpectQuery().
			WithArgs(int64(8)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "modified_at"}))

		result, err := repo.Find(context.Background(), byID(8))

		require.NoError(t, err)
		assert.False(t, result.IsPresent())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newRepository[widget](t, "widgets", "id")

		mock.ExpectPrepare(query).
			ExpectQuery().
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Find(context.Background(), byID(9))

		assert.Error(t, err)
	})

	t.Run("filter required", func(t *testing.T) {
		repo, _ := newRepository[widget](t, "widgets", "id")

		_, err := repo.Find(context.Background(), dto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestRepository_GetAll(t *testing.T) {
	t.Run("sorted page", func(t *testing.T) {
		repo, mock := newRepository[widget](t, "widgets", "id")
		repo.Sortable = map[string]string{"id": "widgets.id", "name": "widgets.name"}
		now := time.Now()

		mock.ExpectPrepare(`FROM widgets\s+ORDER BY widgets\.name DESC, widgets\.id ASC LIMIT \$1 OFFSET \$2`).
			ExpectQuery().
			WithArgs(2, 2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "modified_at"}).
				AddRow(3, "desk", now, now).
				AddRow(4, "chair", now, now))

		params := dto.QueryParams{Page: 1, Size: 2, Sort: []dto.Sort{{Property: "name", Direction: dto.SortDirDesc}}}

		widgets, err := repo.GetAll(context.Background(), params, dto.FilterGroup{})

		require.NoError(t, err)
		assert.Len(t, widgets, 2)
		assert.Equal(t, "desk", widgets[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sort property", func(t *testing.T) {
		repo, mock := newRepository[widget](t, "widgets", "id")

		params := dto.QueryParams{Page: 0, Size: 20, Sort: []dto.Sort{{Property: "secret", Direction: dto.SortDirAsc}}}

		_, err := repo.GetAll(context.Background(), params, dto.FilterGroup{})

		require.Error(t, err)
		assert.ErrorIs(t, err, failure.InvalidSortParam)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ListWithJoin(t *testing.T) {
	repo, mock := newRepository[widgetPart](t, "widget_parts", "widget_id")

	mock.ExpectPrepare(`SELECT widget_parts\.widget_id, widget_parts\.part_id, parts\.name AS part_name FROM widget_parts\s+JOIN parts ON parts\.id = widget_parts\.part_id\s+WHERE \(widget_parts\.widget_id IN \(\$1, \$2\)\) ORDER BY widget_parts\.widget_id ASC`).
		ExpectQuery().
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"widget_id", "part_id", "part_name"}).
			AddRow(1, 10, "bolt").
			AddRow(2, 11, "nut"))

	filter := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "widget_id", Value: []int64{1, 2}, Operator: dto.FilterOperatorIn, Table: "widget_parts"},
	}}

	parts, err := repo.List(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "nut", parts[1].PartName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountAndExist(t *testing.T) {
	repo, mock := newRepository[widget](t, "widgets", "id")

	mock.ExpectPrepare(`SELECT COUNT\(widgets\.id\) FROM widgets`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectPrepare(`SELECT EXISTS\(SELECT 1 FROM widgets WHERE \(widgets\.id = \$1\)\)`).
		ExpectQuery().
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	exist, err := repo.Exist(context.Background(), byID(3))
	require.NoError(t, err)
	assert.True(t, exist)

	_, err = repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)
}

func TestRepository_Replace(t *testing.T) {
	repo, mock := newRepository[widget](t, "widgets", "id")

	mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET name = $1, modified_at = $2 WHERE id = $3")).
		WithArgs("lamp", sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Replace(context.Background(), widget{ID: 7, Name: "lamp"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReplaceReturning(t *testing.T) {
	existQuery := `SELECT EXISTS\(SELECT 1 FROM widgets WHERE \(widgets\.id = \$1\)\)`
	findQuery := `SELECT widgets\.id, widgets\.name, widgets\.created_at, widgets\.modified_at FROM widgets\s+WHERE \(widgets\.id = \$1\)`

	t.Run("reads the stored row back on the write pool", func(t *testing.T) {
		repo, readMock, writeMock := newSplitRepository[widget](t, "widgets", "id")
		now := time.Now()

		writeMock.ExpectBegin()
		writeMock.ExpectPrepare(existQuery).
			ExpectQuery().
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		writeMock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET name = $1, modified_at = $2 WHERE id = $3")).
			WithArgs("lamp", sqlmock.AnyArg(), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		writeMock.ExpectPrepare(findQuery).
			ExpectQuery().
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "modified_at"}).AddRow(7, "lamp", now, now))
		writeMock.ExpectCommit()

		saved, err := repo.ReplaceReturning(context.Background(), widget{ID: 7, Name: "lamp"}, byID(7))
		require.NoError(t, err)

		found, ok := saved.Get()
		require.True(t, ok)
		assert.Equal(t, "lamp", found.Name)
		assert.NoError(t, writeMock.ExpectationsWereMet())
		assert.NoError(t, readMock.ExpectationsWereMet())
	})

	t.Run("unknown row is absent and not written", func(t *testing.T) {
		repo, readMock, writeMock := newSplitRepository[widget](t, "widgets", "id")

		writeMock.ExpectBegin()
		writeMock.ExpectPrepare(existQuery).
			ExpectQuery().
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		writeMock.ExpectCommit()

		saved, err := repo.ReplaceReturning(context.Background(), widget{ID: 9, Name: "lamp"}, byID(9))

		require.NoError(t, err)
		assert.False(t, saved.IsPresent())
		assert.NoError(t, writeMock.ExpectationsWereMet())
		assert.NoError(t, readMock.ExpectationsWereMet())
	})

	t.Run("update error rolls back", func(t *testing.T) {
		repo, _, writeMock := newSplitRepository[widget](t, "widgets", "id")

		writeMock.ExpectBegin()
		writeMock.ExpectPrepare(existQuery).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		writeMock.ExpectExec(`UPDATE widgets SET`).
			WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint"})
		writeMock.ExpectRollback()

		saved, err := repo.ReplaceReturning(context.Background(), widget{ID: 7, Name: "lamp"}, byID(7))

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.False(t, saved.IsPresent())
		assert.NoError(t, writeMock.ExpectationsWereMet())
	})
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepository[widget](t, "widgets", "id")

	mock.ExpectExec(`DELETE FROM widgets WHERE \(widgets\.id = \$1\)`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), byID(7)))
	assert.Error(t, repo.Delete(context.Background(), dto.FilterGroup{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transaction(t *testing.T) {
	t.Run("commits when every step succeeds", func(t *testing.T) {
		repo, mock := newRepository[widgetPart](t, "widget_parts", "widget_id")

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO widget_parts \(widget_id, part_id\) VALUES \(\$1, \$2\),\s*\(\$3, \$4\)`).
			WithArgs(int64(1), int64(10), int64(1), int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.Transaction(context.Background(), func(sqltx *sqlx.Tx) error {
			return repo.InsertBulkTx(context.Background(), sqltx, []widgetPart{
				{WidgetID: 1, PartID: 10},
				{WidgetID: 1, PartID: 11},
			})
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		repo, mock := newRepository[widgetPart](t, "widget_parts", "widget_id")
		stepErr := errors.New("step failed")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := repo.Transaction(context.Background(), func(_ *sqlx.Tx) error {
			return stepErr
		})

		assert.ErrorIs(t, err, stepErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
