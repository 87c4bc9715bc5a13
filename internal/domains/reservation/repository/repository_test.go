package repository_test

import (
	"context"
	"regexp"
	"resalab/infras/otel/mocks"
	"resalab/infras/postgres"
	"resalab/internal/domains/reservation/model"
	"resalab/internal/domains/reservation/repository"
	"resalab/shared"
	"resalab/shared/dto"
	"resalab/shared/failure"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectReservations = `SELECT reservations\.id, reservations\.title, reservations\.start_time, reservations\.end_time, ` +
	`reservations\.reserved_by, reservations\.comment, reservations\.salle_id, reservations\.created_at, reservations\.modified_at FROM reservations`

var reservationColumns = []string{"id", "title", "start_time", "end_time", "reserved_by", "comment", "salle_id", "created_at", "modified_at"}

func newRepository(t *testing.T) (repository.Reservation, sqlmock.Sqlmock, sqlmock.Sqlmock) {
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

	return repository.New(conn, mocks.NewOtel()), readMock, writeMock
}

func TestReservationRepository_GetAll(t *testing.T) {
	t.Run("sorts on a whitelisted property", func(t *testing.T) {
		repo, readMock, _ := newRepository(t)
		start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

		readMock.ExpectPrepare(selectReservations + `\s+ORDER BY reservations\.title DESC, reservations\.id ASC LIMIT \$1 OFFSET \$2`).
			ExpectQuery().
			WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows(reservationColumns).
				AddRow(2, "Standup", start, start.Add(time.Hour), nil, nil, nil, start, start))

		params := dto.QueryParams{Page: 0, Size: 20, Sort: []dto.Sort{{Property: model.FieldTitle, Direction: dto.SortDirDesc}}}

		reservations, err := repo.GetAll(context.Background(), params, dto.FilterGroup{})

		require.NoError(t, err)
		require.Len(t, reservations, 1)
		assert.Equal(t, "Standup", reservations[0].Title)
		assert.Nil(t, reservations[0].SalleID)
		assert.NoError(t, readMock.ExpectationsWereMet())
	})

	t.Run("rejects a column outside the whitelist", func(t *testing.T) {
		repo, readMock, _ := newRepository(t)

		params := dto.QueryParams{Page: 0, Size: 20, Sort: []dto.Sort{{Property: "created_at", Direction: dto.SortDirAsc}}}

		_, err := repo.GetAll(context.Background(), params, dto.FilterGroup{})

		require.Error(t, err)
		assert.ErrorIs(t, err, failure.InvalidSortParam)
		assert.NoError(t, readMock.ExpectationsWereMet())
	})
}

func TestReservationRepository_ReplaceReturning(t *testing.T) {
	repo, readMock, writeMock := newRepository(t)
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	salleID := int64(2)

	writeMock.ExpectBegin()
	writeMock.ExpectPrepare(`SELECT EXISTS\(SELECT 1 FROM reservations WHERE \(reservations\.id = \$1\)\)`).
		ExpectQuery().
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	writeMock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET title = $1, start_time = $2, end_time = $3, reserved_by = $4, comment = $5, salle_id = $6, modified_at = $7 WHERE id = $8")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	writeMock.ExpectPrepare(selectReservations + `\s+WHERE \(reservations\.id = \$1\)`).
		ExpectQuery().
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(reservationColumns).
			AddRow(3, "Retro", start, start.Add(time.Hour), nil, nil, salleID, start, start))
	writeMock.ExpectCommit()

	saved, err := repo.ReplaceReturning(context.Background(), model.Reservation{
		ID:        3,
		Title:     "Retro",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		SalleID:   &salleID,
	}, shared.FilterByID(3, model.FieldID, model.TableName))
	require.NoError(t, err)

	reservation, ok := saved.Get()
	require.True(t, ok)
	assert.Equal(t, "Retro", reservation.Title)
	require.NotNil(t, reservation.SalleID)
	assert.Equal(t, salleID, *reservation.SalleID)
	assert.NoError(t, writeMock.ExpectationsWereMet())
	assert.NoError(t, readMock.ExpectationsWereMet())
}
