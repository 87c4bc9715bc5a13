package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"resalab/infras/otel"
	"resalab/infras/postgres"
	"resalab/shared/constant"
	"resalab/shared/dto"
	"resalab/shared/failure"
	"resalab/shared/logger"
	"resalab/shared/optional"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var (
	errRequiredFilter = errors.New("required filter")
	errNoReturnedID   = errors.New("insert returned no id")
)

type column struct {
	name  string
	table string
	alias string
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is the generic CRUD layer shared by every table. Columns are derived from
// the struct tags of T: db names the column, table and column map joined columns,
// insert:"-" and update:"-" leave generated or immutable columns out of writes.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
	UpdateColumns []string
	// Sortable maps public sort properties to qualified columns.
	Sortable map[string]string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	reflectType := reflect.TypeOf(zero)
	columns, insertColumns, updateColumns := getColumns(tableName, reflectType)

	valueOf := reflect.ValueOf(zero)
	method := valueOf.MethodByName("GetJoinQuery")
	joinQueryStr := ""

	if method.IsValid() {
		joinQuery := method.Call([]reflect.Value{})

		if len(joinQuery) > 0 {
			joinQueryStr = joinQuery[0].String()
		}
	}

	updateColumns = slices.DeleteFunc(updateColumns, func(col string) bool {
		return col == primaryColumn
	})

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          joinQueryStr,
		InsertColumns: insertColumns,
		UpdateColumns: updateColumns,
		Sortable:      map[string]string{primaryColumn: tableName + "." + primaryColumn},
	}
}

func (repo *Repository[T]) insertReturning(ctx context.Context, exec sqlx.ExtContext, model T) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.insertReturning", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query := fmt.Sprintf("%s RETURNING %s", repo.insertQuery(), repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := sqlx.NamedQueryContext(ctx, exec, query, model)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, translateError(err))
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err == nil {
			err = errNoReturnedID
		}

		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, translateError(err))
	}

	var id int64
	if err = rows.Scan(&id); err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to scan inserted id (%s): %w", repo.entitas, err)
	}

	return id, nil
}

// InsertReturning inserts model and returns the generated primary key.
func (repo *Repository[T]) InsertReturning(ctx context.Context, model T) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.InsertReturning", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.insertReturning(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertReturningTx(ctx context.Context, sqltx *sqlx.Tx, model T) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.InsertReturningTx", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.insertReturning(ctx, sqltx, model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Exist", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.exist(ctx, repo.db.Read, filter)
}

// ExistTx checks existence inside sqltx, so it sees rows written earlier in the same transaction.
func (repo *Repository[T]) ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ExistTx", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.exist(ctx, sqltx, filter)
}

func (repo *Repository[T]) exist(ctx context.Context, db preparer, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.exist", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist := false

	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &exist, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}

	return exist, nil
}

// Find returns the single row matching filter, or Absent when there is none.
func (repo *Repository[T]) Find(ctx context.Context, filter dto.FilterGroup, columns ...string) (optional.Optional[T], error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Find", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.find(ctx, repo.db.Read, filter, columns...)
}

func (repo *Repository[T]) FindTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (optional.Optional[T], error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.FindTx", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.find(ctx, sqltx, filter, columns...)
}

func (repo *Repository[T]) find(ctx context.Context, db preparer, filter dto.FilterGroup, columns ...string) (optional.Optional[T], error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.find", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return optional.Absent[T](), errRequiredFilter
	}

	selectQuery := repo.getSelectQuery(ctx, columns...)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s", selectQuery, repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return optional.Absent[T](), fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	var model T

	err = prepare.GetContext(ctx, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return optional.Absent[T](), nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return optional.Absent[T](), fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	return optional.Found(model), nil
}

// GetAll returns one page of rows. Sort properties are resolved through Sortable and
// the primary column always closes the ordering so that pages are stable.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	orderBy, err := params.OrderBy(repo.Sortable, repo.table+"."+repo.primaryColumn)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	where, args := repo.BuildWhereClause(ctx, filter)
	selectQuery := repo.getSelectQuery(ctx, columns...)

	args["limit"] = params.Size
	args["offset"] = params.Offset()

	query := fmt.Sprintf("SELECT %s FROM %s %s %s ORDER BY %s LIMIT :limit OFFSET :offset", selectQuery, repo.table, repo.join, where, orderBy)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return repo.selectAll(ctx, repo.db.Read, query, args)
}

// List returns every row matching filter ordered by the primary column.
func (repo *Repository[T]) List(ctx context.Context, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.List", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.list(ctx, repo.db.Read, filter, columns...)
}

func (repo *Repository[T]) ListTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ListTx", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.list(ctx, sqltx, filter, columns...)
}

func (repo *Repository[T]) list(ctx context.Context, db preparer, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.list", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	selectQuery := repo.getSelectQuery(ctx, columns...)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s ORDER BY %s.%s ASC", selectQuery, repo.table, repo.join, where, repo.table, repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return repo.selectAll(ctx, db, query, args)
}

func (repo *Repository[T]) selectAll(ctx context.Context, db preparer, query string, args map[string]any) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.selectAll", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	models := []T{}

	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &models, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &count, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entitas, err)
	}

	return count, nil
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entitas, translateError(err))
	}

	return nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.delete(ctx, repo.db.Write, filter) //nolint:wrapcheck
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.DeleteTx", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.delete(ctx, sqltx, filter) //nolint:wrapcheck
}

// replace overwrites every updatable column of the row identified by the primary key of model.
func (repo *Repository[T]) replace(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.replace", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	updateField := make([]string, 0, len(repo.UpdateColumns))

	for _, col := range repo.UpdateColumns {
		updateField = append(updateField, fmt.Sprintf("%s = :%s", col, col))
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = :%s", repo.table, strings.Join(updateField, ", "), repo.primaryColumn, repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := exec.NamedExecContext(ctx, query, model)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entitas, translateError(err))
	}

	return nil
}

func (repo *Repository[T]) Replace(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Replace", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.replace(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) ReplaceTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ReplaceTx", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.replace(ctx, sqltx, model)
}

// ReplaceReturning overwrites the row matching filter and reads it back on the write connection.
// It returns Absent without writing when no row matches.
func (repo *Repository[T]) ReplaceReturning(ctx context.Context, model T, filter dto.FilterGroup) (saved optional.Optional[T], err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ReplaceReturning", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	saved = optional.Absent[T]()

	err = repo.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		exist, err := repo.ExistTx(ctx, sqltx, filter)
		if err != nil || !exist {
			return err
		}

		if err = repo.ReplaceTx(ctx, sqltx, model); err != nil {
			return err
		}

		saved, err = repo.FindTx(ctx, sqltx, filter)

		return err
	})
	if err != nil {
		return optional.Absent[T](), err
	}

	return saved, nil
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.InsertBulkTx", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.insertBulk(ctx, sqltx, models)
}

func (repo *Repository[T]) insertBulk(ctx context.Context, exec execer, models []T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.insertBulk", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	query := repo.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := exec.NamedExecContext(ctx, query, models)
	if err != nil {
		scope.TraceError(err)
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to bulk insert data (%s): %w", repo.entitas, translateError(err))
	}

	return nil
}

// Transaction runs fn inside one write transaction, committing on success and rolling back otherwise.
func (repo *Repository[T]) Transaction(ctx context.Context, fn func(sqltx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Transaction", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", repo.entitas, err)
	}

	defer func() {
		if err == nil {
			return
		}

		scope.TraceError(err)

		if rbErr := sqltx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Str("entity", repo.entitas).Msg("failed to rollback transaction")
		}
	}()

	if err = fn(sqltx); err != nil {
		return err
	}

	if err = sqltx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, 0, len(repo.InsertColumns))

	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) getSelectQuery(ctx context.Context, columnsParam ...string) string {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.getSelectQuery", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	columns := []string{}
	for _, col := range repo.columns {
		if len(columnsParam) > 0 && !slices.Contains(columnsParam, col.name) {
			continue
		}

		switch {
		case col.alias != "":
			columns = append(columns, fmt.Sprintf("%s.%s AS %s", col.table, col.name, col.alias))
		default:
			columns = append(columns, fmt.Sprintf("%s.%s", col.table, col.name))
		}
	}

	return strings.Join(columns, ", ")
}

func (repo *Repository[T]) BuildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.BuildWhereClause", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := filter.GetWhereClause()

	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf("WHERE %s", where), args
}

// translateError maps constraint violations to client failures and leaves everything else untouched.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		return failure.Conflict(pqErr.Message) //nolint:wrapcheck
	case constant.PqErrorCodeFkViolation, constant.PqErrorCodeCheckViolation:
		return failure.BadRequestFromString(pqErr.Message) //nolint:wrapcheck
	default:
		return err
	}
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns, updateColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)
		dbTag := field.Tag.Get("db")
		tableField := field.Tag.Get("table")
		colTag := field.Tag.Get("column")

		if tableField == "" {
			tableField = table
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol, updateCol := getColumns(table, field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)
			updateColumns = append(updateColumns, updateCol...)
		}

		if dbTag == "" || dbTag == "-" {
			continue
		}

		if tableField == table {
			if field.Tag.Get("insert") != "-" {
				insertColumns = append(insertColumns, dbTag)
			}

			if field.Tag.Get("update") != "-" {
				updateColumns = append(updateColumns, dbTag)
			}
		}

		if colTag == "" {
			columns = append(columns, column{name: dbTag, table: tableField})
		} else {
			columns = append(columns, column{name: colTag, table: tableField, alias: dbTag})
		}
	}

	return columns, insertColumns, updateColumns
}
