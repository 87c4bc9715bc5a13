package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"cmp"
	"context"
	"fmt"
	"resalab/infras/otel"
	"resalab/infras/postgres"
	"resalab/internal/domains/salle/model"
	"resalab/shared"
	"resalab/shared/constant"
	gDto "resalab/shared/dto"
	"resalab/shared/optional"
	gRepo "resalab/shared/repository"
	"slices"

	"github.com/jmoiron/sqlx"
)

type Salle interface {
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	InsertWithEquipments(ctx context.Context, salle model.Salle) (model.Salle, error)
	ReplaceWithEquipments(ctx context.Context, salle model.Salle) (optional.Optional[model.Salle], error)
	GetAllWithEagerRelationships(ctx context.Context) ([]model.Salle, error)
	FindWithEagerRelationships(ctx context.Context, id int64) (optional.Optional[model.Salle], error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Salle]
	links gRepo.Repository[model.SalleEquipment]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Salle {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Salle](model.EntityName, model.TableName, model.FieldID, db, otel),
		links:      gRepo.NewRepository[model.SalleEquipment](model.EntityName+"_equipment", model.LinkTableName, model.FieldSalleID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertWithEquipments inserts the salle and its equipment links in one transaction and
// returns the stored salle read back inside that transaction.
func (r *repositoryImpl) InsertWithEquipments(ctx context.Context, salle model.Salle) (saved model.Salle, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".salle.InsertWithEquipments")
	defer scope.End()

	err = r.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		id, err := r.InsertReturningTx(ctx, sqltx, salle)
		if err != nil {
			return err
		}

		salle.ID = id

		if err = r.links.InsertBulkTx(ctx, sqltx, salle.Links()); err != nil {
			return err
		}

		found, err := r.findTx(ctx, sqltx, salle.ID)
		if err != nil {
			return err
		}

		saved, _ = found.Get()

		return nil
	})
	if err != nil {
		return model.Salle{}, fmt.Errorf("failed to insert salle with equipments: %w", err)
	}

	return saved, nil
}

// ReplaceWithEquipments overwrites the salle row and swaps its equipment links in one transaction.
// An unknown salle is reported as Absent and nothing is written.
func (r *repositoryImpl) ReplaceWithEquipments(ctx context.Context, salle model.Salle) (saved optional.Optional[model.Salle], err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".salle.ReplaceWithEquipments")
	defer scope.End()

	saved = optional.Absent[model.Salle]()
	filter := shared.FilterByID(salle.ID, model.FieldID, model.TableName)

	err = r.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		exist, err := r.ExistTx(ctx, sqltx, filter)
		if err != nil || !exist {
			return err
		}

		if err = r.ReplaceTx(ctx, sqltx, salle); err != nil {
			return err
		}

		if err = r.links.DeleteTx(ctx, sqltx, shared.FilterByID(salle.ID, model.FieldSalleID, model.LinkTableName)); err != nil {
			return err
		}

		if err = r.links.InsertBulkTx(ctx, sqltx, salle.Links()); err != nil {
			return err
		}

		saved, err = r.findTx(ctx, sqltx, salle.ID)

		return err
	})
	if err != nil {
		return optional.Absent[model.Salle](), fmt.Errorf("failed to replace salle with equipments: %w", err)
	}

	return saved, nil
}

// GetAllWithEagerRelationships loads every salle, then every link of those salles in a second query.
func (r *repositoryImpl) GetAllWithEagerRelationships(ctx context.Context) ([]model.Salle, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".salle.GetAllWithEagerRelationships")
	defer scope.End()

	salles, err := r.List(ctx, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)

		return nil, err //nolint:wrapcheck
	}

	if err = r.attachEquipments(ctx, nil, salles); err != nil {
		scope.TraceError(err)

		return nil, err
	}

	return salles, nil
}

func (r *repositoryImpl) FindWithEagerRelationships(ctx context.Context, id int64) (optional.Optional[model.Salle], error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".salle.FindWithEagerRelationships")
	defer scope.End()

	found, err := r.Find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		scope.TraceError(err)

		return found, err //nolint:wrapcheck
	}

	return r.withEquipments(ctx, nil, found)
}

// findTx is FindWithEagerRelationships on the write connection of sqltx.
func (r *repositoryImpl) findTx(ctx context.Context, sqltx *sqlx.Tx, id int64) (optional.Optional[model.Salle], error) {
	found, err := r.FindTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return found, err //nolint:wrapcheck
	}

	return r.withEquipments(ctx, sqltx, found)
}

func (r *repositoryImpl) withEquipments(ctx context.Context, sqltx *sqlx.Tx, found optional.Optional[model.Salle]) (optional.Optional[model.Salle], error) {
	salle, ok := found.Get()
	if !ok {
		return found, nil
	}

	salles := []model.Salle{salle}
	if err := r.attachEquipments(ctx, sqltx, salles); err != nil {
		return optional.Absent[model.Salle](), err
	}

	return optional.Found(salles[0]), nil
}

// attachEquipments loads the links of salles, through sqltx when it is set.
func (r *repositoryImpl) attachEquipments(ctx context.Context, sqltx *sqlx.Tx, salles []model.Salle) error {
	if len(salles) == 0 {
		return nil
	}

	ids := make([]int64, len(salles))
	for i, salle := range salles {
		ids[i] = salle.ID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSalleID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    model.LinkTableName,
			},
		},
	}

	var (
		links []model.SalleEquipment
		err   error
	)

	if sqltx != nil {
		links, err = r.links.ListTx(ctx, sqltx, filter)
	} else {
		links, err = r.links.List(ctx, filter)
	}

	if err != nil {
		return fmt.Errorf("failed to load salle equipments: %w", err)
	}

	bySalle := make(map[int64][]model.Equipment, len(salles))
	for _, link := range links {
		bySalle[link.SalleID] = append(bySalle[link.SalleID], model.Equipment{ID: link.EquipmentID, Name: link.EquipmentName})
	}

	for i := range salles {
		equipments := bySalle[salles[i].ID]
		slices.SortFunc(equipments, func(a, b model.Equipment) int {
			return cmp.Compare(a.ID, b.ID)
		})

		if equipments == nil {
			equipments = []model.Equipment{}
		}

		salles[i].Equipments = equipments
	}

	return nil
}
