package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"resalab/infras/otel"
	"resalab/infras/postgres"
	"resalab/internal/domains/reservation/model"
	gDto "resalab/shared/dto"
	"resalab/shared/optional"
	gRepo "resalab/shared/repository"
)

type Reservation interface {
	InsertReturning(ctx context.Context, model model.Reservation) (int64, error)
	Find(ctx context.Context, filter gDto.FilterGroup, columns ...string) (optional.Optional[model.Reservation], error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ReplaceReturning(ctx context.Context, model model.Reservation, filter gDto.FilterGroup) (optional.Optional[model.Reservation], error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	repo := gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel)
	repo.Sortable = model.Sortable

	return &repositoryImpl{
		Repository: repo,
		db:         db,
		otel:       otel,
	}
}
