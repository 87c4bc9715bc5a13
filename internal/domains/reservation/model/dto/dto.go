package dto

import (
	"resalab/internal/domains/reservation/model"
	gDto "resalab/shared/dto"
	gModel "resalab/shared/model"
	"time"
)

// ReservationRequest is the body of both create and update. ID must be absent on create.
type ReservationRequest struct {
	ID         *int64    `json:"id,omitempty"`
	Title      string    `json:"title" validate:"required,notblank,max=100"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	ReservedBy *string   `json:"reserved_by,omitempty" validate:"omitempty,max=100"`
	Comment    *string   `json:"comment,omitempty" validate:"omitempty,max=255"`
	SalleID    *int64    `json:"salle_id,omitempty" validate:"omitempty,gt=0"`
}

// ToModel copies the request into a row. Times are truncated to the microsecond precision postgres stores.
func (r *ReservationRequest) ToModel(now time.Time) model.Reservation {
	reservation := model.Reservation{
		Title:      r.Title,
		StartTime:  r.StartTime.Truncate(time.Microsecond),
		EndTime:    r.EndTime.Truncate(time.Microsecond),
		ReservedBy: r.ReservedBy,
		Comment:    r.Comment,
		SalleID:    r.SalleID,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	if r.ID != nil {
		reservation.ID = *r.ID
	}

	return reservation
}

type ReservationResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	ReservedBy *string   `json:"reserved_by"`
	Comment    *string   `json:"comment"`
	SalleID    *int64    `json:"salle_id"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.Title = model.Title
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.ReservedBy = model.ReservedBy
	r.Comment = model.Comment
	r.SalleID = model.SalleID
	r.Metadata.FromModel(model.Metadata)
}

func NewReservationResponse(model model.Reservation) ReservationResponse {
	res := ReservationResponse{}
	res.FromModel(model)

	return res
}

func FromModels(models []model.Reservation) []ReservationResponse {
	responses := make([]ReservationResponse, len(models))
	for i, mod := range models {
		responses[i].FromModel(mod)
	}

	return responses
}
