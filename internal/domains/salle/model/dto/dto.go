package dto

import (
	"resalab/internal/domains/salle/model"
	gDto "resalab/shared/dto"
	gModel "resalab/shared/model"
	"time"
)

// EquipmentRef points at a seeded equipment. Name is informational and ignored on writes.
type EquipmentRef struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name,omitempty"`
}

type SalleRequest struct {
	ID         *int64         `json:"id,omitempty"`
	Name       string         `json:"name" validate:"required,notblank,max=100"`
	Capacity   *int           `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Location   *string        `json:"location,omitempty" validate:"omitempty,max=100"`
	Equipments []EquipmentRef `json:"equipments,omitempty" validate:"omitempty,dive"`
}

func (r *SalleRequest) ToModel(now time.Time) model.Salle {
	salle := model.Salle{
		Name:       r.Name,
		Capacity:   r.Capacity,
		Location:   r.Location,
		Equipments: make([]model.Equipment, len(r.Equipments)),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	if r.ID != nil {
		salle.ID = *r.ID
	}

	for i, equipment := range r.Equipments {
		salle.Equipments[i] = model.Equipment{ID: equipment.ID, Name: equipment.Name}
	}

	return salle
}

type EquipmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SalleResponse struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	Capacity   *int                `json:"capacity"`
	Location   *string             `json:"location"`
	Equipments []EquipmentResponse `json:"equipments"`
	gDto.Metadata
}

func (r *SalleResponse) FromModel(model model.Salle) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Location = model.Location
	r.Metadata.FromModel(model.Metadata)

	r.Equipments = make([]EquipmentResponse, len(model.Equipments))
	for i, equipment := range model.Equipments {
		r.Equipments[i] = EquipmentResponse{ID: equipment.ID, Name: equipment.Name}
	}
}

func NewSalleResponse(model model.Salle) SalleResponse {
	res := SalleResponse{}
	res.FromModel(model)

	return res
}

func FromModels(models []model.Salle) []SalleResponse {
	responses := make([]SalleResponse, len(models))
	for i, mod := range models {
		responses[i].FromModel(mod)
	}

	return responses
}
