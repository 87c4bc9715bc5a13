package dto

import (
	"resalab/shared/constant"
	"resalab/shared/model"
	"resalab/shared/timezone"
)

type Metadata struct {
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	if !model.CreatedAt.IsZero() {
		m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	}

	if !model.ModifiedAt.IsZero() {
		m.ModifiedAt = timezone.Format(model.ModifiedAt, constant.DateFormat)
	}
}
