package model

import (
	"resalab/shared/model"
)

const (
	TableName          = "salles"
	EntityName         = "salle"
	EquipmentTableName = "equipments"
	LinkTableName      = "salle_equipments"

	FieldID          = "id"
	FieldName        = "name"
	FieldCapacity    = "capacity"
	FieldLocation    = "location"
	FieldSalleID     = "salle_id"
	FieldEquipmentID = "equipment_id"
)

type Salle struct {
	ID         int64       `db:"id" insert:"-"`
	Name       string      `db:"name"`
	Capacity   *int        `db:"capacity"`
	Location   *string     `db:"location"`
	Equipments []Equipment `db:"-"`
	model.Metadata
}

type Equipment struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// SalleEquipment is one row of the many-to-many link, joined with the equipment name on reads.
type SalleEquipment struct {
	SalleID       int64  `db:"salle_id"`
	EquipmentID   int64  `db:"equipment_id"`
	EquipmentName string `db:"equipment_name" table:"equipments" column:"name"`
}

func (SalleEquipment) GetJoinQuery() string {
	return "JOIN equipments ON equipments.id = salle_equipments.equipment_id"
}

// Links returns one link per distinct equipment of the salle.
func (s Salle) Links() []SalleEquipment {
	links := make([]SalleEquipment, 0, len(s.Equipments))
	seen := make(map[int64]struct{}, len(s.Equipments))

	for _, equipment := range s.Equipments {
		if _, ok := seen[equipment.ID]; ok {
			continue
		}

		seen[equipment.ID] = struct{}{}
		links = append(links, SalleEquipment{SalleID: s.ID, EquipmentID: equipment.ID})
	}

	return links
}
