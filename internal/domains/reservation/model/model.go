package model

import (
	"resalab/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldTitle      = "title"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldReservedBy = "reserved_by"
	FieldComment    = "comment"
	FieldSalleID    = "salle_id"
)

// Sortable lists the properties a page request may sort on.
var Sortable = map[string]string{
	FieldID:         TableName + "." + FieldID,
	FieldTitle:      TableName + "." + FieldTitle,
	FieldStartTime:  TableName + "." + FieldStartTime,
	FieldEndTime:    TableName + "." + FieldEndTime,
	FieldReservedBy: TableName + "." + FieldReservedBy,
	FieldComment:    TableName + "." + FieldComment,
	FieldSalleID:    TableName + "." + FieldSalleID,
}

type Reservation struct {
	ID         int64     `db:"id" insert:"-"`
	Title      string    `db:"title"`
	StartTime  time.Time `db:"start_time"`
	EndTime    time.Time `db:"end_time"`
	ReservedBy *string   `db:"reserved_by"`
	Comment    *string   `db:"comment"`
	SalleID    *int64    `db:"salle_id"`
	model.Metadata
}
