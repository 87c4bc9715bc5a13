package model

import "time"

// Metadata is managed by the server. CreatedAt is written once on insert.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  update:"-"`
	ModifiedAt time.Time `db:"modified_at"`
}
