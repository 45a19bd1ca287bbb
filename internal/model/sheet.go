package model

import "time"

// Sheet is an append-only tabular store whose first row is Headers.
type Sheet struct {
	Name      string    `db:"name"`
	Headers   []string  `db:"-"`
	CreatedAt time.Time `db:"created_at"`
}

// Row is one appended record; its width must equal len(Sheet.Headers).
type Row []interface{}
