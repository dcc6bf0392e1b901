package database

import (
	"context"
	"errors"
)

// TableName is the table holding cosmonaut records.
const TableName = "cosmonaut_table"

var ErrUnknownDriver = errors.New("unknown database driver")

type Cosmonaut struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Age  int    `db:"age"`
}

// CosmonautStore is the persistence contract used by the handlers.
// Update and Delete report the number of affected rows; zero means no
// record had the given id.
type CosmonautStore interface {
	List(ctx context.Context) ([]Cosmonaut, error)
	Insert(ctx context.Context, name string, age int) (int64, error)
	Update(ctx context.Context, id int64, name string, age int) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
