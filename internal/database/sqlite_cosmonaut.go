package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type SQLiteCosmonautStore struct {
	db *sqlx.DB
}

func NewSQLiteCosmonautStore(db *sqlx.DB) *SQLiteCosmonautStore {
	return &SQLiteCosmonautStore{db: db}
}

func (s *SQLiteCosmonautStore) List(ctx context.Context) ([]Cosmonaut, error) {
	cosmonauts := []Cosmonaut{}
	err := s.db.SelectContext(ctx, &cosmonauts, "SELECT id, name, age FROM "+TableName+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list cosmonauts: %w", err)
	}
	return cosmonauts, nil
}

func (s *SQLiteCosmonautStore) Insert(ctx context.Context, name string, age int) (int64, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO "+TableName+"(name, age) VALUES(?, ?)", name, age)
	if err != nil {
		return 0, fmt.Errorf("insert cosmonaut: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert cosmonaut: last insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteCosmonautStore) Update(ctx context.Context, id int64, name string, age int) (int64, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE "+TableName+" SET name = ?, age = ? WHERE id = ?", name, age, id)
	if err != nil {
		return 0, fmt.Errorf("update cosmonaut %d: %w", id, err)
	}
	return rowsAffected(res)
}

func (s *SQLiteCosmonautStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+TableName+" WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete cosmonaut %d: %w", id, err)
	}
	return rowsAffected(res)
}
