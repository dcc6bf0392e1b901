package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type PgCosmonautStore struct {
	db *sqlx.DB
}

func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func NewPgCosmonautStore(db *sqlx.DB) *PgCosmonautStore {
	return &PgCosmonautStore{db: db}
}

func (s *PgCosmonautStore) List(ctx context.Context) ([]Cosmonaut, error) {
	cosmonauts := []Cosmonaut{}
	err := s.db.SelectContext(ctx, &cosmonauts, "SELECT id, name, age FROM "+TableName+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list cosmonauts: %w", err)
	}
	return cosmonauts, nil
}

// Insert uses RETURNING because lib/pq does not support LastInsertId.
func (s *PgCosmonautStore) Insert(ctx context.Context, name string, age int) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, "INSERT INTO "+TableName+"(name, age) VALUES($1, $2) RETURNING id", name, age)
	if err != nil {
		return 0, fmt.Errorf("insert cosmonaut: %w", err)
	}
	return id, nil
}

func (s *PgCosmonautStore) Update(ctx context.Context, id int64, name string, age int) (int64, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE "+TableName+" SET name = $1, age = $2 WHERE id = $3", name, age, id)
	if err != nil {
		return 0, fmt.Errorf("update cosmonaut %d: %w", id, err)
	}
	return rowsAffected(res)
}

func (s *PgCosmonautStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+TableName+" WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete cosmonaut %d: %w", id, err)
	}
	return rowsAffected(res)
}
