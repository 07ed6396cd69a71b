package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/deppfellow/item-service/internal/database"
	"github.com/deppfellow/item-service/internal/model/item"
)

// The id parameter is cast to bigint so an id beyond the serial column's
// range matches no row instead of failing to encode.
const (
	listItemsQuery  = `SELECT id, name, created_at FROM items ORDER BY id`
	getItemQuery    = `SELECT id, name, created_at FROM items WHERE id = $1::bigint`
	createItemQuery = `INSERT INTO items (name) VALUES ($1) RETURNING id, name, created_at`
	deleteItemQuery = `DELETE FROM items WHERE id = $1::bigint`
)

type ItemRepository struct {
	db Connector
}

func NewItemRepository(db Connector) *ItemRepository {
	return &ItemRepository{db: db}
}

// ListItems returns all items ordered by ascending id. The result is never nil.
func (r *ItemRepository) ListItems(ctx context.Context) ([]item.Item, error) {
	items := []item.Item{}

	err := r.db.WithConn(ctx, func(conn database.Conn) error {
		rows, err := conn.Query(ctx, listItemsQuery)
		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var it item.Item
			if err := rows.Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
				return err
			}
			items = append(items, it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	return items, nil
}

// CreateItem inserts an item and commits before returning the stored row.
func (r *ItemRepository) CreateItem(ctx context.Context, name string) (*item.Item, error) {
	var created item.Item

	err := r.db.WithConn(ctx, func(conn database.Conn) error {
		return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
			return tx.QueryRow(ctx, createItemQuery, name).
				Scan(&created.ID, &created.Name, &created.CreatedAt)
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert item")
	}

	return &created, nil
}

// GetItem returns the item with id. pgx.ErrNoRows stays in the error chain
// when there is none.
func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*item.Item, error) {
	var found item.Item

	err := r.db.WithConn(ctx, func(conn database.Conn) error {
		return conn.QueryRow(ctx, getItemQuery, id).
			Scan(&found.ID, &found.Name, &found.CreatedAt)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get item %d", id)
	}

	return &found, nil
}

// DeleteItem removes the item with id and reports the affected row count.
func (r *ItemRepository) DeleteItem(ctx context.Context, id int64) (int64, error) {
	var deleted int64

	err := r.db.WithConn(ctx, func(conn database.Conn) error {
		return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
			tag, err := tx.Exec(ctx, deleteItemQuery, id)
			if err != nil {
				return err
			}
			deleted = tag.RowsAffected()
			return nil
		})
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to delete item %d", id)
	}

	return deleted, nil
}
