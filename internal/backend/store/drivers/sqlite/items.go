package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hatchery/hatchd/internal/backend/domain"
	"github.com/hatchery/hatchd/internal/backend/store"
)

type itemsRepo struct {
	db dbtx
}

const itemColumns = `id, name, price, description, created_at, updated_at`

func scanItem(scan func(dest ...any) error) (domain.Item, error) {
	var (
		it   domain.Item
		desc sql.NullString
	)
	err := scan(&it.ID, &it.Name, &it.Price, &desc, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return domain.Item{}, err
	}
	it.Description = mapNullString(desc)
	return it, nil
}

func (r *itemsRepo) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	it, err := scanItem(row.Scan)
	if err != nil {
		return domain.Item{}, mapNotFound(err)
	}
	return it, nil
}

func (r *itemsRepo) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *itemsRepo) CreateItem(ctx context.Context, it domain.Item) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (id, name, price, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		it.ID,
		it.Name,
		it.Price,
		mapStringNull(it.Description),
		now,
		now,
	)
	return mapConflict(err)
}

func (r *itemsRepo) UpdateItem(ctx context.Context, it domain.Item) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET name = ?, price = ?, updated_at = ? WHERE id = ?`,
		it.Name,
		it.Price,
		time.Now().UTC(),
		it.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *itemsRepo) DeleteItem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
