package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
)

// DictionaryRepository stores dictionary entries append-only.
type DictionaryRepository interface {
	Append(ctx context.Context, kind classifier.Kind, entry classifier.Entry) error
	List(ctx context.Context, kind classifier.Kind) ([]classifier.Entry, error)
}

type dictionaryRepository struct {
	pool *pgxpool.Pool
}

// NewDictionaryRepository returns a Postgres-backed implementation.
func NewDictionaryRepository(pool *pgxpool.Pool) DictionaryRepository {
	return &dictionaryRepository{pool: pool}
}

func (r *dictionaryRepository) Append(ctx context.Context, kind classifier.Kind, entry classifier.Entry) error {
	const query = `
        INSERT INTO dictionary_entries (kind, word_key, word, category)
        VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, string(kind), entry.Key(), entry.Word, entry.Category)
	return mapPgError(err)
}

func (r *dictionaryRepository) List(ctx context.Context, kind classifier.Kind) ([]classifier.Entry, error) {
	const query = `
        SELECT word, category FROM dictionary_entries
        WHERE kind=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []classifier.Entry
	for rows.Next() {
		var e classifier.Entry
		if err := rows.Scan(&e.Word, &e.Category); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
