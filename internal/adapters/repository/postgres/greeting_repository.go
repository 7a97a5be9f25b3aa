package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-user-greeter/internal/core/hello"
	pgdb "github.com/ogurasousui/codex-user-greeter/internal/platform/db/postgres"
)

const uniqueViolationCode = "23505"

// GreetingRepository は PostgreSQL を利用した挨拶履歴の実装です。
type GreetingRepository struct {
	pool      pgdb.Queryer
	tx        *pgdb.TransactionManager
	retention int
}

// NewGreetingRepository は GreetingRepository を生成します。
// retention が正の場合、記録のたびに直前に記録したものを含めて retention 件まで履歴を残します。
func NewGreetingRepository(db pgdb.DB, retention int) *GreetingRepository {
	return &GreetingRepository{pool: db, tx: pgdb.NewTransactionManager(db), retention: retention}
}

// Record は挨拶を記録します。
func (r *GreetingRepository) Record(ctx context.Context, g *hello.Greeting) (*hello.Greeting, error) {
	var recorded *hello.Greeting

	err := r.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		exec := pgdb.QueryerFromContext(ctx, r.pool)
		row := exec.QueryRow(ctx, `
        INSERT INTO greetings (id, name, message, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, message, created_at
    `, g.ID, g.Name, g.Message, g.CreatedAt)

		created, err := scanGreeting(row)
		if err != nil {
			return translatePgError(err)
		}

		if r.retention > 0 {
			// 時刻が古い行でも、記録した直後の行は削除対象から外す
			if _, err := exec.Exec(ctx, `
        DELETE FROM greetings
         WHERE id IN (
            SELECT id
              FROM greetings
             WHERE id <> $2
             ORDER BY created_at DESC, id DESC
            OFFSET $1
         )
    `, r.retention-1, created.ID); err != nil {
				return fmt.Errorf("prune greetings: %w", err)
			}
		}

		recorded = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recorded, nil
}

// ListRecent は新しい順に挨拶履歴を取得します。読み取り専用トランザクション内で実行します。
func (r *GreetingRepository) ListRecent(ctx context.Context, limit int) ([]*hello.Greeting, error) {
	if limit <= 0 {
		return nil, hello.ErrInvalidLimit
	}

	greetings := make([]*hello.Greeting, 0, limit)

	err := r.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		exec := pgdb.QueryerFromContext(ctx, r.pool)
		rows, err := exec.Query(ctx, `
        SELECT id, name, message, created_at
          FROM greetings
         ORDER BY created_at DESC, id DESC
         LIMIT $1
    `, limit)
		if err != nil {
			return translatePgError(err)
		}
		defer rows.Close()

		for rows.Next() {
			g, err := scanGreeting(rows)
			if err != nil {
				return err
			}
			greetings = append(greetings, g)
		}

		return translatePgError(rows.Err())
	})
	if err != nil {
		return nil, err
	}

	return greetings, nil
}

func scanGreeting(row pgx.Row) (*hello.Greeting, error) {
	var (
		id        string
		name      string
		message   string
		createdAt time.Time
	)

	if err := row.Scan(&id, &name, &message, &createdAt); err != nil {
		return nil, err
	}

	return &hello.Greeting{
		ID:        id,
		Name:      name,
		Message:   message,
		CreatedAt: createdAt,
	}, nil
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolationCode {
			return hello.ErrGreetingAlreadyExists
		}
	}
	return err
}
