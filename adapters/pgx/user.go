package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"

	"tasktrack"
)

func (a *Adapter) CreateUser(user *tasktrack.User) error {
	ctx := context.Background()

	query := `INSERT INTO public.users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := a.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (a *Adapter) GetUserByID(id int64) (*tasktrack.User, error) {
	ctx := context.Background()
	q := `SELECT id, username, email, password_hash, created_at FROM public.users WHERE id = $1`

	user := &tasktrack.User{}
	err := a.pool.QueryRow(ctx, q, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, tasktrack.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) GetUserByName(username string) (*tasktrack.User, error) {
	ctx := context.Background()
	q := `SELECT id, username, email, password_hash, created_at FROM public.users WHERE username = $1`

	user := &tasktrack.User{}
	err := a.pool.QueryRow(ctx, q, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, tasktrack.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) GetUserByEmail(email string) (*tasktrack.User, error) {
	ctx := context.Background()
	q := `SELECT id, username, email, password_hash, created_at FROM public.users WHERE email = $1`

	user := &tasktrack.User{}
	err := a.pool.QueryRow(ctx, q, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, tasktrack.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
