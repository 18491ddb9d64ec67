package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/logger"
)

// User is the authentication record. PasswordHash never leaves this package's
// callers; the public shape is produced by the users mapping table, which has
// no entry for senha_hash.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepo {
	return UserRepo{DB: db}
}

func (r UserRepo) userError(action string, err error) error {
	logger.Global().Error().Err(err).Str("entity", "users").Msg("erro no banco de dados")
	return domain.UpstreamError{Msg: "erro ao " + action, Err: err}
}

// GetByEmail loads the credential record for login.
func (r UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, nome, email, senha_hash, role, created_at
        FROM usuarios WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.NotFoundError{Resource: "users"}
		}
		return u, r.userError("buscar users", err)
	}
	return u, nil
}

// GetByID resolves the identity attached to a token.
func (r UserRepo) GetByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, nome, email, senha_hash, role, created_at
        FROM usuarios WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.NotFoundError{Resource: "users"}
		}
		return u, r.userError("buscar users", err)
	}
	return u, nil
}

// Create registers a new user. A duplicate email is a ConflictError.
func (r UserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx, `
        INSERT INTO usuarios (nome, email, senha_hash, role, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, nome, email, senha_hash, role, created_at`,
		name, email, passwordHash, role, time.Now().UTC()).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return u, domain.ConflictError{Resource: "email", Msg: "email já cadastrado"}
		}
		return u, r.userError("criar users", err)
	}
	return u, nil
}

// List returns every user; the admin panel user list is small and unfiltered.
func (r UserRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, nome, email, senha_hash, role, created_at
        FROM usuarios ORDER BY nome ASC`)
	if err != nil {
		return nil, r.userError("listar users", err)
	}
	defer func() { _ = rows.Close() }()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, r.userError("listar users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, r.userError("listar users", err)
	}
	return users, nil
}

// UpdateRole changes a user's role (admin only).
func (r UserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE usuarios SET role = $1 WHERE id = $2", role, id)
	if err != nil {
		return r.userError("atualizar users", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return r.userError("atualizar users", err)
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "users"}
	}
	return nil
}

// Public is the response shape for a user (no credential material).
func (u User) Public() map[string]any {
	return map[string]any{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"createdAt": u.CreatedAt,
	}
}
