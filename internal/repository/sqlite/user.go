package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/yunwei-labs/mechsite/internal/domain"
)

const userColumns = `id, email, name, password_hash, role, created_at, updated_at`

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserRepo implements the UserRepository interface using SQLite
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create creates a new user
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ?`, userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = ?`, userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// List retrieves users with pagination
func (r *UserRepo) List(ctx context.Context, filter *domain.UserListFilter) ([]*domain.User, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, "(name LIKE ? OR email LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Role != "" {
		conditions = append(conditions, "role = ?")
		args = append(args, filter.Role)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users %s", whereClause)

	offset := (filter.Page - 1) * filter.Limit
	pageQuery := fmt.Sprintf(`SELECT %s FROM users %s ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		userColumns, whereClause)
	pageArgs := append(append([]interface{}{}, args...), filter.Limit, offset)

	var (
		wg       sync.WaitGroup
		total    int
		countErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		countErr = r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	}()

	rows, err := r.db.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		wg.Wait()
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	var scanErr error
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			scanErr = fmt.Errorf("failed to scan user: %w", err)
			break
		}
		users = append(users, user)
	}
	if scanErr == nil {
		scanErr = rows.Err()
	}

	wg.Wait()
	if scanErr != nil {
		return nil, 0, scanErr
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", countErr)
	}

	return users, total, nil
}
