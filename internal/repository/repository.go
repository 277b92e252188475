package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vskc23/user-profile-integration/internal/models"
	"github.com/vskc23/user-profile-integration/internal/repository/db"
)

// ErrUsernameTaken is returned by Create when the username already exists.
// The users table enforces uniqueness; duplicates are rejected, never
// silently overwritten.
var ErrUsernameTaken = errors.New("username already taken")

// Users persists user records and the images attached to them.
type Users interface {
	Create(ctx context.Context, username, passwordHash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	AddImage(ctx context.Context, userID int, link, deleteHash string) (int, error)
	RemoveImage(ctx context.Context, userID, imageID int) error
}

type Repository struct {
	Users Users
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(sqlDB),
	}
}

// InitDB opens the SQLite database at path and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
