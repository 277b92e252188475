package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vskc23/user-profile-integration/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash) VALUES (?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
	selectImagesByUserSQL   = `SELECT id, link, delete_hash FROM images WHERE user_id = ? ORDER BY id ASC`
	insertImageSQL          = `INSERT INTO images (user_id, link, delete_hash) VALUES (?, ?, ?)`
	deleteImageSQL          = `DELETE FROM images WHERE id = ? AND user_id = ?`
)

// Create inserts a new user and returns its ID. A duplicate username yields
// ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user with its images. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}

	images, err := r.imagesByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Images = images
	return &u, nil
}

// AddImage appends an image row to the user and returns the new image ID.
func (r *UserRepository) AddImage(ctx context.Context, userID int, link, deleteHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertImageSQL, userID, link, deleteHash)
	if err != nil {
		return 0, fmt.Errorf("insert image for user %d: %w", userID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for image of user %d: %w", userID, err)
	}
	return int(lastID), nil
}

// RemoveImage deletes one image row owned by the user. Deleting an image
// that is not there is reported as an error so callers never believe a
// removal happened when it did not.
func (r *UserRepository) RemoveImage(ctx context.Context, userID, imageID int) error {
	res, err := r.db.ExecContext(ctx, deleteImageSQL, imageID, userID)
	if err != nil {
		return fmt.Errorf("delete image %d of user %d: %w", imageID, userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for image %d of user %d: %w", imageID, userID, err)
	}
	if affected == 0 {
		return fmt.Errorf("image %d of user %d: no such row", imageID, userID)
	}
	return nil
}

func (r *UserRepository) imagesByUser(ctx context.Context, userID int) ([]models.Image, error) {
	rows, err := r.db.QueryContext(ctx, selectImagesByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select images for user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	images := make([]models.Image, 0)
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.Link, &img.DeleteHash); err != nil {
			return nil, fmt.Errorf("scan image for user %d: %w", userID, err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images for user %d: %w", userID, err)
	}
	return images, nil
}

// isUniqueViolation reports whether err is SQLite's unique-constraint error.
// modernc.org/sqlite exposes it only through the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
