package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vskc23/user-profile-integration/internal/models"
	"github.com/vskc23/user-profile-integration/internal/repository"
)

// ErrImageNotFound signals a detach request for an image ID the user's
// collection does not contain.
var ErrImageNotFound = errors.New("image not found")

// ImageService orchestrates the image lifecycle between the local store and
// the remote host. Both operations keep the remote call strictly before the
// local write: a failed remote call leaves local state untouched, and a
// local record never points at a remote resource that was not confirmed.
type ImageService struct {
	users repository.Users
	host  ImageHost
}

func NewImageService(users repository.Users, host ImageHost) *ImageService {
	return &ImageService{users: users, host: host}
}

var _ Images = (*ImageService)(nil)

// Attach uploads the image bytes to the remote host and, only after the
// host confirmed, records the returned link and delete hash on the user.
func (s *ImageService) Attach(ctx context.Context, username string, data []byte) (*models.Image, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", username, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	// Remote upload happens-before the local write. A crash after this
	// point can orphan a remote image, but never the reverse.
	res, err := s.host.Upload(ctx, data)
	if err != nil {
		return nil, err
	}

	id, err := s.users.AddImage(ctx, u.ID, res.Link, res.DeleteHash)
	if err != nil {
		return nil, fmt.Errorf("persist image for user %q: %w", username, err)
	}

	return &models.Image{
		ID:         id,
		Link:       res.Link,
		DeleteHash: res.DeleteHash,
	}, nil
}

// Detach deletes the image on the remote host and, only after the host
// confirmed, removes the local record. A failed remote deletion keeps the
// local record so the remote resource stays reclaimable.
func (s *ImageService) Detach(ctx context.Context, username string, imageID int) error {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("lookup user %q: %w", username, err)
	}
	if u == nil {
		return ErrUserNotFound
	}

	var target *models.Image
	for i := range u.Images {
		if u.Images[i].ID == imageID {
			target = &u.Images[i]
			break
		}
	}
	if target == nil {
		return ErrImageNotFound
	}

	if err := s.host.Delete(ctx, target.DeleteHash); err != nil {
		return err
	}

	if err := s.users.RemoveImage(ctx, u.ID, imageID); err != nil {
		return fmt.Errorf("remove image %d of user %q: %w", imageID, username, err)
	}
	return nil
}
