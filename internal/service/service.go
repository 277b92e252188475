package service

import (
	"context"
	"time"

	"github.com/vskc23/user-profile-integration/internal/imagehost"
	"github.com/vskc23/user-profile-integration/internal/models"
	"github.com/vskc23/user-profile-integration/internal/repository"
)

// Profile exposes registration and profile retrieval.
type Profile interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	GetProfile(ctx context.Context, username string) (*models.User, error)
}

// Images exposes the image attach/detach lifecycle against the remote host.
type Images interface {
	Attach(ctx context.Context, username string, data []byte) (*models.Image, error)
	Detach(ctx context.Context, username string, imageID int) error
}

// Authorization verifies inbound credentials and issues/parses tokens for
// the bearer scheme.
type Authorization interface {
	Verify(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// ImageHost is the remote host surface the image service depends on.
// Satisfied by *imagehost.Client.
type ImageHost interface {
	Upload(ctx context.Context, data []byte) (*imagehost.UploadResult, error)
	Delete(ctx context.Context, deleteHash string) error
}

var _ ImageHost = (*imagehost.Client)(nil)

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Profile
	Images
	Authorization
}

// AuthConfig carries token-issuing parameters from configuration.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// NewService wires the repository layer and the remote host client into
// concrete services.
func NewService(repos *repository.Repository, host ImageHost, auth AuthConfig) *Service {
	return &Service{
		Profile:       NewProfileService(repos.Users),
		Images:        NewImageService(repos.Users, host),
		Authorization: NewAuthService(repos.Users, auth),
	}
}
