package handlers

import (
	"context"

	"github.com/vskc23/user-profile-integration/internal/models"
	"github.com/vskc23/user-profile-integration/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockProfile struct {
	registerUser *models.User
	registerErr  error
	profileUser  *models.User
	profileErr   error

	lastRegisterUsername string
	lastRegisterPassword string
	lastProfileUsername  string
}

func (m *mockProfile) Register(ctx context.Context, username, password string) (*models.User, error) {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerUser, m.registerErr
}

func (m *mockProfile) GetProfile(ctx context.Context, username string) (*models.User, error) {
	m.lastProfileUsername = username
	return m.profileUser, m.profileErr
}

type mockImages struct {
	attachImage *models.Image
	attachErr   error
	detachErr   error

	attachCalls     int
	detachCalls     int
	lastAttachUser  string
	lastAttachBytes []byte
	lastDetachUser  string
	lastDetachImgID int
}

func (m *mockImages) Attach(ctx context.Context, username string, data []byte) (*models.Image, error) {
	m.attachCalls++
	m.lastAttachUser = username
	m.lastAttachBytes = data
	return m.attachImage, m.attachErr
}

func (m *mockImages) Detach(ctx context.Context, username string, imageID int) error {
	m.detachCalls++
	m.lastDetachUser = username
	m.lastDetachImgID = imageID
	return m.detachErr
}

type mockAuth struct {
	verifyID    int
	verifyErr   error
	genToken    string
	genTokenErr error
	parseID     int
	parseErr    error

	lastVerifyUsername string
	lastVerifyPassword string
	lastParseToken     string
}

func (m *mockAuth) Verify(ctx context.Context, username, password string) (int, error) {
	m.lastVerifyUsername = username
	m.lastVerifyPassword = password
	return m.verifyID, m.verifyErr
}

func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	return m.genToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
