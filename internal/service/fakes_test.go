package service

import (
	"context"
	"errors"

	"github.com/vskc23/user-profile-integration/internal/imagehost"
	"github.com/vskc23/user-profile-integration/internal/models"
	"github.com/vskc23/user-profile-integration/internal/repository"
)

// fakeUsers is an in-memory stand-in for the SQLite repository.
type fakeUsers struct {
	users       map[string]*models.User
	nextUserID  int
	nextImageID int

	createErr error
	getErr    error
	addErr    error
	removeErr error

	addImageCalls    int
	removeImageCalls int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*models.User{}}
}

func (f *fakeUsers) Create(ctx context.Context, username, passwordHash string) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, ok := f.users[username]; ok {
		return 0, repository.ErrUsernameTaken
	}
	f.nextUserID++
	f.users[username] = &models.User{
		ID:           f.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		Images:       []models.Image{},
	}
	return f.nextUserID, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	// return a copy so services cannot mutate the stored record directly
	cp := *u
	cp.Images = append([]models.Image(nil), u.Images...)
	return &cp, nil
}

func (f *fakeUsers) AddImage(ctx context.Context, userID int, link, deleteHash string) (int, error) {
	f.addImageCalls++
	if f.addErr != nil {
		return 0, f.addErr
	}
	for _, u := range f.users {
		if u.ID == userID {
			f.nextImageID++
			u.Images = append(u.Images, models.Image{ID: f.nextImageID, Link: link, DeleteHash: deleteHash})
			return f.nextImageID, nil
		}
	}
	return 0, errors.New("no such user")
}

func (f *fakeUsers) RemoveImage(ctx context.Context, userID, imageID int) error {
	f.removeImageCalls++
	if f.removeErr != nil {
		return f.removeErr
	}
	for _, u := range f.users {
		if u.ID != userID {
			continue
		}
		for i, img := range u.Images {
			if img.ID == imageID {
				u.Images = append(u.Images[:i], u.Images[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("no such image")
}

var _ repository.Users = (*fakeUsers)(nil)

// fakeHost records calls against the remote image host.
type fakeHost struct {
	uploadResult *imagehost.UploadResult
	uploadErr    error
	deleteErr    error

	uploadCalls    int
	deleteCalls    int
	lastUploaded   []byte
	lastDeleteHash string
}

func (f *fakeHost) Upload(ctx context.Context, data []byte) (*imagehost.UploadResult, error) {
	f.uploadCalls++
	f.lastUploaded = data
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadResult, nil
}

func (f *fakeHost) Delete(ctx context.Context, deleteHash string) error {
	f.deleteCalls++
	f.lastDeleteHash = deleteHash
	return f.deleteErr
}

var _ ImageHost = (*fakeHost)(nil)
