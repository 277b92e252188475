package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vskc23/user-profile-integration/internal/imagehost"
)

func registeredUser(t *testing.T, users *fakeUsers, username string) {
	t.Helper()
	if _, err := NewProfileService(users).Register(context.Background(), username, "pw1"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
}

func TestImageService_Attach(t *testing.T) {
	users := newFakeUsers()
	registeredUser(t, users, "alice")
	host := &fakeHost{uploadResult: &imagehost.UploadResult{Link: "http://h/a.png", DeleteHash: "h1"}}
	svc := NewImageService(users, host)

	img, err := svc.Attach(context.Background(), "alice", []byte("X"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.ID != 1 || img.Link != "http://h/a.png" || img.DeleteHash != "h1" {
		t.Fatalf("unexpected image: %+v", img)
	}
	if host.uploadCalls != 1 || string(host.lastUploaded) != "X" {
		t.Fatalf("expected one upload of the raw bytes, got %d calls", host.uploadCalls)
	}

	profile, _ := users.GetByUsername(context.Background(), "alice")
	if len(profile.Images) != 1 || profile.Images[0].Link != "http://h/a.png" {
		t.Fatalf("image not persisted on profile: %+v", profile.Images)
	}
}

func TestImageService_Attach_UnknownUser_NoUploadCall(t *testing.T) {
	host := &fakeHost{uploadResult: &imagehost.UploadResult{Link: "l", DeleteHash: "h"}}
	svc := NewImageService(newFakeUsers(), host)

	_, err := svc.Attach(context.Background(), "ghost", []byte("X"))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if host.uploadCalls != 0 {
		t.Fatalf("upload must not be called for unknown user, got %d calls", host.uploadCalls)
	}
}

func TestImageService_Attach_UploadFailed_LeavesCollectionUnchanged(t *testing.T) {
	users := newFakeUsers()
	registeredUser(t, users, "alice")
	host := &fakeHost{uploadErr: imagehost.ErrUploadFailed}
	svc := NewImageService(users, host)

	_, err := svc.Attach(context.Background(), "alice", []byte("X"))
	if !errors.Is(err, imagehost.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if users.addImageCalls != 0 {
		t.Fatalf("local write must not happen after failed upload")
	}
	profile, _ := users.GetByUsername(context.Background(), "alice")
	if len(profile.Images) != 0 {
		t.Fatalf("image collection changed after failed upload: %+v", profile.Images)
	}
}

func TestImageService_Detach(t *testing.T) {
	users := newFakeUsers()
	registeredUser(t, users, "alice")
	host := &fakeHost{uploadResult: &imagehost.UploadResult{Link: "http://h/a.png", DeleteHash: "h1"}}
	svc := NewImageService(users, host)

	img, err := svc.Attach(context.Background(), "alice", []byte("X"))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	if err := svc.Detach(context.Background(), "alice", img.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host.deleteCalls != 1 || host.lastDeleteHash != "h1" {
		t.Fatalf("expected remote delete with stored hash, got %d calls hash=%q", host.deleteCalls, host.lastDeleteHash)
	}
	profile, _ := users.GetByUsername(context.Background(), "alice")
	if len(profile.Images) != 0 {
		t.Fatalf("image still present after detach: %+v", profile.Images)
	}
}

func TestImageService_Detach_UnknownUser(t *testing.T) {
	host := &fakeHost{}
	svc := NewImageService(newFakeUsers(), host)

	err := svc.Detach(context.Background(), "ghost", 1)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if host.deleteCalls != 0 {
		t.Fatalf("remote delete must not be called for unknown user")
	}
}

func TestImageService_Detach_UnknownImage(t *testing.T) {
	users := newFakeUsers()
	registeredUser(t, users, "alice")
	host := &fakeHost{}
	svc := NewImageService(users, host)

	err := svc.Detach(context.Background(), "alice", 99)
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
	if host.deleteCalls != 0 {
		t.Fatalf("remote delete must not be called for unknown image")
	}
}

func TestImageService_Detach_RemoteFailure_KeepsLocalRecord(t *testing.T) {
	users := newFakeUsers()
	registeredUser(t, users, "alice")
	host := &fakeHost{uploadResult: &imagehost.UploadResult{Link: "http://h/a.png", DeleteHash: "h1"}}
	svc := NewImageService(users, host)

	img, err := svc.Attach(context.Background(), "alice", []byte("X"))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	host.deleteErr = imagehost.ErrDeletionFailed
	err = svc.Detach(context.Background(), "alice", img.ID)
	if !errors.Is(err, imagehost.ErrDeletionFailed) {
		t.Fatalf("expected ErrDeletionFailed, got %v", err)
	}
	if users.removeImageCalls != 0 {
		t.Fatalf("local removal must not happen after failed remote delete")
	}
	profile, _ := users.GetByUsername(context.Background(), "alice")
	if len(profile.Images) != 1 {
		t.Fatalf("image must survive a failed remote delete: %+v", profile.Images)
	}
}

// Attach then detach returns the collection to its pre-attach state.
func TestImageService_AttachDetachRoundTrip(t *testing.T) {
	users := newFakeUsers()
	registeredUser(t, users, "alice")
	host := &fakeHost{uploadResult: &imagehost.UploadResult{Link: "http://h/keep.png", DeleteHash: "hk"}}
	svc := NewImageService(users, host)

	kept, err := svc.Attach(context.Background(), "alice", []byte("keep"))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	host.uploadResult = &imagehost.UploadResult{Link: "http://h/tmp.png", DeleteHash: "ht"}
	tmp, err := svc.Attach(context.Background(), "alice", []byte("tmp"))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	if err := svc.Detach(context.Background(), "alice", tmp.ID); err != nil {
		t.Fatalf("detach failed: %v", err)
	}

	profile, _ := users.GetByUsername(context.Background(), "alice")
	if len(profile.Images) != 1 {
		t.Fatalf("expected one remaining image, got %d", len(profile.Images))
	}
	if profile.Images[0].ID != kept.ID {
		t.Fatalf("wrong image survived: want id=%d, got id=%d", kept.ID, profile.Images[0].ID)
	}
}
