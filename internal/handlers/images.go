package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/vskc23/user-profile-integration/internal/imagehost"
	"github.com/vskc23/user-profile-integration/internal/service"

	"github.com/gin-gonic/gin"
)

// Plain-text reasons returned on remote-host failures.
const (
	msgUploadFailed   = "Image upload failed"
	msgDeletionFailed = "Image deletion failed"
)

// maxUploadBytes caps the multipart image payload (10 MB, the remote
// host's own limit for base64 uploads).
const maxUploadBytes = 10 << 20

// @Summary      Attach an image to a profile
// @Description  Uploads the file to the remote image host and records the returned link.
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Param        file      formData  file    true  "Image file"
// @Success      200       {object}  models.Image
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      500       {string}  string  "Image upload failed"
// @Router       /api/users/{username}/images [post]
// @Security     BasicAuth
func (h *Handler) uploadImage(c *gin.Context) {
	username := c.Param("username")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing form file \"file\""})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, "unreadable form file", "upload_open_failed", err, "username", username)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, "unreadable form file", "upload_read_failed", err, "username", username)
		return
	}

	img, err := h.services.Attach(c.Request.Context(), username, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, imagehost.ErrUploadFailed):
			if h.log != nil {
				h.log.Errorw("image_upload_failed", "username", username, "err", err)
			}
			c.String(http.StatusInternalServerError, msgUploadFailed)
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to attach image", "image_attach_failed", err, "username", username)
		}
		return
	}

	if h.log != nil {
		h.log.Infow("image_attached", "username", username, "imageId", img.ID)
	}
	c.JSON(http.StatusOK, img)
}

// @Summary      Detach an image from a profile
// @Description  Deletes the image on the remote host first; the local record goes only after the host confirmed.
// @Tags         images
// @Produce      plain
// @Param        username  path      string  true  "Username"
// @Param        imageId   path      int     true  "Image ID"
// @Success      200       {string}  string  "Image deleted successfully"
// @Failure      401       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      500       {string}  string  "Image deletion failed"
// @Router       /api/users/{username}/images/{imageId} [delete]
// @Security     BasicAuth
func (h *Handler) deleteImage(c *gin.Context) {
	username := c.Param("username")

	imageID, err := strconv.Atoi(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	err = h.services.Detach(c.Request.Context(), username, imageID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrImageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		case errors.Is(err, imagehost.ErrDeletionFailed):
			if h.log != nil {
				h.log.Errorw("image_deletion_failed", "username", username, "imageId", imageID, "err", err)
			}
			c.String(http.StatusInternalServerError, msgDeletionFailed)
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to detach image", "image_detach_failed", err, "username", username, "imageId", imageID)
		}
		return
	}

	if h.log != nil {
		h.log.Infow("image_detached", "username", username, "imageId", imageID)
	}
	c.String(http.StatusOK, "Image deleted successfully")
}
