package handlers

import (
	"errors"
	"net/http"

	"github.com/vskc23/user-profile-integration/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for registration and token sign-in.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Register a new user
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "id, username"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		if h.log != nil {
			h.log.Infow("register_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.log != nil {
		h.log.Infow("user_registered", "username", u.Username, "id", u.ID)
	}
	c.JSON(http.StatusOK, gin.H{"id": u.ID, "username": u.Username})
}

// @Summary      Sign in for a bearer token
// @Description  Basic auth remains accepted on all protected routes; the token is an alternative.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/token [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("sign_in_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Get a user profile
// @Description  Returns the user with all attached images. Delete hashes are never included.
// @Tags         profile
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  models.User
// @Failure      401       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/{username} [get]
// @Security     BasicAuth
func (h *Handler) getProfile(c *gin.Context) {
	username := c.Param("username")

	u, err := h.services.GetProfile(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load profile", "get_profile_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, u)
}
