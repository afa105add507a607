package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/Govind-619/BooksWishlist/models"
	"github.com/Govind-619/BooksWishlist/repository"
	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/gin-gonic/gin"
)

// ErrBadCredentials is returned when the email is unknown or the password
// does not match
var ErrBadCredentials = errors.New("bad credentials")

// AuthenticatedHandler handles a request on behalf of a verified caller
type AuthenticatedHandler func(c *gin.Context, caller *models.User)

// Authenticate verifies an email/password pair against the store
func Authenticate(ctx context.Context, store repository.Store, email, password string) (*models.User, error) {
	user, err := store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// RequireBasicAuth verifies HTTP Basic credentials on every request and
// passes the caller to h. Nothing is cached between requests.
func RequireBasicAuth(store repository.Store, h AuthenticatedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			utils.LogError("Authentication failed for %s %s: missing credentials", c.Request.Method, c.Request.URL.Path)
			deny(c)
			return
		}

		caller, err := Authenticate(c.Request.Context(), store, email, password)
		if err != nil {
			if !errors.Is(err, ErrBadCredentials) {
				utils.RespondError(c, err)
				c.Abort()
				return
			}
			utils.LogError("Authentication failed for %s", email)
			deny(c)
			return
		}

		utils.LogDebug("Authenticated user %d", caller.ID)
		h(c, caller)
	}
}

func deny(c *gin.Context) {
	c.Header("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", utils.AuthRealm))
	utils.Unauthorized(c, utils.ErrUnauthorized)
	c.Abort()
}
