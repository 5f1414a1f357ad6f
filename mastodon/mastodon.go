// Package mastodon implements the Mastodon API endpoints for registering
// client applications and managing Web Push subscriptions.
package mastodon

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Cherry/wildebeest/internal/httpx"
	"github.com/Cherry/wildebeest/models"
	"gorm.io/gorm"
)

type Env struct {
	*models.Env
}

// authenticate authenticates the bearer token attached to the request and, if
// successful, returns the token with its Actor and Application.
func (e *Env) authenticate(r *http.Request) (*models.Token, error) {
	bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if bearer == "" {
		return nil, httpx.Error(http.StatusUnauthorized, errors.New("the access token is invalid"))
	}
	token, err := e.Tokens().FindByAccessToken(bearer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.Error(http.StatusUnauthorized, errors.New("the access token is invalid"))
		}
		return nil, err
	}
	return token, nil
}

// statusError maps errors from the models package onto HTTP statuses.
// Anything it does not recognise is returned unchanged and becomes a 500.
func statusError(err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return httpx.Error(http.StatusBadRequest, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return httpx.Error(http.StatusNotFound, errors.New("Record not found"))
	case errors.Is(err, models.ErrNotConfigured):
		return httpx.Error(http.StatusNotFound, err)
	default:
		return err
	}
}
