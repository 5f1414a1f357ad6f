package mastodon

import (
	"fmt"
	"net/http"

	"github.com/Cherry/wildebeest/internal/httpx"
	"github.com/Cherry/wildebeest/internal/to"
	"github.com/Cherry/wildebeest/models"
)

func AppsCreate(env *Env, w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		// apps can only be created.
		return httpx.Error(http.StatusBadRequest, fmt.Errorf("%s is not supported", r.Method))
	}
	var params struct {
		ClientName   string `json:"client_name" schema:"client_name"`
		Website      string `json:"website" schema:"website"`
		RedirectURIs string `json:"redirect_uris" schema:"redirect_uris"`
		Scopes       string `json:"scopes" schema:"scopes"`
	}
	if err := httpx.Params(r, &params); err != nil {
		return err
	}

	app, err := env.Applications().Create(models.ApplicationRequest{
		ClientName:   params.ClientName,
		Website:      params.Website,
		RedirectURIs: params.RedirectURIs,
		Scopes:       params.Scopes,
	})
	if err != nil {
		return statusError(err)
	}
	vapidKey, err := env.Instances().VAPIDPublicKey()
	if err != nil {
		return err
	}
	serialise := Serialiser{req: r}
	return to.JSON(w, serialise.Application(app, vapidKey))
}

func AppsVerifyCredentials(env *Env, w http.ResponseWriter, r *http.Request) error {
	token, err := env.authenticate(r)
	if err != nil {
		return err
	}
	vapidKey, err := env.Instances().VAPIDPublicKey()
	if err != nil {
		return err
	}
	serialise := Serialiser{req: r}
	return to.JSON(w, serialise.ApplicationCredentials(token.Application, vapidKey))
}
