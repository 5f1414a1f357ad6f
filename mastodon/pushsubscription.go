package mastodon

import (
	"net/http"

	"github.com/Cherry/wildebeest/internal/httpx"
	"github.com/Cherry/wildebeest/internal/to"
	"github.com/Cherry/wildebeest/models"
)

type pushAlerts struct {
	Mention       bool `json:"mention" schema:"mention"`
	Status        bool `json:"status" schema:"status"`
	Reblog        bool `json:"reblog" schema:"reblog"`
	Follow        bool `json:"follow" schema:"follow"`
	FollowRequest bool `json:"follow_request" schema:"follow_request"`
	Favourite     bool `json:"favourite" schema:"favourite"`
	Poll          bool `json:"poll" schema:"poll"`
	Update        bool `json:"update" schema:"update"`
}

func (a *pushAlerts) toModel() models.PushAlerts {
	return models.PushAlerts{
		Mention:       a.Mention,
		Status:        a.Status,
		Reblog:        a.Reblog,
		Follow:        a.Follow,
		FollowRequest: a.FollowRequest,
		Favourite:     a.Favourite,
		Poll:          a.Poll,
		Update:        a.Update,
	}
}

type pushData struct {
	Policy string     `json:"policy" schema:"policy"`
	Alerts pushAlerts `json:"alerts" schema:"alerts"`
}

func PushSubscriptionCreate(env *Env, w http.ResponseWriter, r *http.Request) error {
	token, err := env.authenticate(r)
	if err != nil {
		return err
	}
	var body struct {
		Data         pushData `json:"data" schema:"data"`
		Subscription struct {
			Endpoint string `json:"endpoint" schema:"endpoint"`
			Keys     struct {
				P256DH string `json:"p256dh" schema:"p256dh"`
				Auth   string `json:"auth" schema:"auth"`
			} `json:"keys" schema:"keys"`
		} `json:"subscription" schema:"subscription"`
	}
	if err := httpx.Params(r, &body); err != nil {
		return err
	}
	sub, err := env.PushSubscriptions().Upsert(token.ActorID, token.ApplicationID, models.PushSubscriptionRequest{
		Endpoint: body.Subscription.Endpoint,
		P256DH:   body.Subscription.Keys.P256DH,
		Auth:     body.Subscription.Keys.Auth,
		Alerts:   body.Data.Alerts.toModel(),
		Policy:   models.PushSubscriptionPolicy(body.Data.Policy),
	})
	if err != nil {
		return statusError(err)
	}
	// created and replaced subscriptions are both a 200.
	return renderPushSubscription(env, w, r, sub)
}

func PushSubscriptionUpdate(env *Env, w http.ResponseWriter, r *http.Request) error {
	token, err := env.authenticate(r)
	if err != nil {
		return err
	}
	var body struct {
		Data pushData `json:"data" schema:"data"`
	}
	if err := httpx.Params(r, &body); err != nil {
		return err
	}
	sub, err := env.PushSubscriptions().Update(token.ActorID, token.ApplicationID, body.Data.Alerts.toModel(), models.PushSubscriptionPolicy(body.Data.Policy))
	if err != nil {
		return statusError(err)
	}
	return renderPushSubscription(env, w, r, sub)
}

func PushSubscriptionShow(env *Env, w http.ResponseWriter, r *http.Request) error {
	token, err := env.authenticate(r)
	if err != nil {
		return err
	}
	sub, err := env.PushSubscriptions().Find(token.ActorID, token.ApplicationID)
	if err != nil {
		return statusError(err)
	}
	return renderPushSubscription(env, w, r, sub)
}

func PushSubscriptionDestroy(env *Env, w http.ResponseWriter, r *http.Request) error {
	token, err := env.authenticate(r)
	if err != nil {
		return err
	}
	if err := env.PushSubscriptions().Delete(token.ActorID, token.ApplicationID); err != nil {
		return statusError(err)
	}
	return to.JSON(w, map[string]any{})
}

func renderPushSubscription(env *Env, w http.ResponseWriter, r *http.Request, sub *models.PushSubscription) error {
	serverKey, err := env.Instances().VAPIDPublicKey()
	if err != nil {
		return err
	}
	serialise := Serialiser{req: r}
	return to.JSON(w, serialise.WebPushSubscription(sub, serverKey))
}
