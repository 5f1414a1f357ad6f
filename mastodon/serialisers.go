package mastodon

import (
	"net/http"
	"strconv"

	"github.com/Cherry/wildebeest/models"
)

// Serialiser contains methods to serialise various types to JSON in
// the form Mastodon clients expect.
type Serialiser struct {
	req *http.Request
}

// Application serialises a newly registered application, the only time
// its secret is shown.
func (s Serialiser) Application(app *models.Application, vapidKey string) map[string]any {
	return map[string]any{
		"name":          app.Name,
		"website":       app.Website,
		"redirect_uri":  app.RedirectURI,
		"client_id":     app.ClientID,
		"client_secret": app.ClientSecret,
		"vapid_key":     vapidKey,
	}
}

func (s Serialiser) ApplicationCredentials(app *models.Application, vapidKey string) map[string]any {
	return map[string]any{
		"name":      app.Name,
		"website":   app.Website,
		"vapid_key": vapidKey,
	}
}

func (s Serialiser) InstanceV1(i *models.Instance) map[string]any {
	return map[string]any{
		"uri":               i.Domain,
		"title":             i.Title,
		"short_description": i.Short(),
		"description":       i.Description,
		"email":             i.Email,
		"version":           "4.0.2 (compatible; Wildebeest)",
		"urls": map[string]any{
			"streaming_api": "wss://" + i.Domain,
		},
		"languages":         []any{"en"},
		"registrations":     false,
		"approval_required": false,
		"invites_enabled":   false,
		"rules":             s.rules(i.Rules),
	}
}

func (s Serialiser) InstanceV2(i *models.Instance) map[string]any {
	return map[string]any{
		"domain":      i.Domain,
		"title":       i.Title,
		"version":     "4.0.2 (compatible; Wildebeest)",
		"source_url":  "https://github.com/cloudflare/wildebeest",
		"description": i.Short(),
		"languages":   []any{"en"},
		"configuration": map[string]any{
			"urls": map[string]any{
				"streaming": "wss://" + i.Domain,
			},
			"vapid": map[string]any{
				"public_key": i.VAPIDPublicKey,
			},
		},
		"registrations": map[string]any{
			"enabled":           false,
			"approval_required": false,
		},
		"contact": map[string]any{
			"email": i.Email,
		},
		"rules": s.rules(i.Rules),
	}
}

func (s Serialiser) rules(rules []models.InstanceRule) []map[string]any {
	out := make([]map[string]any, 0, len(rules))
	for _, rule := range rules {
		out = append(out, map[string]any{
			"id":   toString(rule.ID),
			"text": rule.Text,
		})
	}
	return out
}

func (s Serialiser) WebPushSubscription(sub *models.PushSubscription, serverKey string) map[string]any {
	return map[string]any{
		"id":       sub.ID,
		"endpoint": sub.Endpoint,
		"keys": map[string]any{
			"p256dh": sub.P256DH,
			"auth":   sub.Auth,
		},
		"alerts": map[string]any{
			"mention":        sub.Mention,
			"status":         sub.Status,
			"reblog":         sub.Reblog,
			"follow":         sub.Follow,
			"follow_request": sub.FollowRequest,
			"favourite":      sub.Favourite,
			"poll":           sub.Poll,
			"update":         sub.Update,
		},
		"policy":     sub.Policy,
		"server_key": serverKey,
	}
}

type number interface {
	~uint | ~uint64 | ~uint32
}

func toString[T number](n T) string {
	return strconv.FormatUint(uint64(n), 10)
}
