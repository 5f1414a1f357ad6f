package mastodon

import (
	"net/http"
	"testing"

	"github.com/Cherry/wildebeest/models"
	"github.com/stretchr/testify/require"
)

func TestAppsCreate(t *testing.T) {
	db := setupTestDB(t)

	t.Run("registers a client", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		configure(t, tx)
		vapidKey, err := models.NewInstances(tx).GenerateVAPIDKeys(false)
		require.NoError(err)

		rec := serve(tx, AppsCreate, jsonRequest("POST", "/api/v1/apps", `{
			"redirect_uris": "mastodon://joinmastodon.org/oauth",
			"website": "https://app.joinmastodon.org/ios",
			"client_name": "Mastodon for iOS",
			"scopes": "read write follow push"
		}`))
		require.Equal(http.StatusOK, rec.Code)
		require.Equal("application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		require.Empty(rec.Header().Get("Cache-Control"))

		body := decode(t, rec)
		require.Len(body, 6)
		require.Equal("Mastodon for iOS", body["name"])
		require.Equal("https://app.joinmastodon.org/ios", body["website"])
		require.Equal("mastodon://joinmastodon.org/oauth", body["redirect_uri"])
		require.Equal(vapidKey, body["vapid_key"])
		require.NotEmpty(body["client_secret"])

		app, err := models.NewApplications(tx).FindByClientID(body["client_id"].(string))
		require.NoError(err)
		require.Equal(app.ClientSecret, body["client_secret"])
	})

	t.Run("form encoded, before vapid keys exist", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		r := jsonRequest("POST", "/api/v1/apps", "client_name=Ivory&redirect_uris=urn%3Aietf%3Awg%3Aoauth%3A2.0%3Aoob")
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(tx, AppsCreate, r)
		require.Equal(http.StatusOK, rec.Code)

		body := decode(t, rec)
		require.Equal("Ivory", body["name"])
		require.Nil(body["website"])
		require.Equal("", body["vapid_key"])
	})

	t.Run("GET is a bad request", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		rec := serve(tx, AppsCreate, jsonRequest("GET", "/api/v1/apps", ""))
		require.Equal(http.StatusBadRequest, rec.Code)
	})

	t.Run("missing client_name is a bad request", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		rec := serve(tx, AppsCreate, jsonRequest("POST", "/api/v1/apps", `{"redirect_uris": "urn:ietf:wg:oauth:2.0:oob"}`))
		require.Equal(http.StatusBadRequest, rec.Code)

		var count int64
		require.NoError(tx.Model(&models.Application{}).Count(&count).Error)
		require.EqualValues(0, count)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		rec := serve(tx, AppsCreate, jsonRequest("POST", "/api/v1/apps", `{"client_name": `))
		require.Equal(http.StatusBadRequest, rec.Code)
	})
}

func TestAppsVerifyCredentials(t *testing.T) {
	db := setupTestDB(t)

	t.Run("returns the token's application", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		token := mockToken(t, tx, "alice")
		r := jsonRequest("GET", "/api/v1/apps/verify_credentials", "")
		r.Header.Set("Authorization", "Bearer "+token.AccessToken)
		rec := serve(tx, AppsVerifyCredentials, r)
		require.Equal(http.StatusOK, rec.Code)

		body := decode(t, rec)
		require.Equal("alice's app", body["name"])
		require.NotContains(body, "client_secret")
	})

	t.Run("requires a token", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		rec := serve(tx, AppsVerifyCredentials, jsonRequest("GET", "/api/v1/apps/verify_credentials", ""))
		require.Equal(http.StatusUnauthorized, rec.Code)
	})
}
