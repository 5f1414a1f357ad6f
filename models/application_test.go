package models

import (
	"encoding/base64"
	"testing"

	"github.com/Cherry/wildebeest/internal/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestApplications(t *testing.T) {
	db := setupTestDB(t)

	t.Run("create", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		app, err := NewApplications(tx).Create(ApplicationRequest{
			ClientName:   "Mastodon for iOS",
			Website:      "https://app.joinmastodon.org/ios",
			RedirectURIs: "mastodon://joinmastodon.org/oauth",
			Scopes:       "read write follow push",
		})
		require.NoError(err)
		require.NotZero(app.ID)
		require.Equal("Mastodon for iOS", app.Name)
		require.Equal("https://app.joinmastodon.org/ios", *app.Website)
		require.Equal("mastodon://joinmastodon.org/oauth", app.RedirectURI)
		require.Equal("read write follow push", app.Scopes)

		_, err = uuid.Parse(app.ClientID)
		require.NoError(err)
		secret, err := base64.RawURLEncoding.DecodeString(app.ClientSecret)
		require.NoError(err)
		require.Len(secret, crypto.MinSecretBytes)

		found, err := NewApplications(tx).FindByID(app.ID)
		require.NoError(err)
		require.Equal(app.ClientSecret, found.ClientSecret)

		found, err = NewApplications(tx).FindByClientID(app.ClientID)
		require.NoError(err)
		require.Equal(app.ID, found.ID)
	})

	t.Run("website and scopes are optional", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		app, err := NewApplications(tx).Create(ApplicationRequest{
			ClientName:   "Ivory",
			RedirectURIs: "urn:ietf:wg:oauth:2.0:oob",
		})
		require.NoError(err)
		require.Nil(app.Website)
		require.Equal("read", app.Scopes)
	})

	t.Run("each application gets its own credentials", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		a := MockApplication(t, tx, "a")
		b := MockApplication(t, tx, "b")
		require.NotEqual(a.ClientID, b.ClientID)
		require.NotEqual(a.ClientSecret, b.ClientSecret)
	})

	t.Run("name and redirect uris are required", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		var verr *ValidationError
		_, err := NewApplications(tx).Create(ApplicationRequest{RedirectURIs: "urn:ietf:wg:oauth:2.0:oob"})
		require.ErrorAs(err, &verr)
		require.Equal("client_name", verr.Field)

		_, err = NewApplications(tx).Create(ApplicationRequest{ClientName: "Ivory"})
		require.ErrorAs(err, &verr)
		require.Equal("redirect_uris", verr.Field)

		var count int64
		require.NoError(tx.Model(&Application{}).Count(&count).Error)
		require.EqualValues(0, count)
	})

	t.Run("find missing", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		_, err := NewApplications(tx).FindByClientID("nope")
		require.ErrorIs(err, gorm.ErrRecordNotFound)
	})
}

func TestTokens(t *testing.T) {
	db := setupTestDB(t)

	t.Run("create and find", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		app := MockApplication(t, tx, "app")

		token, err := NewTokens(tx).Create(alice, app)
		require.NoError(err)

		found, err := NewTokens(tx).FindByAccessToken(token.AccessToken)
		require.NoError(err)
		require.Equal(alice.ID, found.Actor.ID)
		require.Equal(app.ID, found.Application.ID)
		require.EqualValues("Bearer", found.TokenType)
	})

	t.Run("unknown token", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		_, err := NewTokens(tx).FindByAccessToken("nope")
		require.ErrorIs(err, gorm.ErrRecordNotFound)
	})

	t.Run("actors are found or created", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		a, err := NewActors(tx).FindOrCreate("alice", "example.com")
		require.NoError(err)
		b, err := NewActors(tx).FindOrCreate("alice", "example.com")
		require.NoError(err)
		require.Equal(a.ID, b.ID)
		require.Equal("alice", b.Name)
		require.Equal("example.com", b.Domain)

		c, err := NewActors(tx).FindOrCreate("alice", "other.example")
		require.NoError(err)
		require.NotEqual(a.ID, c.ID)
	})

	t.Run("one actor, tokens for two applications", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		ivory := MockApplication(t, tx, "ivory")
		elk := MockApplication(t, tx, "elk")
		for _, app := range []*Application{ivory, elk} {
			actor, err := NewActors(tx).FindOrCreate("bob", "example.com")
			require.NoError(err)
			token, err := NewTokens(tx).Create(actor, app)
			require.NoError(err)
			require.Equal(app.ID, token.ApplicationID)
		}

		var count int64
		require.NoError(tx.Model(&Actor{}).Where("name = ?", "bob").Count(&count).Error)
		require.EqualValues(1, count)
	})

	t.Run("token scope fits the application's scopes", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		app, err := NewApplications(tx).Create(ApplicationRequest{
			ClientName:   "tusky",
			RedirectURIs: "tusky://oauth",
			Scopes:       "read write follow push admin:read admin:write read:accounts read:statuses",
		})
		require.NoError(err)
		actor := MockActor(t, tx, "carol", "example.com")
		token, err := NewTokens(tx).Create(actor, app)
		require.NoError(err)

		found, err := NewTokens(tx).FindByAccessToken(token.AccessToken)
		require.NoError(err)
		require.Equal(app.Scopes, found.Scope)
	})
}
