package models

import (
	"time"

	"github.com/Cherry/wildebeest/internal/crypto"
	"github.com/Cherry/wildebeest/internal/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// A Token is an access token for an Application.
// A Token belongs to an Actor.
// A Token belongs to an Application.
type Token struct {
	AccessToken   string `gorm:"size:64;primaryKey;autoIncrement:false"`
	CreatedAt     time.Time
	ActorID       snowflake.ID
	Actor         *Actor `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	ApplicationID snowflake.ID
	Application   *Application `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	TokenType     `gorm:"not null"`
	Scope         string `gorm:"size:255;not null"`
}

type TokenType string

func (TokenType) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "postgres":
		return "enum('Bearer')"
	case "sqlite":
		return "TEXT"
	default:
		return ""
	}
}

type Tokens struct {
	db *gorm.DB
}

func NewTokens(db *gorm.DB) *Tokens {
	return &Tokens{db: db}
}

// Create issues a new bearer token for actor acting through app.
func (t *Tokens) Create(actor *Actor, app *Application) (*Token, error) {
	accessToken, err := crypto.Secret(crypto.MinSecretBytes)
	if err != nil {
		return nil, err
	}
	token := &Token{
		AccessToken:   accessToken,
		ActorID:       actor.ID,
		ApplicationID: app.ID,
		TokenType:     "Bearer",
		Scope:         app.Scopes,
	}
	if err := t.db.Create(token).Error; err != nil {
		return nil, err
	}
	token.Actor = actor
	token.Application = app
	return token, nil
}

// FindByAccessToken returns the token, with its Actor and Application.
func (t *Tokens) FindByAccessToken(accessToken string) (*Token, error) {
	var token Token
	if err := t.db.Joins("Actor").Joins("Application").Take(&token, "access_token = ?", accessToken).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
