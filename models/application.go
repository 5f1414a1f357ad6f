package models

import (
	"time"

	"github.com/Cherry/wildebeest/internal/crypto"
	"github.com/Cherry/wildebeest/internal/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// An Application is a registered client application.
// Applications are immutable once created.
type Application struct {
	ID           snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	CreatedAt    time.Time
	Name         string  `gorm:"size:255;not null"`
	Website      *string `gorm:"size:255"`
	RedirectURI  string  `gorm:"size:255;not null"`
	ClientID     string  `gorm:"size:64;not null;uniqueIndex"`
	ClientSecret string  `gorm:"size:64;not null"`
	Scopes       string  `gorm:"size:255;not null;default:''"`
}

// ApplicationRequest holds the client supplied fields of a new Application.
type ApplicationRequest struct {
	ClientName   string
	Website      string // optional
	RedirectURIs string
	Scopes       string // optional, defaults to "read"
}

type Applications struct {
	db *gorm.DB
}

func NewApplications(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

// Create registers a new Application with a fresh client id and secret.
func (a *Applications) Create(req ApplicationRequest) (*Application, error) {
	if err := required("client_name", req.ClientName); err != nil {
		return nil, err
	}
	if err := required("redirect_uris", req.RedirectURIs); err != nil {
		return nil, err
	}
	secret, err := crypto.Secret(crypto.MinSecretBytes)
	if err != nil {
		return nil, err
	}
	app := &Application{
		ID:           snowflake.Now(),
		Name:         req.ClientName,
		RedirectURI:  req.RedirectURIs,
		ClientID:     uuid.New().String(),
		ClientSecret: secret,
		Scopes:       req.Scopes,
	}
	if req.Website != "" {
		app.Website = &req.Website
	}
	if app.Scopes == "" {
		app.Scopes = "read"
	}
	if err := a.db.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// FindByID returns the Application with the given id.
func (a *Applications) FindByID(id snowflake.ID) (*Application, error) {
	var app Application
	if err := a.db.Take(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByClientID returns the Application with the given client id.
func (a *Applications) FindByClientID(clientID string) (*Application, error) {
	var app Application
	if err := a.db.Take(&app, "client_id = ?", clientID).Error; err != nil {
		return nil, err
	}
	return &app, nil
}
