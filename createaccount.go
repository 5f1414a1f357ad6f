package main

import (
	"fmt"

	"github.com/Cherry/wildebeest/models"
	"gorm.io/gorm"
)

type CreateAccountCmd struct {
	Name     string `required:"" help:"name of the actor"`
	ClientID string `required:"" help:"client_id of the application the token is issued to"`
}

func (c *CreateAccountCmd) Run(ctx *Context) error {
	db, err := ctx.openDB()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		instance, err := models.NewInstances(tx).Get()
		if err != nil {
			return err
		}
		app, err := models.NewApplications(tx).FindByClientID(c.ClientID)
		if err != nil {
			return fmt.Errorf("application %q: %w", c.ClientID, err)
		}
		actor, err := models.NewActors(tx).FindOrCreate(c.Name, instance.Domain)
		if err != nil {
			return err
		}
		token, err := models.NewTokens(tx).Create(actor, app)
		if err != nil {
			return err
		}
		fmt.Println(token.AccessToken)
		return nil
	})
}
