package main

import (
	"fmt"

	"github.com/Cherry/wildebeest/models"
)

type ConfigureCmd struct {
	Domain           string `required:"" help:"domain name of the instance"`
	Title            string `required:"" help:"title of the instance"`
	Email            string `required:"" help:"contact email address of the instance's admin"`
	Description      string `required:"" help:"description of the instance"`
	ShortDescription string `help:"short description of the instance, defaults to the description"`
}

func (c *ConfigureCmd) Run(ctx *Context) error {
	db, err := ctx.openDB()
	if err != nil {
		return err
	}
	instance, err := models.NewInstances(db).Configure(models.InstanceSettings{
		Domain:           c.Domain,
		Title:            c.Title,
		Email:            c.Email,
		Description:      c.Description,
		ShortDescription: c.ShortDescription,
	})
	if err != nil {
		return err
	}
	fmt.Println("configured", instance.Domain)
	return nil
}

type GenerateVAPIDKeysCmd struct {
	Regenerate bool `help:"replace existing keys, existing push subscriptions will stop working"`
}

func (g *GenerateVAPIDKeysCmd) Run(ctx *Context) error {
	db, err := ctx.openDB()
	if err != nil {
		return err
	}
	pub, err := models.NewInstances(db).GenerateVAPIDKeys(g.Regenerate)
	if err != nil {
		return err
	}
	fmt.Println(pub)
	return nil
}
