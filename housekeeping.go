package main

import (
	"github.com/Cherry/wildebeest/models"
	"gorm.io/gorm"
)

type HousekeepingCmd struct {
}

func (c *HousekeepingCmd) Run(ctx *Context) error {
	db, err := ctx.openDB()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		instance, err := models.NewInstances(tx).Get()
		if err != nil {
			return err
		}
		n, err := models.NewPushSubscriptions(tx).DeleteStale(instance.VAPIDPublicKey)
		if err != nil {
			return err
		}
		ctx.Logger.Info("housekeeping", "deleted", n, "reason", "stale VAPID key")
		return nil
	})
}
