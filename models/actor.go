package models

import (
	"time"

	"github.com/Cherry/wildebeest/internal/snowflake"
	"gorm.io/gorm"
)

// An Actor is an identity that owns push subscriptions.
// Actors are managed by the identity subsystem, this is only as much of
// one as we need to refer to it.
type Actor struct {
	ID        snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	CreatedAt time.Time
	Name      string `gorm:"size:64;uniqueIndex:idx_actor_name_domain;not null"`
	Domain    string `gorm:"size:64;uniqueIndex:idx_actor_name_domain;not null"`
}

type Actors struct {
	db *gorm.DB
}

func NewActors(db *gorm.DB) *Actors {
	return &Actors{db: db}
}

// FindOrCreate returns the actor with the given name and domain, creating it
// if necessary.
func (a *Actors) FindOrCreate(name, domain string) (*Actor, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}
	var actor Actor
	// the id is only assigned when the actor is created.
	attrs := Actor{
		ID:     snowflake.Now(),
		Name:   name,
		Domain: domain,
	}
	if err := a.db.Where("name = ? AND domain = ?", name, domain).Attrs(attrs).FirstOrCreate(&actor).Error; err != nil {
		return nil, err
	}
	return &actor, nil
}
