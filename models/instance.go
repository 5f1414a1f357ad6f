package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/Cherry/wildebeest/internal/crypto"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// instanceID is the primary key of the one and only Instance row.
const instanceID = 1

// An Instance is the configuration of the domain managed by this server.
// There is at most one Instance.
// An Instance has many InstanceRules.
type Instance struct {
	ID               uint32 `gorm:"primarykey;autoIncrement:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Domain           string `gorm:"size:64;not null"`
	Title            string `gorm:"size:64;not null"`
	Email            string `gorm:"size:64;not null"`
	ShortDescription string
	Description      string
	VAPIDPublicKey   string         `gorm:"column:vapid_public_key;size:128;not null;default:''"`
	VAPIDPrivateKey  string         `gorm:"column:vapid_private_key;size:64;not null;default:''"`
	Rules            []InstanceRule `gorm:"constraint:OnDelete:CASCADE;"`
}

// Short returns the short description, falling back to the description.
func (i *Instance) Short() string {
	if i.ShortDescription == "" {
		return i.Description
	}
	return i.ShortDescription
}

type InstanceRule struct {
	ID         uint32 `gorm:"primarykey"`
	InstanceID uint32
	Text       string
}

// InstanceSettings are the administrator supplied parts of an Instance.
type InstanceSettings struct {
	Domain           string
	Title            string
	Email            string
	Description      string
	ShortDescription string // optional
}

func (s *InstanceSettings) validate() error {
	return errors.Join(
		required("domain", s.Domain),
		required("title", s.Title),
		required("email", s.Email),
		required("description", s.Description),
	)
}

// Instances is the handle to the instance configuration.
type Instances struct {
	db *gorm.DB
}

func NewInstances(db *gorm.DB) *Instances {
	return &Instances{db: db}
}

// Configure creates the instance, or overwrites the settings of the existing
// one. VAPID keys are never touched by Configure.
func (i *Instances) Configure(settings InstanceSettings) (*Instance, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	instance := Instance{
		ID:               instanceID,
		Domain:           settings.Domain,
		Title:            settings.Title,
		Email:            settings.Email,
		Description:      settings.Description,
		ShortDescription: settings.ShortDescription,
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at", "domain", "title", "email", "short_description", "description"}),
	}
	if err := i.db.Clauses(upsert).Create(&instance).Error; err != nil {
		return nil, err
	}
	return i.Get()
}

// Get returns the instance, or ErrNotConfigured.
func (i *Instances) Get() (*Instance, error) {
	var instance Instance
	if err := i.db.Preload("Rules").Take(&instance, instanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, err
	}
	return &instance, nil
}

// VAPIDPublicKey returns the instance's VAPID public key, or the empty string
// if the instance is not configured or has no keys yet.
func (i *Instances) VAPIDPublicKey() (string, error) {
	instance, err := i.Get()
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "", nil
	case err != nil:
		return "", err
	default:
		return instance.VAPIDPublicKey, nil
	}
}

// GenerateVAPIDKeys creates a VAPID keypair for the instance and returns the
// public key. If the instance already has keys ErrVAPIDKeysExist is returned
// unless regenerate is set. Regenerating orphans every push subscription
// created under the old key; see PushSubscriptions.DeleteStale.
func (i *Instances) GenerateVAPIDKeys(regenerate bool) (string, error) {
	var pub string
	err := i.db.Transaction(func(tx *gorm.DB) error {
		var instance Instance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&instance, instanceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotConfigured
			}
			return err
		}
		if instance.VAPIDPublicKey != "" && !regenerate {
			return ErrVAPIDKeysExist
		}
		kp, err := crypto.GenerateVAPIDKeypair()
		if err != nil {
			return err
		}
		// clients will reject a key that is not an uncompressed P-256 point.
		if _, err := crypto.ParseVAPIDPublicKey(kp.PublicKey); err != nil {
			return fmt.Errorf("generated VAPID public key: %w", err)
		}
		pub = kp.PublicKey
		return tx.Model(&instance).Updates(map[string]any{
			"vapid_public_key":  kp.PublicKey,
			"vapid_private_key": kp.PrivateKey,
		}).Error
	})
	return pub, err
}
