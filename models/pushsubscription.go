package models

import (
	"net/url"
	"time"

	"github.com/Cherry/wildebeest/internal/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// A PushSubscription is an Actor's Web Push subscription for one Application.
// An Actor has at most one PushSubscription per Application.
type PushSubscription struct {
	ID            uint32 `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ActorID       snowflake.ID `gorm:"not null;uniqueIndex:idx_push_subscription_actor_application"`
	Actor         *Actor       `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	ApplicationID snowflake.ID `gorm:"not null;uniqueIndex:idx_push_subscription_actor_application"`
	Application   *Application `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	Endpoint      string       `gorm:"size:2048;not null"`
	P256DH        string       `gorm:"column:p256dh;size:128;not null"`
	Auth          string       `gorm:"size:64;not null"`
	// ServerKey is the VAPID public key in force when the subscription was
	// last written.
	ServerKey  string `gorm:"size:128;not null;default:''"`
	PushAlerts `gorm:"embedded"`
	Policy     PushSubscriptionPolicy `gorm:"not null;default:'all'"`
}

// PushAlerts records which notification types are pushed.
type PushAlerts struct {
	Mention       bool
	Status        bool
	Reblog        bool
	Follow        bool
	FollowRequest bool
	Favourite     bool
	Poll          bool
	Update        bool
}

type PushSubscriptionPolicy string

const (
	PushPolicyAll      PushSubscriptionPolicy = "all"
	PushPolicyFollowed PushSubscriptionPolicy = "followed"
	PushPolicyFollower PushSubscriptionPolicy = "follower"
	PushPolicyNone     PushSubscriptionPolicy = "none"
)

func (PushSubscriptionPolicy) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "postgres":
		return "enum('all', 'followed', 'follower', 'none')"
	case "sqlite":
		return "TEXT"
	default:
		return ""
	}
}

// normalise returns the policy, defaulting to all, or a ValidationError.
func (p PushSubscriptionPolicy) normalise() (PushSubscriptionPolicy, error) {
	switch p {
	case "":
		return PushPolicyAll, nil
	case PushPolicyAll, PushPolicyFollowed, PushPolicyFollower, PushPolicyNone:
		return p, nil
	default:
		return "", &ValidationError{Field: "data[policy]", Reason: "must be one of all, followed, follower or none"}
	}
}

// PushSubscriptionRequest holds the client supplied fields of a subscription.
type PushSubscriptionRequest struct {
	Endpoint string
	P256DH   string
	Auth     string
	Alerts   PushAlerts
	Policy   PushSubscriptionPolicy
}

func (r *PushSubscriptionRequest) validate() error {
	if err := required("subscription[endpoint]", r.Endpoint); err != nil {
		return err
	}
	u, err := url.Parse(r.Endpoint)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return &ValidationError{Field: "subscription[endpoint]", Reason: "must be an absolute http(s) URL"}
	}
	if err := required("subscription[keys][p256dh]", r.P256DH); err != nil {
		return err
	}
	if err := required("subscription[keys][auth]", r.Auth); err != nil {
		return err
	}
	r.Policy, err = r.Policy.normalise()
	return err
}

type PushSubscriptions struct {
	db *gorm.DB
}

func NewPushSubscriptions(db *gorm.DB) *PushSubscriptions {
	return &PushSubscriptions{db: db}
}

// Upsert creates the subscription for the actor and application, or replaces
// the endpoint, keys, alerts and policy of the existing one, keeping its id.
// The write is a single INSERT ... ON CONFLICT statement against the unique
// (actor_id, application_id) index, so racing callers cannot create a second row.
func (p *PushSubscriptions) Upsert(actorID, applicationID snowflake.ID, req PushSubscriptionRequest) (*PushSubscription, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	serverKey, err := NewInstances(p.db).VAPIDPublicKey()
	if err != nil {
		return nil, err
	}
	sub := PushSubscription{
		ActorID:       actorID,
		ApplicationID: applicationID,
		Endpoint:      req.Endpoint,
		P256DH:        req.P256DH,
		Auth:          req.Auth,
		ServerKey:     serverKey,
		PushAlerts:    req.Alerts,
		Policy:        req.Policy,
	}
	upsert := clause.OnConflict{
		Columns: []clause.Column{{Name: "actor_id"}, {Name: "application_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"updated_at", "endpoint", "p256dh", "auth", "server_key",
			"mention", "status", "reblog", "follow", "follow_request", "favourite", "poll", "update",
			"policy",
		}),
	}
	if err := p.db.Clauses(upsert).Create(&sub).Error; err != nil {
		return nil, err
	}
	// the id reported by the driver for an update via ON DUPLICATE KEY is
	// unreliable, read the row back.
	return p.Find(actorID, applicationID)
}

// Find returns the subscription for the actor and application, or
// gorm.ErrRecordNotFound.
func (p *PushSubscriptions) Find(actorID, applicationID snowflake.ID) (*PushSubscription, error) {
	var sub PushSubscription
	if err := p.db.Take(&sub, "actor_id = ? AND application_id = ?", actorID, applicationID).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Update changes the alerts of an existing subscription, and its policy if
// one is given.
func (p *PushSubscriptions) Update(actorID, applicationID snowflake.ID, alerts PushAlerts, policy PushSubscriptionPolicy) (*PushSubscription, error) {
	updates := map[string]any{
		"mention":        alerts.Mention,
		"status":         alerts.Status,
		"reblog":         alerts.Reblog,
		"follow":         alerts.Follow,
		"follow_request": alerts.FollowRequest,
		"favourite":      alerts.Favourite,
		"poll":           alerts.Poll,
		"update":         alerts.Update,
	}
	if policy != "" {
		policy, err := policy.normalise()
		if err != nil {
			return nil, err
		}
		updates["policy"] = policy
	}
	var sub *PushSubscription
	err := p.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&PushSubscription{}).Where("actor_id = ? AND application_id = ?", actorID, applicationID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		var err error
		sub, err = NewPushSubscriptions(tx).Find(actorID, applicationID)
		return err
	})
	return sub, err
}

// Delete removes the subscription for the actor and application, returning
// gorm.ErrRecordNotFound if there was none.
func (p *PushSubscriptions) Delete(actorID, applicationID snowflake.ID) error {
	res := p.db.Where("actor_id = ? AND application_id = ?", actorID, applicationID).Delete(&PushSubscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteStale removes subscriptions written under a VAPID key other than
// serverKey and returns how many were removed.
func (p *PushSubscriptions) DeleteStale(serverKey string) (int64, error) {
	res := p.db.Where("server_key <> ?", serverKey).Delete(&PushSubscription{})
	return res.RowsAffected, res.Error
}
