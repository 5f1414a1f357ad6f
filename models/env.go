package models

import (
	"golang.org/x/exp/slog"
	"gorm.io/gorm"
)

type Env struct {
	// DB is the database connection.
	DB     *gorm.DB
	Logger *slog.Logger
}

func (e *Env) Log() *slog.Logger {
	return e.Logger
}

// Instances returns the handle to the instance configuration.
func (e *Env) Instances() *Instances {
	return NewInstances(e.DB)
}

func (e *Env) Applications() *Applications {
	return NewApplications(e.DB)
}

func (e *Env) PushSubscriptions() *PushSubscriptions {
	return NewPushSubscriptions(e.DB)
}

func (e *Env) Tokens() *Tokens {
	return NewTokens(e.DB)
}
