package main

import (
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/exp/slog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Context struct {
	Debug  bool
	Logger *slog.Logger

	gorm.Config
}

// openDB opens and configures the database named on the command line.
func (c *Context) openDB() (*gorm.DB, error) {
	db, err := gorm.Open(c.Dialector, &c.Config)
	if err != nil {
		return nil, err
	}
	if err := configureDB(db); err != nil {
		return nil, err
	}
	return db, nil
}

var cli struct {
	Debug bool   `help:"Enable debug mode."`
	DSN   string `help:"data source name" required:"" env:"WILDEBEEST_DSN"`

	AutoMigrate       AutoMigrateCmd       `cmd:"" help:"Create or update the database schema."`
	Configure         ConfigureCmd         `cmd:"" help:"Configure the instance."`
	GenerateVAPIDKeys GenerateVAPIDKeysCmd `cmd:"" name:"generate-vapid-keys" help:"Generate the instance's VAPID keypair."`
	CreateAccount     CreateAccountCmd     `cmd:"" help:"Create an actor and issue it a bearer token for an application."`
	Housekeeping      HousekeepingCmd      `cmd:"" help:"Remove push subscriptions made under an old VAPID key."`
	Serve             ServeCmd             `cmd:"" help:"Serve a local web server."`
}

func main() {
	ctx := kong.Parse(&cli)

	level := slog.LevelInfo
	logLevel := logger.Warn
	if cli.Debug {
		level = slog.LevelDebug
		logLevel = logger.Info
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := ctx.Run(&Context{
		Debug:  cli.Debug,
		Logger: log,
		Config: gorm.Config{
			Dialector:      newDialector(cli.DSN),
			TranslateError: true,
			Logger:         logger.Default.LogMode(logLevel),
		},
	})
	ctx.FatalIfErrorf(err)
}
