// cmd/tools/user-create/main.go
//
// Creates a dashboard user with a bcrypt password hash. Intended for
// seeding and operator use:
//
//	user-create -username jan -display "Jan Jansen" -password geheim
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/auth"
	"backoffice/internal/common/config"
	"backoffice/internal/common/database"
	"backoffice/internal/common/logger"
	"backoffice/internal/store"
)

func main() {
	username := flag.String("username", "", "login name")
	display := flag.String("display", "", "display name shown in the dashboard")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	if *username == "" || *password == "" {
		zapLog.Fatal("username and password are required")
	}
	if *display == "" {
		*display = *username
	}

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres failed", zap.Error(err))
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st := store.New(pg.DB, logger.NewZapAdapter(zapLog))
	if err := st.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema setup failed", zap.Error(err))
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		zapLog.Fatal("password hashing failed", zap.Error(err))
	}

	user, err := st.CreateUser(ctx, *username, *display, hash)
	if err != nil {
		zapLog.Fatal("user creation failed", zap.Error(err))
	}

	zapLog.Info("user created",
		zap.String("id", user.ID),
		zap.String("username", user.Username),
	)
}
