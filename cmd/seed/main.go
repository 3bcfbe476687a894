package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/config"
	"github.com/emporia-hr/emporia-backend-go/internal/fixtures"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
	"github.com/emporia-hr/emporia-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("Error running migrations", "error", err)
		os.Exit(1)
	}

	seeder := fixtures.NewSeeder(
		postgresql.NewRoleRepository(db),
		postgresql.NewDepartmentRepository(db),
		postgresql.NewUserRepository(db),
	)
	var result fixtures.SeedResult
	err = postgresql.WithTransaction(ctx, db, func(ctx context.Context, _ pgx.Tx) error {
		var seedErr error
		result, seedErr = seeder.Seed(ctx)
		return seedErr
	})
	if err != nil {
		slog.Error("Error seeding database", "error", err)
		os.Exit(1)
	}

	slog.Info("Seeding completed",
		"roles_created", result.Roles,
		"departments_created", result.Departments,
		"users_created", result.Users,
	)
}
