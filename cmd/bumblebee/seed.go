package main

import (
	"context"
	"fmt"

	"bumblebee/internal/db"
	"bumblebee/internal/pii"
	"bumblebee/internal/seed"
	"bumblebee/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Dump seeded records to stdout",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		cipher := pii.New(cfg.PIIEncryptionKey)

		seeder := seed.New(
			store.NewUserRepository(pool),
			store.NewCompanyRepository(pool),
			store.NewFundingRequestRepository(pool),
			store.NewDonationRepository(pool, cipher),
			c.Bool("verbose"),
		)

		logrus.Info("Seeding database...")
		if err := seeder.Run(ctx); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}

		logrus.Info("Database seeded successfully")

		return nil
	},
}
