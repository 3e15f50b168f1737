// Command seed loads the demo donut menu into an empty catalog. It is an
// explicit opt-in: startup never seeds anything, and the command is a no-op
// when the catalog already has items.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/oakdonuts/pos-backend/internal/catalog"
	"github.com/oakdonuts/pos-backend/pkg/config"
	"github.com/oakdonuts/pos-backend/pkg/db"
	"github.com/oakdonuts/pos-backend/pkg/logger"
	"github.com/oakdonuts/pos-backend/pkg/money"
)

type seedItem struct {
	name        string
	description string
	price       string
	category    string
}

var demoMenu = []seedItem{
	{"Classic Glazed", "Traditional glazed donut", "2.50", "glaze"},
	{"Chocolate Cake", "Rich chocolate cake donut", "3.00", "cake"},
	{"Vanilla Frosted", "Vanilla frosted with sprinkles", "2.75", "glaze"},
	{"Strawberry Jam", "Filled with fresh strawberry jam", "3.25", "specialty"},
	{"Boston Cream", "Cream filled with chocolate top", "3.50", "specialty"},
	{"Maple Glazed", "Maple flavored donut", "2.75", "glaze"},
	{"Chocolate Chip", "Chocolate cake with chips", "3.25", "cake"},
	{"Powdered Sugar", "Classic powdered sugar donut", "2.50", "glaze"},
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(logg, "database", err)
	defer dbClient.Close()

	repo := catalog.NewRepository(dbClient.DB())
	svc, err := catalog.NewService(repo)
	requireResource(logg, "catalog service", err)

	existing, err := svc.ListItems(ctx)
	requireResource(logg, "catalog listing", err)
	if len(existing) > 0 {
		logg.Info(ctx, "catalog already has items, nothing to seed")
		return
	}

	for _, entry := range demoMenu {
		cents, err := money.ParseAmount(entry.price)
		requireResource(logg, "demo menu price", err)

		desc := entry.description
		created, err := svc.CreateItem(ctx, catalog.ItemInput{
			Name:        entry.name,
			Description: &desc,
			PriceCents:  cents,
			Category:    entry.category,
		})
		requireResource(logg, "demo menu insert", err)

		logg.Info(logg.WithItemID(ctx, created.ID), "seeded menu item")
	}

	logg.Info(ctx, fmt.Sprintf("seeded %d menu items", len(demoMenu)))
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
