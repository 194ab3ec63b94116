// Command seed наполняет пустую базу демонстрационными товарами, площадками
// и месяцем статистики просмотров по каждой площадке.
package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/Dosada05/league-api/config"
	"github.com/Dosada05/league-api/db"
	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/services"
)

const visibilityDays = 30

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx := context.Background()
	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to apply schema", slog.Any("error", err))
		os.Exit(1)
	}

	tx := repositories.NewTransactor(dbConn, logger)
	commerce := services.NewCommerceService(tx,
		repositories.NewPostgresProductRepository(dbConn),
		repositories.NewPostgresOrderRepository(dbConn),
		logger)
	courts := services.NewCourtService(
		repositories.NewPostgresCourtRepository(dbConn),
		repositories.NewPostgresVisibilityLogRepository(dbConn),
		logger)

	if err := seedProducts(ctx, commerce, logger); err != nil {
		logger.Error("failed to seed products", slog.Any("error", err))
		os.Exit(1)
	}
	if err := seedCourts(ctx, courts, logger); err != nil {
		logger.Error("failed to seed courts", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seeding complete")
}

func seedProducts(ctx context.Context, svc *services.CommerceService, logger *slog.Logger) error {
	existing, err := svc.ListProducts(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("products already present, skipping", slog.Int("count", len(existing)))
		return nil
	}

	inStock, soldOut := true, false
	products := []services.CreateProductInput{
		{Name: "Team Jersey", Description: str("Official tournament jersey with breathable fabric"), Price: 4599, Category: "Apparel", InStock: &inStock},
		{Name: "Basketball", Description: str("Official 3x3 basketball"), Price: 2999, Category: "Equipment", InStock: &inStock},
		{Name: "Sweatband Set", Description: str("Sweat-wicking headband and wristband combo"), Price: 1299, Category: "Accessories", InStock: &soldOut},
		{Name: "Hoops Cap", Description: str("Adjustable basketball cap"), Price: 2499, Category: "Apparel", InStock: &inStock},
		{Name: "Training Shorts", Description: str("Performance athletic shorts with deep pockets"), Price: 3499, Category: "Apparel", InStock: &inStock},
		{Name: "Water Bottle", Description: str("Insulated 1L water bottle"), Price: 1599, Category: "Accessories", InStock: &inStock},
	}
	for _, p := range products {
		if _, err := svc.CreateProduct(ctx, p); err != nil {
			return err
		}
	}
	logger.Info("products created", slog.Int("count", len(products)))
	return nil
}

func seedCourts(ctx context.Context, svc *services.CourtService, logger *slog.Logger) error {
	existing, err := svc.ListCourts(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("courts already present, skipping", slog.Int("count", len(existing)))
		return nil
	}

	booked := models.CourtBooked
	courts := []services.CreateCourtInput{
		{Name: "Campus Central Court", Location: "University Paul Sabatier", University: str("Paul Sabatier"), City: "Toulouse",
			Latitude: f64(43.5617), Longitude: f64(1.4658), ContactInfo: str("contact@paul-sabatier.fr"), SponsorVisibility: num(1250)},
		{Name: "Jean Jaures Basketball Arena", Location: "Place Jean Jaures", City: "Toulouse",
			Latitude: f64(43.6083), Longitude: f64(1.4483), SponsorVisibility: num(2100)},
		{Name: "Capitole Court", Location: "University of Toulouse Capitole", University: str("Toulouse Capitole"), City: "Toulouse",
			Latitude: f64(43.6045), Longitude: f64(1.4440), ContactInfo: str("sports@ut-capitole.fr"), SponsorVisibility: num(980)},
		{Name: "INSA Sports Complex", Location: "INSA Toulouse", University: str("INSA"), City: "Toulouse",
			Latitude: f64(43.5697), Longitude: f64(1.4647), Availability: &booked, SponsorVisibility: num(1560)},
		{Name: "Purpan Outdoor Court", Location: "Campus Purpan", University: str("ENVT"), City: "Toulouse",
			Latitude: f64(43.6123), Longitude: f64(1.3993), SponsorVisibility: num(650)},
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, input := range courts {
		court, err := svc.CreateCourt(ctx, input)
		if err != nil {
			return err
		}
		for day := visibilityDays; day >= 1; day-- {
			views := 50 + rand.IntN(250)
			_, err := svc.AddVisibilityLog(ctx, court.ID, services.CreateVisibilityLogInput{
				Date:           today.AddDate(0, 0, -day).Format(time.DateOnly),
				Views:          views,
				UniqueVisitors: views/3 + rand.IntN(views/3+1),
			})
			if err != nil {
				return err
			}
		}
	}
	logger.Info("courts created", slog.Int("count", len(courts)), slog.Int("days_of_logs", visibilityDays))
	return nil
}

func str(s string) *string   { return &s }
func num(n int) *int         { return &n }
func f64(f float64) *float64 { return &f }
