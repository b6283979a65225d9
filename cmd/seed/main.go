package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/config"
	"venuelayout/internal/shared/database"
	"venuelayout/internal/templates"
	"venuelayout/internal/tiers"
	"venuelayout/pkg/cache"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// demoEventID is fixed so repeated seeding targets the same event.
var demoEventID = uuid.MustParse("5f0c8a4e-0d4b-4c1e-9d6f-2a7b3c9e1f00")

type Seeder struct {
	db        *database.DB
	cfg       *config.Config
	templates templates.Service
	tiers     tiers.Repository
}

func main() {
	clean := flag.Bool("clean", false, "truncate layout tables before seeding")
	flag.Parse()

	fmt.Println("🌱 Starting venue layout seeder...")
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder, err := NewSeeder(cfg, db)
	if err != nil {
		log.Fatalf("Failed to prepare seeder: %v", err)
	}

	if *clean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("✅ Database cleaned successfully")
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("\n🎉 Seeding completed!")
}

func NewSeeder(cfg *config.Config, db *database.DB) (*Seeder, error) {
	catalog, err := templates.NewDefaultCatalog()
	if err != nil {
		return nil, err
	}
	fileTemplates, err := templates.LoadDir(cfg.Templates.Dir)
	if err != nil {
		return nil, err
	}
	catalog.SetFileTemplates(fileTemplates)

	layoutRepo := layouts.NewRepository(db.GetPostgreSQL(), db.GetRedisClient())
	layoutService := layouts.NewService(layoutRepo, layouts.NoopPublisher{})

	return &Seeder{
		db:        db,
		cfg:       cfg,
		templates: templates.NewService(catalog, layoutRepo, layoutService),
		tiers:     tiers.NewRepository(db.GetPostgreSQL(), cache.NewService(db.GetRedisClient())),
	}, nil
}

// CleanDatabase truncates the layout tables
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"event_tier_boundaries",
		"venue_layouts",
	}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll stores the template catalog, one draft layout per template and
// demo tier boundaries.
func (s *Seeder) SeedAll(ctx context.Context) error {
	seeded, err := s.templates.SeedBuiltins(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}
	fmt.Printf("  ✅ Stored %d templates\n", seeded)

	summaries, err := s.templates.ListTemplates(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	for _, summary := range summaries {
		layout, err := s.templates.Instantiate(ctx, summary.Name, templates.InstantiateRequest{
			Name:      "Demo " + summary.Name,
			VenueName: "Demo Venue",
		}, "seeder")
		if err != nil {
			return fmt.Errorf("failed to instantiate %s: %w", summary.Name, err)
		}
		fmt.Printf("  ✅ Layout %s (%s): %d seated, %d standing\n",
			layout.Name, layout.ID, layout.TotalSeated, layout.TotalStanding)
	}

	boundaries := tiers.NewEventTierBoundaries(demoEventID, tiers.DefaultThresholds())
	if err := boundaries.Validate(s.cfg.Tiers.MinGap); err != nil {
		return err
	}
	if err := s.tiers.Upsert(ctx, boundaries); err != nil {
		return fmt.Errorf("failed to seed tier boundaries: %w", err)
	}
	fmt.Printf("  ✅ Tier boundaries for demo event %s\n", demoEventID)
	return nil
}
