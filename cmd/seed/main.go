// Command seed заполняет справочник оборудования из YAML файла
// и печатает bcrypt хеш секрета администратора для config.toml.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LabBookingService/internal/config"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
	reservationRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/reservation"
	equipmentService "github.com/m04kA/SMC-LabBookingService/internal/service/equipment"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
	"github.com/m04kA/SMC-LabBookingService/pkg/txmanager"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "path to config file")
		fixture    = flag.String("file", "seed/equipment.yaml", "path to equipment fixture")
		hashSecret = flag.String("hash-secret", "", "print bcrypt hash of the admin secret and exit")
	)
	flag.Parse()

	if *hashSecret != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*hashSecret), bcrypt.DefaultCost)
		if err != nil {
			fmt.Printf("Failed to hash secret: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	data, err := os.ReadFile(*fixture)
	if err != nil {
		log.Fatal("Failed to read fixture %s: %v", *fixture, err)
	}
	requests, err := parseFixture(data)
	if err != nil {
		log.Fatal("Invalid fixture %s: %v", *fixture, err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	svc := equipmentService.NewService(
		equipmentRepo.NewRepository(db),
		reservationRepo.NewRepository(db),
		txmanager.NewSQLTransactionManager(db),
		log,
	)

	// Пропускаем оборудование, которое уже есть (по имени без учета регистра)
	existing, err := svc.List(ctx)
	if err != nil {
		log.Fatal("Failed to list equipment: %v", err)
	}
	names := make(map[string]struct{}, len(existing.Equipment))
	for _, e := range existing.Equipment {
		names[strings.ToLower(e.Name)] = struct{}{}
	}

	created := 0
	for _, req := range requests {
		if _, ok := names[strings.ToLower(strings.TrimSpace(req.Name))]; ok {
			log.Info("Seed: skip existing equipment %q", req.Name)
			continue
		}
		e, err := svc.Create(ctx, req)
		if err != nil {
			log.Fatal("Failed to create equipment %q: %v", req.Name, err)
		}
		log.Info("Seed: created equipment id=%d, name=%q", e.ID, e.Name)
		created++
	}

	log.Info("Seed finished: %d created, %d skipped", created, len(requests)-created)
}
