// Command legacyimport copies archived KvK results from the old MySQL sheet
// database into the kingdom tables.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kvkstats/ranking-api/internal/logic"
)

func main() {
	mysqlDSN := flag.String("mysql", os.Getenv("LEGACY_MYSQL_DSN"), "archive DSN, e.g. user:pass@tcp(host:3306)/kvk")
	pgURL := flag.String("postgres", os.Getenv("POSTGRES_URL"), "Postgres connection URL")
	dryRun := flag.Bool("dry-run", false, "only report what would be imported")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	if *mysqlDSN == "" {
		sugar.Fatal("LEGACY_MYSQL_DSN or -mysql is required")
	}
	cfg, err := mysql.ParseDSN(*mysqlDSN)
	if err != nil {
		sugar.Fatalw("Bad MySQL DSN", "error", err)
	}
	cfg.ParseTime = true
	cfg.Timeout = 10 * time.Second

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		sugar.Fatalw("MySQL open failed", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rows, err := loadLegacyRows(ctx, db)
	if err != nil {
		sugar.Fatalw("Reading archive failed", "error", err)
	}
	profiles := buildProfiles(rows, sugar)
	sugar.Infow("Archive loaded", "rows", len(rows), "kingdoms", len(profiles))

	if *dryRun {
		for _, p := range profiles {
			sugar.Infow("Would import", "kingdom", p.KingdomID, "kvks", p.TotalMatches,
				"dominations", p.Dominations, "invasions", p.Invasions)
		}
		return
	}

	if *pgURL == "" {
		sugar.Fatal("POSTGRES_URL or -postgres is required")
	}
	pool, err := pgxpool.New(ctx, *pgURL)
	if err != nil {
		sugar.Fatalw("Postgres connect failed", "error", err)
	}
	defer pool.Close()

	saved, err := importProfiles(ctx, logic.NewProfileWriter(pool), profiles, sugar)
	if err != nil {
		sugar.Fatalw("Import aborted", "saved", saved, "error", err)
	}
	sugar.Infow("Import complete", "saved", saved, "skipped", len(profiles)-saved)
}
