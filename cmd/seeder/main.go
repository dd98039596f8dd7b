// Command seeder creates the database schemas and loads demo kingdoms.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kvkstats/ranking-api/internal/logic"
	"github.com/kvkstats/ranking-api/internal/models"
	"github.com/kvkstats/ranking-api/internal/worker"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kingdom_profiles (
	kingdom_id    INTEGER PRIMARY KEY,
	total_kvks    INTEGER NOT NULL DEFAULT 0,
	prep_wins     INTEGER NOT NULL DEFAULT 0,
	prep_losses   INTEGER NOT NULL DEFAULT 0,
	battle_wins   INTEGER NOT NULL DEFAULT 0,
	battle_losses INTEGER NOT NULL DEFAULT 0,
	dominations   INTEGER NOT NULL DEFAULT 0,
	invasions     INTEGER NOT NULL DEFAULT 0,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS kvk_records (
	kingdom_id       INTEGER NOT NULL REFERENCES kingdom_profiles(kingdom_id) ON DELETE CASCADE,
	kvk_number       INTEGER NOT NULL,
	prep_result      TEXT,
	battle_result    TEXT,
	overall_result   TEXT,
	opponent_kingdom INTEGER,
	PRIMARY KEY (kingdom_id, kvk_number)
);
`

// demoKingdoms maps kingdom numbers to their KvK results, oldest first.
// Each code is Preparation then Battle; "--" is a bye.
var demoKingdoms = map[int]string{
	1402: "WW WW LW WW WL WW WW WW LL WW",
	2041: "LL LW LL WL LL",
	3120: "WW",
	3377: "WL LW WW -- WW LL WW WW",
	4096: "",
}

func main() {
	pgURL := flag.String("postgres", os.Getenv("POSTGRES_URL"), "Postgres connection URL")
	chURL := flag.String("clickhouse", os.Getenv("CLICKHOUSE_URL"), "ClickHouse DSN")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *pgURL == "" {
		sugar.Fatal("POSTGRES_URL or -postgres is required")
	}
	pool, err := pgxpool.New(ctx, *pgURL)
	if err != nil {
		sugar.Fatalw("Postgres connect failed", "error", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		sugar.Fatalw("Postgres schema failed", "error", err)
	}
	writer := logic.NewProfileWriter(pool)
	for id, codes := range demoKingdoms {
		profile, err := buildProfile(id, codes)
		if err != nil {
			sugar.Fatalw("Bad demo kingdom", "kingdom", id, "error", err)
		}
		if err := writer.Save(ctx, profile); err != nil {
			sugar.Fatalw("Seeding kingdom failed", "kingdom", id, "error", err)
		}
		sugar.Infow("Seeded kingdom", "kingdom", id, "kvks", profile.TotalMatches)
	}

	if *chURL == "" {
		sugar.Warn("No ClickHouse DSN given, skipping snapshot schema")
		return
	}
	opts, err := clickhouse.ParseDSN(*chURL)
	if err != nil {
		sugar.Fatalw("Bad ClickHouse DSN", "error", err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		sugar.Fatalw("ClickHouse connect failed", "error", err)
	}
	defer conn.Close()

	for _, ddl := range []string{"CREATE DATABASE IF NOT EXISTS kvk_stats", worker.SnapshotSchema} {
		if err := conn.Exec(ctx, ddl); err != nil {
			sugar.Fatalw("ClickHouse schema failed", "error", err)
		}
	}
	sugar.Info("Snapshot schema ready")
}

// buildProfile expands a result string into a profile whose counters agree
// with its history.
func buildProfile(kingdomID int, codes string) (models.KingdomProfile, error) {
	p := models.KingdomProfile{KingdomID: kingdomID}

	for i, code := range strings.Fields(codes) {
		r := models.MatchRecord{KvKNumber: i + 1, OpponentKingdom: kingdomID + 100*(i+1)}
		if code == "--" {
			r.OverallResult = "bye"
			r.OpponentKingdom = 0
			p.History = append(p.History, r)
			continue
		}
		if len(code) != 2 {
			return p, fmt.Errorf("kvk %d: bad code %q", i+1, code)
		}

		prepWon, err := letterWon(code[0])
		if err != nil {
			return p, fmt.Errorf("kvk %d: %w", i+1, err)
		}
		battleWon, err := letterWon(code[1])
		if err != nil {
			return p, fmt.Errorf("kvk %d: %w", i+1, err)
		}

		p.TotalMatches++
		r.PrepResult, r.BattleResult = models.PhaseLoss, models.PhaseLoss
		if prepWon {
			p.PrepWins++
			r.PrepResult = models.PhaseWin
		} else {
			p.PrepLosses++
		}
		if battleWon {
			p.BattleWins++
			r.BattleResult = models.PhaseWin
		} else {
			p.BattleLosses++
		}
		switch {
		case prepWon && battleWon:
			p.Dominations++
			r.OverallResult = string(models.OutcomeDomination)
		case !prepWon && !battleWon:
			p.Invasions++
			r.OverallResult = string(models.OutcomeInvasion)
		case battleWon:
			r.OverallResult = string(models.OutcomeComeback)
		default:
			r.OverallResult = string(models.OutcomeReversal)
		}
		p.History = append(p.History, r)
	}
	return p, nil
}

func letterWon(c byte) (bool, error) {
	switch c {
	case 'W':
		return true, nil
	case 'L':
		return false, nil
	}
	return false, fmt.Errorf("unknown result %q", c)
}
