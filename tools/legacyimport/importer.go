package main

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kvkstats/ranking-api/internal/logic"
	"github.com/kvkstats/ranking-api/internal/models"
)

// legacyRow is one line of the archived KvK sheet table
type legacyRow struct {
	Kingdom  int
	KvK      int
	Tag      string
	Opponent int
}

const legacyQuery = `
	SELECT kingdom, kvk_no, COALESCE(outcome, ''), COALESCE(opponent, 0)
	FROM kvk_archive
	WHERE kingdom > 0
	ORDER BY kingdom, kvk_no`

func loadLegacyRows(ctx context.Context, db *sql.DB) ([]legacyRow, error) {
	rows, err := db.QueryContext(ctx, legacyQuery)
	if err != nil {
		return nil, fmt.Errorf("archive query failed: %w", err)
	}
	defer rows.Close()

	var out []legacyRow
	for rows.Next() {
		var r legacyRow
		if err := rows.Scan(&r.Kingdom, &r.KvK, &r.Tag, &r.Opponent); err != nil {
			return nil, fmt.Errorf("failed to scan archive row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func isByeTag(tag string) bool {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "bye", "-", "":
		return true
	}
	return false
}

// outcomePhases splits an outcome into its phase results
func outcomePhases(o models.Outcome) (prepWon, battleWon bool) {
	switch o {
	case models.OutcomeDomination:
		return true, true
	case models.OutcomeComeback:
		return false, true
	case models.OutcomeReversal:
		return true, false
	}
	return false, false
}

// buildProfiles groups archive rows by kingdom and derives the counters from
// the rows themselves. Archived totals were maintained by hand and are not
// trusted. The result is ordered by kingdom number.
func buildProfiles(rows []legacyRow, logger *zap.SugaredLogger) []models.KingdomProfile {
	byKingdom := make(map[int]*models.KingdomProfile)
	for _, row := range rows {
		p, ok := byKingdom[row.Kingdom]
		if !ok {
			p = &models.KingdomProfile{KingdomID: row.Kingdom}
			byKingdom[row.Kingdom] = p
		}

		rec := models.MatchRecord{KvKNumber: row.KvK, OpponentKingdom: row.Opponent}
		if isByeTag(row.Tag) || row.Opponent == 0 {
			rec.OverallResult = "bye"
			rec.OpponentKingdom = 0
			p.History = append(p.History, rec)
			continue
		}

		outcome := logic.NormalizeLegacyOutcome(row.Tag, logger)
		prepWon, battleWon := outcomePhases(outcome)
		rec.OverallResult = string(outcome)
		rec.PrepResult, rec.BattleResult = models.PhaseLoss, models.PhaseLoss

		p.TotalMatches++
		if prepWon {
			p.PrepWins++
			rec.PrepResult = models.PhaseWin
		} else {
			p.PrepLosses++
		}
		if battleWon {
			p.BattleWins++
			rec.BattleResult = models.PhaseWin
		} else {
			p.BattleLosses++
		}
		switch outcome {
		case models.OutcomeDomination:
			p.Dominations++
		case models.OutcomeInvasion:
			p.Invasions++
		}
		p.History = append(p.History, rec)
	}

	out := make([]models.KingdomProfile, 0, len(byKingdom))
	for _, p := range byKingdom {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KingdomID < out[j].KingdomID })
	return out
}

// ProfileSaver is satisfied by *logic.ProfileWriter
type ProfileSaver interface {
	Save(ctx context.Context, p models.KingdomProfile) error
}

// importProfiles saves every profile, skipping the ones the store rejects.
// It returns how many were saved.
func importProfiles(ctx context.Context, saver ProfileSaver, profiles []models.KingdomProfile, logger *zap.SugaredLogger) (int, error) {
	saved := 0
	for _, p := range profiles {
		if err := saver.Save(ctx, p); err != nil {
			if ctx.Err() != nil {
				return saved, ctx.Err()
			}
			logger.Warnw("Skipping kingdom", "kingdom", p.KingdomID, "error", err)
			continue
		}
		saved++
	}
	return saved, nil
}
