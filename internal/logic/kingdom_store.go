package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kvkstats/ranking-api/internal/models"
)

type kingdomStore struct {
	pg PgPool
}

func NewKingdomStore(pg PgPool) KingdomStore {
	return &kingdomStore{pg: pg}
}

// GetProfile loads the aggregated counters and full KvK history of a kingdom.
// The whole history is needed: a streak may reach back arbitrarily far.
func (s *kingdomStore) GetProfile(ctx context.Context, kingdomID int) (*models.KingdomProfile, error) {
	p := &models.KingdomProfile{KingdomID: kingdomID}

	err := s.pg.QueryRow(ctx, `
		SELECT
			COALESCE(total_kvks, 0),
			COALESCE(prep_wins, 0), COALESCE(prep_losses, 0),
			COALESCE(battle_wins, 0), COALESCE(battle_losses, 0),
			COALESCE(dominations, 0), COALESCE(invasions, 0)
		FROM kingdom_profiles
		WHERE kingdom_id = $1
	`, kingdomID).Scan(
		&p.TotalMatches,
		&p.PrepWins, &p.PrepLosses,
		&p.BattleWins, &p.BattleLosses,
		&p.Dominations, &p.Invasions,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("kingdom %d: %w", kingdomID, ErrKingdomNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("profile query failed: %w", err)
	}

	rows, err := s.pg.Query(ctx, `
		SELECT
			kvk_number,
			COALESCE(prep_result, ''),
			COALESCE(battle_result, ''),
			COALESCE(overall_result, ''),
			COALESCE(opponent_kingdom, 0)
		FROM kvk_records
		WHERE kingdom_id = $1
		ORDER BY kvk_number DESC
	`, kingdomID)
	if err != nil {
		return nil, fmt.Errorf("history query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r            models.MatchRecord
			prep, battle string
		)
		if err := rows.Scan(&r.KvKNumber, &prep, &battle, &r.OverallResult, &r.OpponentKingdom); err != nil {
			return nil, fmt.Errorf("failed to scan kvk record: %w", err)
		}
		r.PrepResult = models.PhaseResult(prep)
		r.BattleResult = models.PhaseResult(battle)
		p.History = append(p.History, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history row iteration failed: %w", err)
	}

	return p, nil
}
