package logic

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kvkstats/ranking-api/internal/models"
)

// TxStarter is satisfied by *pgxpool.Pool and *pgx.Conn
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ProfileWriter stores kingdom profiles in the tables KingdomStore reads
type ProfileWriter struct {
	db TxStarter
}

func NewProfileWriter(db TxStarter) *ProfileWriter {
	return &ProfileWriter{db: db}
}

// Save replaces the profile and history of p.KingdomID in one transaction.
// Profiles that ExtractStats would reject are refused before touching the database.
func (w *ProfileWriter) Save(ctx context.Context, p models.KingdomProfile) error {
	if p.KingdomID <= 0 {
		return invalid("kingdom_id", "must be > 0, got %d", p.KingdomID)
	}
	if _, err := ExtractStats(p); err != nil {
		return fmt.Errorf("kingdom %d: %w", p.KingdomID, err)
	}

	return pgx.BeginFunc(ctx, w.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM kingdom_profiles WHERE kingdom_id = $1`, p.KingdomID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO kingdom_profiles
				(kingdom_id, total_kvks, prep_wins, prep_losses, battle_wins, battle_losses, dominations, invasions)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.KingdomID, p.TotalMatches, p.PrepWins, p.PrepLosses,
			p.BattleWins, p.BattleLosses, p.Dominations, p.Invasions,
		); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}

		if len(p.History) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, r := range p.History {
			batch.Queue(`
				INSERT INTO kvk_records (kingdom_id, kvk_number, prep_result, battle_result, overall_result, opponent_kingdom)
				VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)`,
				p.KingdomID, r.KvKNumber, string(r.PrepResult), string(r.BattleResult), r.OverallResult, r.OpponentKingdom)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
		return nil
	})
}
