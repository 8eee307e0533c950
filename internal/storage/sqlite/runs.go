package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/predictionsbetting/internal/models"
)

// SaveRun persists a run with its roster, methods, totals and Brier scores.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *models.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, source, scored, skipped, created_at) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.Source, run.Scored, run.Skipped, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, p := range run.Roster {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO run_participants (run_id, position, name) VALUES (?, ?, ?)",
			run.ID, i, string(p),
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i, m := range run.Methods {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO run_methods (run_id, position, method) VALUES (?, ?, ?)",
			run.ID, i, m.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert method: %w", err)
		}
	}

	for _, m := range run.Methods {
		totals := run.Totals[m]
		for _, p := range totals.Participants() {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO run_totals (run_id, method, participant, balance) VALUES (?, ?, ?, ?)",
				run.ID, m.String(), string(p), totals[p],
			)
			if err != nil {
				return fmt.Errorf("failed to insert total: %w", err)
			}
		}
	}

	for _, p := range run.Roster {
		score, ok := run.Brier[p]
		if !ok {
			continue
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO run_brier (run_id, participant, score) VALUES (?, ?, ?)",
			run.ID, string(p), score,
		)
		if err != nil {
			return fmt.Errorf("failed to insert brier score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID, including totals and Brier scores.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*models.Run, error) {
	run := &models.Run{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, source, scored, skipped, created_at FROM runs WHERE id = ?",
		runID,
	).Scan(&run.ID, &run.Source, &run.Scored, &run.Skipped, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if run.Roster, err = s.getRoster(ctx, runID); err != nil {
		return nil, err
	}
	if run.Methods, err = s.getMethods(ctx, runID); err != nil {
		return nil, err
	}
	if run.Totals, err = s.getTotals(ctx, runID); err != nil {
		return nil, err
	}
	if run.Brier, err = s.getBrier(ctx, runID); err != nil {
		return nil, err
	}

	return run, nil
}

// ListRuns returns run headers, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]*models.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, source, scored, skipped, created_at FROM runs ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		if err := rows.Scan(&run.ID, &run.Source, &run.Scored, &run.Skipped, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

func (s *SQLiteStore) getRoster(ctx context.Context, runID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM run_participants WHERE run_id = ? ORDER BY position",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var roster []models.Participant
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		roster = append(roster, models.Participant(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return roster, nil
}

func (s *SQLiteStore) getMethods(ctx context.Context, runID string) ([]models.Method, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT method FROM run_methods WHERE run_id = ? ORDER BY position",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get methods: %w", err)
	}
	defer rows.Close()

	var methods []models.Method
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan method: %w", err)
		}
		m, err := models.ParseMethod(name)
		if err != nil {
			return nil, fmt.Errorf("failed to decode method: %w", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate methods: %w", err)
	}
	return methods, nil
}

func (s *SQLiteStore) getTotals(ctx context.Context, runID string) (map[models.Method]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT method, participant, balance FROM run_totals WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[models.Method]models.Settlement)
	for rows.Next() {
		var name, participant string
		var balance float64
		if err := rows.Scan(&name, &participant, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		m, err := models.ParseMethod(name)
		if err != nil {
			return nil, fmt.Errorf("failed to decode method: %w", err)
		}
		if totals[m] == nil {
			totals[m] = make(models.Settlement)
		}
		totals[m][models.Participant(participant)] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate totals: %w", err)
	}
	return totals, nil
}

func (s *SQLiteStore) getBrier(ctx context.Context, runID string) (map[models.Participant]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant, score FROM run_brier WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get brier scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[models.Participant]float64)
	for rows.Next() {
		var participant string
		var score float64
		if err := rows.Scan(&participant, &score); err != nil {
			return nil, fmt.Errorf("failed to scan brier score: %w", err)
		}
		scores[models.Participant(participant)] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate brier scores: %w", err)
	}
	return scores, nil
}
