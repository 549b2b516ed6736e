package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/attrition-form/internal/domain"
)

type Repository struct {
	db *sql.DB
}

// New opens the SQLite database. Schema migrations are managed by dbmate;
// run `dbmate up` before starting the server.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

// ── Predictions ───────────────────────────────────────────────────────────────

func (r *Repository) SavePrediction(ctx context.Context, p *domain.PredictionRecord) error {
	record, err := json.Marshal(p.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	var prob sql.NullFloat64
	if p.Probability != nil {
		prob = sql.NullFloat64{Float64: *p.Probability, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO predictions (record, will_leave, probability, confidence, created_at)
		VALUES (?,?,?,?,?)`,
		string(record), boolToInt(p.Leave), prob, p.Confidence, p.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	p.ID = id
	return nil
}

func (r *Repository) GetPrediction(ctx context.Context, id int64) (*domain.PredictionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, record, will_leave, probability, confidence, created_at
		FROM predictions WHERE id=?`, id)
	return scanPrediction(row)
}

// ListPredictions returns the newest predictions first. A limit <= 0
// returns all rows.
func (r *Repository) ListPredictions(ctx context.Context, limit int) ([]domain.PredictionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, record, will_leave, probability, confidence, created_at
		FROM predictions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.PredictionRecord
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (r *Repository) DeletePrediction(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM predictions WHERE id=?`, id)
	return err
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...any) error
}

func scanPrediction(s scanner) (*domain.PredictionRecord, error) {
	p := &domain.PredictionRecord{}
	var record string
	var leave int
	var prob sql.NullFloat64
	if err := s.Scan(&p.ID, &record, &leave, &prob, &p.Confidence, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(record), &p.Record); err != nil {
		return nil, fmt.Errorf("decode record %d: %w", p.ID, err)
	}
	p.Leave = leave == 1
	if prob.Valid {
		v := prob.Float64
		p.Probability = &v
	}
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
