package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "github.com/lib/pq"

	"github.com/arqv30/market_analyzer/pkg/config"
	"github.com/arqv30/market_analyzer/pkg/model"
)

// Storage 分析报告的 postgres 持久层
type Storage struct {
	db *sql.DB
}

// RunSummary 历史分析的列表摘要
type RunSummary struct {
	ID                int     `json:"id"`
	SessionID         string  `json:"session_id"`
	Segmento          string  `json:"segmento"`
	Query             string  `json:"query"`
	QualityScore      float64 `json:"quality_score"`
	ProcessingSeconds float64 `json:"processing_seconds"`
	CreatedAt         string  `json:"created_at"`
}

// Run 单次分析的完整记录
type Run struct {
	RunSummary
	Report *model.Analysis `json:"report"`
}

// NewStorage 建立数据库连接并初始化 schema
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id SERIAL PRIMARY KEY,
			session_id TEXT,
			segmento TEXT,
			query TEXT,
			report JSONB NOT NULL,
			quality_score DOUBLE PRECISION,
			processing_seconds DOUBLE PRECISION,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS run_insights (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES analysis_runs(id),
			insight_content TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SaveAnalysis 在一个事务里保存报告与洞察行，返回新记录 ID
func (s *Storage) SaveAnalysis(ctx context.Context, sessionID string, req *model.AnalysisRequest, report *model.Analysis) (int, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal report: %w", err)
	}

	var qualityScore, processingSeconds float64
	if report.Metadata != nil {
		qualityScore = report.Metadata.QualityScore
		processingSeconds = report.Metadata.ProcessingTimeSeconds
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var runID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO analysis_runs (session_id, segmento, query, report, quality_score, processing_seconds)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		sessionID, req.Segmento, req.Query, sanitizeText(string(payload)), qualityScore, processingSeconds).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	for _, insight := range report.InsightsExclusivos {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_insights (run_id, insight_content)
			VALUES ($1, $2)`,
			runID, sanitizeText(insight))
		if err != nil {
			return 0, fmt.Errorf("failed to insert insight: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns 分页列出历史分析，按时间倒序
func (s *Storage) ListRuns(ctx context.Context, page, pageSize int) ([]RunSummary, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_runs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count analysis runs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(session_id, ''), COALESCE(segmento, ''), COALESCE(query, ''),
		       COALESCE(quality_score, 0), COALESCE(processing_seconds, 0), created_at::TEXT
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Segmento, &r.Query,
			&r.QualityScore, &r.ProcessingSeconds, &r.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		summaries = append(summaries, r)
	}

	return summaries, total, rows.Err()
}

// GetRun 取回单次分析的完整报告
func (s *Storage) GetRun(ctx context.Context, id int) (*Run, error) {
	var run Run
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(session_id, ''), COALESCE(segmento, ''), COALESCE(query, ''),
		       COALESCE(quality_score, 0), COALESCE(processing_seconds, 0), created_at::TEXT, report
		FROM analysis_runs
		WHERE id = $1`,
		id).Scan(&run.ID, &run.SessionID, &run.Segmento, &run.Query,
		&run.QualityScore, &run.ProcessingSeconds, &run.CreatedAt, &payload)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run %d: %w", id, err)
	}

	var report model.Analysis
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %d: %w", id, err)
	}
	run.Report = &report

	return &run, nil
}

// sanitizeText postgres 文本字段不支持 NULL 字节，无效 UTF-8 一并移除
func sanitizeText(content string) string {
	if !utf8.ValidString(content) {
		v := make([]rune, 0, len(content))
		for _, r := range content {
			if r == utf8.RuneError {
				continue
			}
			v = append(v, r)
		}
		content = string(v)
	}
	return strings.ReplaceAll(content, "\x00", "")
}
