package server

import (
	"context"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/arqv30/market_analyzer/pkg/config"
	"github.com/arqv30/market_analyzer/pkg/model"
	"github.com/arqv30/market_analyzer/pkg/storage"
)

// Analyzer 分析引擎的对外契约
type Analyzer interface {
	GenerateComprehensiveAnalysis(ctx context.Context, req *model.AnalysisRequest, sessionID string) *model.Analysis
}

// RunReader 历史报告查询，可为 nil（未配置数据库）
type RunReader interface {
	ListRuns(ctx context.Context, page, pageSize int) ([]storage.RunSummary, int, error)
	GetRun(ctx context.Context, id int) (*storage.Run, error)
}

// Service HTTP 服务
type Service struct {
	analyzer Analyzer
	runs     RunReader
}

// NewService 创建 HTTP 服务
func NewService(analyzer Analyzer, runs RunReader) *Service {
	return &Service{analyzer: analyzer, runs: runs}
}

// NewHTTPServer 创建 kratos HTTP 服务器并注册路由
func NewHTTPServer(cfg config.ServerConfig, s *Service) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if cfg.Addr != "" {
		opts = append(opts, http.Address(cfg.Addr))
	}
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	route := srv.Route("/")
	route.POST("/api/v1/analyses", s.analyze)
	route.GET("/api/v1/analyses", s.listRuns)
	route.GET("/api/v1/analyses/{id}", s.getRun)

	return srv
}

type analyzeRequest struct {
	model.AnalysisRequest
	SessionID string `json:"session_id"`
}

func (s *Service) analyze(ctx http.Context) error {
	var in analyzeRequest
	if err := ctx.Bind(&in); err != nil {
		return errors.BadRequest("INVALID_BODY", err.Error())
	}

	// 引擎保证总是返回结构化报告，这里不会有降级之外的失败
	report := s.analyzer.GenerateComprehensiveAnalysis(ctx, &in.AnalysisRequest, in.SessionID)
	return ctx.Result(200, report)
}

type listRunsReply struct {
	Runs  []storage.RunSummary `json:"runs"`
	Total int                  `json:"total"`
}

func (s *Service) listRuns(ctx http.Context) error {
	if s.runs == nil {
		return errors.ServiceUnavailable("NO_STORAGE", "persistência não configurada")
	}

	page, _ := strconv.Atoi(ctx.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(ctx.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = 10
	}

	runs, total, err := s.runs.ListRuns(ctx, page, pageSize)
	if err != nil {
		return err
	}
	return ctx.Result(200, &listRunsReply{Runs: runs, Total: total})
}

func (s *Service) getRun(ctx http.Context) error {
	if s.runs == nil {
		return errors.ServiceUnavailable("NO_STORAGE", "persistência não configurada")
	}

	id, err := strconv.Atoi(ctx.Vars().Get("id"))
	if err != nil {
		return errors.BadRequest("INVALID_ID", "id inválido")
	}

	run, err := s.runs.GetRun(ctx, id)
	if err != nil {
		return errors.NotFound("RUN_NOT_FOUND", err.Error())
	}
	return ctx.Result(200, run)
}
