package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/arqv30/market_analyzer/pkg/config"
	"github.com/arqv30/market_analyzer/pkg/logger"
	dm "github.com/arqv30/market_analyzer/pkg/model"
)

const engineName = "ARQV30 Enhanced v2.0"

// AIProvider 模型协作方：构造提示词后由引擎调用，细节（厂商、重试、
// 故障转移）由实现自理
type AIProvider interface {
	Available() bool
	GenerateAnalysis(ctx context.Context, prompt string, maxTokens int) (string, error)
	ProviderStatus() map[string]dm.ProviderStatus
}

// SearchProvider 搜索协作方
type SearchProvider interface {
	Available() bool
	MultiSearch(ctx context.Context, query string, maxPerProvider int) []dm.SearchResult
	Search(ctx context.Context, query string, maxResults int) ([]dm.SearchResult, error)
	ProviderStatus() map[string]dm.ProviderStatus
}

// ContentExtractor 正文抓取协作方
type ContentExtractor interface {
	ExtractContent(url string) (string, error)
}

// ReportStore 报告持久化协作方，可为 nil（不落库）
type ReportStore interface {
	SaveAnalysis(ctx context.Context, sessionID string, req *dm.AnalysisRequest, report *dm.Analysis) (int, error)
}

// Engine 分析流水线。各阶段严格串行：研究收集 → AI 分析 → 合并 → 评分。
// 任何阶段的未处理错误都会在顶层转成应急报告，对外永不失败。
type Engine struct {
	ai        AIProvider
	search    SearchProvider
	extractor ContentExtractor
	store     ReportStore

	// 调用方的时间上限假设，引擎不据此中断在途工作
	maxAnalysisTime time.Duration
}

// NewEngine 创建引擎实例。cfg 与 store 可为 nil。
func NewEngine(cfg *config.Config, ai AIProvider, search SearchProvider, extractor ContentExtractor, store ReportStore) *Engine {
	maxTime := 30 * time.Minute
	if cfg != nil && cfg.Engine.MaxAnalysisTime > 0 {
		maxTime = time.Duration(cfg.Engine.MaxAnalysisTime) * time.Second
	}
	return &Engine{
		ai:              ai,
		search:          search,
		extractor:       extractor,
		store:           store,
		maxAnalysisTime: maxTime,
	}
}

// GenerateComprehensiveAnalysis 对外唯一入口。sessionID 仅作为关联
// 标识透传，不参与任何业务语义。
func (e *Engine) GenerateComprehensiveAnalysis(ctx context.Context, req *dm.AnalysisRequest, sessionID string) (result *dm.Analysis) {
	start := time.Now()
	logger.Log.Infof("🚀 Iniciando análise abrangente para [%s] (session=%s)", req.Segmento, sessionID)

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("❌ Erro na análise abrangente: %v", r)
			result = e.emergencyAnalysis(req, fmt.Sprint(r))
		}
	}()

	// FASE 1: 数据收集
	logger.Log.Info("📊 FASE 1: Coleta de dados...")
	bundle := e.collectResearchData(ctx, req)

	// FASE 2: AI 分析
	logger.Log.Info("🧠 FASE 2: Análise com IA...")
	analysis, err := e.performAIAnalysis(ctx, req, bundle)
	if err != nil {
		logger.Log.Errorf("❌ Análise com IA indisponível: %v", err)
		return e.emergencyAnalysis(req, err.Error())
	}

	// FASE 3: 最终合并
	logger.Log.Info("🎯 FASE 3: Consolidação final...")
	final := e.consolidateAnalysis(req, bundle, analysis)

	elapsed := time.Since(start)
	final.Metadata = &dm.ReportMetadata{
		ProcessingTimeSeconds:   elapsed.Seconds(),
		ProcessingTimeFormatted: formatElapsed(elapsed),
		AnalysisEngine:          engineName,
		GeneratedAt:             time.Now().UTC().Format(time.RFC3339),
		QualityScore:            calculateQualityScore(final),
		DataSourcesUsed:         len(bundle.Sources),
		AIModelsUsed:            e.aiModelsUsed(),
	}

	e.persist(ctx, sessionID, req, final)

	logger.Log.Infof("✅ Análise abrangente concluída em %.2f segundos", elapsed.Seconds())
	return final
}

// persist 落库失败只记日志，不影响已生成的报告
func (e *Engine) persist(ctx context.Context, sessionID string, req *dm.AnalysisRequest, report *dm.Analysis) {
	if e.store == nil {
		return
	}
	id, err := e.store.SaveAnalysis(ctx, sessionID, req, report)
	if err != nil {
		logger.Log.Errorf("无法保存分析报告: %v", err)
		return
	}
	logger.Log.Infof("分析报告已保存 (id=%d)", id)
}

func (e *Engine) aiModelsUsed() int {
	if e.ai != nil && e.ai.Available() {
		return 1
	}
	return 0
}

// aiStatus / searchStatus 对引擎内部屏蔽协作方缺失的情况
func (e *Engine) aiStatus() map[string]dm.ProviderStatus {
	if e.ai == nil || !e.ai.Available() {
		return map[string]dm.ProviderStatus{}
	}
	return e.ai.ProviderStatus()
}

func (e *Engine) searchStatus() map[string]dm.ProviderStatus {
	if e.search == nil || !e.search.Available() {
		return map[string]dm.ProviderStatus{}
	}
	return e.search.ProviderStatus()
}

func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
