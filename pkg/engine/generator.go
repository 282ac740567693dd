package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/arqv30/market_analyzer/pkg/logger"
	dm "github.com/arqv30/market_analyzer/pkg/model"
)

// maxAnalysisTokens 单次模型调用的 token 上限
const maxAnalysisTokens = 8192

// ErrAIUnavailable 完全没有配置模型协作方时的快速失败错误
var ErrAIUnavailable = errors.New("AI Manager não disponível - configure pelo menos uma API de IA")

// performAIAnalysis 执行 AI 分析。仅在模型协作方完全缺失时报错；
// 调用失败或空响应都降级到基础分析而不向上传播。
func (e *Engine) performAIAnalysis(ctx context.Context, req *dm.AnalysisRequest, bundle *dm.ResearchBundle) (*dm.Analysis, error) {
	if e.ai == nil || !e.ai.Available() {
		return nil, ErrAIUnavailable
	}

	searchContext := renderResearchContext(bundle)
	prompt := buildAnalysisPrompt(req, searchContext)

	logger.Log.Info("🤖 Executando análise com AI Manager...")
	raw, err := e.ai.GenerateAnalysis(ctx, prompt, maxAnalysisTokens)
	if err != nil {
		logger.Log.Errorf("Erro na análise com IA: %v", err)
		return basicAnalysis(req), nil
	}
	if strings.TrimSpace(raw) == "" {
		logger.Log.Error("Erro na análise com IA: IA não retornou resposta válida")
		return basicAnalysis(req), nil
	}

	analysis := recoverAnalysis(raw, req)
	logger.Log.Info("✅ Análise com IA concluída")
	return analysis, nil
}
