package engine

import (
	"fmt"
	"time"

	"github.com/arqv30/market_analyzer/pkg/logger"
	dm "github.com/arqv30/market_analyzer/pkg/model"
)

// emergencyQualityScore 应急报告的固定质量分
const emergencyQualityScore = 25.0

// basicAnalysis IA 不可用或调用失败时的降级输出。
// 只依赖请求本身，不做任何网络或模型调用，因此不可能失败。
func basicAnalysis(req *dm.AnalysisRequest) *dm.Analysis {
	segmento := req.Segmento
	if segmento == "" {
		segmento = "negócios"
	}

	return &dm.Analysis{
		Avatar: &dm.Avatar{
			PerfilDemografico: &dm.DemographicProfile{
				Idade:        "25-45 anos",
				Renda:        "R$ 3.000 - R$ 15.000",
				Escolaridade: "Superior",
				Localizacao:  "Centros urbanos",
			},
			DoresViscerais: []string{
				"Falta de conhecimento especializado",
				"Dificuldade para implementar estratégias",
				"Resultados inconsistentes",
				"Falta de direcionamento claro",
			},
			DesejosSecretos: []string{
				"Alcançar liberdade financeira",
				"Ter mais tempo para família",
				"Ser reconhecido como especialista",
				"Fazer diferença no mundo",
			},
		},
		Escopo: &dm.Positioning{
			PosicionamentoMercado: "Solução premium para resultados rápidos",
			PropostaValorUnica:    "Transforme seu negócio com estratégias comprovadas",
			DiferenciaisCompetitivos: []string{
				"Metodologia exclusiva",
				"Suporte personalizado",
			},
		},
		PalavrasChave: &dm.KeywordStrategy{
			PalavrasPrimarias:   []string{segmento, "estratégia", "marketing"},
			PalavrasSecundarias: []string{"crescimento", "vendas", "digital", "online"},
			PalavrasCaudaLonga: []string{
				fmt.Sprintf("como crescer no %s", segmento),
				"estratégias de marketing digital",
			},
		},
		InsightsExclusivos: []string{
			fmt.Sprintf("O mercado de %s apresenta oportunidades de crescimento", segmento),
			"A digitalização é uma tendência irreversível no setor",
			"Investimento em marketing digital é essencial para competitividade",
			"Personalização da experiência do cliente é um diferencial competitivo",
			"⚠️ Análise gerada em modo básico - sistemas de IA indisponíveis",
		},
	}
}

// emergencyAnalysis 流水线整体失败时的最终兜底：基础分析加上
// 触发错误与重试建议，并记录当时的协作方可用性快照。
func (e *Engine) emergencyAnalysis(req *dm.AnalysisRequest, errMsg string) *dm.Analysis {
	logger.Log.Errorf("Gerando análise de emergência devido a: %s", errMsg)

	analysis := basicAnalysis(req)
	analysis.InsightsExclusivos = append(analysis.InsightsExclusivos,
		fmt.Sprintf("⚠️ Erro no processamento: %s", errMsg),
		"🔄 Recomenda-se executar nova análise",
	)

	analysis.Metadata = &dm.ReportMetadata{
		ProcessingTimeSeconds: 0,
		AnalysisEngine:        "Emergency Fallback",
		GeneratedAt:           time.Now().UTC().Format(time.RFC3339),
		QualityScore:          emergencyQualityScore,
		Recommendation:        "Execute nova análise com configuração completa",
		AvailableSystems: &dm.AvailableSystems{
			AIProviders:     e.aiStatus(),
			SearchProviders: e.searchStatus(),
		},
	}

	return analysis
}
