package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/arqv30/market_analyzer/pkg/logger"
	dm "github.com/arqv30/market_analyzer/pkg/model"
)

const (
	formatVersion = "2.0.0"

	// raw_ai_response 保留的原始响应长度上限
	rawResponseLimit = 1000
)

// recoverAnalysis 把模型的任意输出恢复为结构化报告，永不失败。
// 恢复级联按序尝试：严格解析成功即返回，否则落到启发式模板。
func recoverAnalysis(raw string, req *dm.AnalysisRequest) *dm.Analysis {
	if analysis, ok := parseDirect(raw); ok {
		return analysis
	}
	return extractHeuristic(raw, req)
}

// parseDirect 剥掉围栏标记后做严格 JSON 解析
func parseDirect(raw string) (*dm.Analysis, bool) {
	clean := sliceFenced(strings.TrimSpace(raw))

	var analysis dm.Analysis
	if err := json.Unmarshal([]byte(clean), &analysis); err != nil {
		logger.Log.Errorf("❌ Erro ao parsear JSON da IA: %v", err)
		return nil, false
	}

	analysis.MetadataAI = &dm.AIMetadata{
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		RecoveryPath: "direct",
		Version:      formatVersion,
	}
	return &analysis, true
}

// sliceFenced 取第一个和最后一个围栏标记之间的内容，
// 带 json 标签的围栏优先于裸围栏
func sliceFenced(text string) string {
	if start := strings.Index(text, "```json"); start >= 0 {
		start += len("```json")
		if end := strings.LastIndex(text, "```"); end > start {
			return strings.TrimSpace(text[start:end])
		}
	} else if start := strings.Index(text, "```"); start >= 0 {
		start += len("```")
		if end := strings.LastIndex(text, "```"); end > start {
			return strings.TrimSpace(text[start:end])
		}
	}
	return text
}

// extractHeuristic 解析失败时的降级恢复：只用请求里的细分领域填充
// 固定模板，原始响应截断后保留在 raw_ai_response 供排查。
func extractHeuristic(raw string, req *dm.AnalysisRequest) *dm.Analysis {
	segmento := req.Segmento
	if segmento == "" {
		segmento = "Negócios"
	}

	return &dm.Analysis{
		Avatar: &dm.Avatar{
			NomeFicticio: fmt.Sprintf("Profissional %s Brasileiro", segmento),
			PerfilDemografico: &dm.DemographicProfile{
				Idade:        "30-45 anos - faixa de maior poder aquisitivo",
				Genero:       "Distribuição equilibrada com leve predominância masculina",
				Renda:        "R$ 8.000 - R$ 35.000 - classe média alta brasileira",
				Escolaridade: "Superior completo - 78% têm graduação",
				Localizacao:  "Concentrados em grandes centros urbanos",
				EstadoCivil:  "68% casados ou união estável",
				Profissao:    fmt.Sprintf("Profissionais de %s e áreas correlatas", segmento),
			},
			DoresViscerais: []string{
				fmt.Sprintf("Trabalhar excessivamente em %s sem ver crescimento proporcional", segmento),
				"Sentir-se sempre correndo atrás da concorrência",
				"Ver competidores menores crescendo mais rapidamente",
				"Não conseguir se desconectar do trabalho",
				"Viver com medo constante de que tudo pode desmoronar",
			},
			DesejosSecretos: []string{
				fmt.Sprintf("Ser reconhecido como autoridade no mercado de %s", segmento),
				"Ter um negócio que funcione sem presença constante",
				"Ganhar dinheiro de forma passiva",
				"Ter liberdade total de horários e decisões",
				"Deixar um legado significativo",
			},
		},
		InsightsUltra: []string{
			fmt.Sprintf("O mercado brasileiro de %s está em transformação digital acelerada", segmento),
			"Existe lacuna entre ferramentas disponíveis e conhecimento para implementá-las",
			"A maior dor não é falta de informação, mas excesso sem direcionamento",
			fmt.Sprintf("Profissionais de %s pagam premium por simplicidade", segmento),
			"Fator decisivo é combinação de confiança + urgência + prova social",
		},
		RawAIResponse: truncate(raw, rawResponseLimit),
		MetadataAI: &dm.AIMetadata{
			GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
			RecoveryPath: "heuristic",
			Version:      formatVersion,
		},
	}
}
