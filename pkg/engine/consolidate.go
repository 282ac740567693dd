package engine

import (
	"fmt"
	"net/url"
	"sort"

	dm "github.com/arqv30/market_analyzer/pkg/model"
)

// maxExclusiveInsights 派生洞察的数量上限
const maxExclusiveInsights = 5

// consolidateAnalysis 在 AI 分析的副本上合并研究元数据、派生洞察
// 与子系统快照。除读取协作方可用性外对输入是纯函数。
func (e *Engine) consolidateAnalysis(req *dm.AnalysisRequest, bundle *dm.ResearchBundle, analysis *dm.Analysis) *dm.Analysis {
	consolidated := *analysis

	if len(bundle.SearchResults) > 0 {
		consolidated.DadosPesquisaReal = &dm.RealSearchData{
			TotalResultados:      len(bundle.SearchResults),
			FontesUnicas:         countDistinctURLs(bundle.SearchResults),
			ProvedoresUtilizados: distinctProviders(bundle.SearchResults),
			ResultadosDetalhados: bundle.SearchResults,
		}
	}

	if len(bundle.ExtractedPages) > 0 {
		summaries := make([]dm.PageSummary, 0, len(bundle.ExtractedPages))
		for _, page := range bundle.ExtractedPages {
			summaries = append(summaries, dm.PageSummary{
				URL:             page.URL,
				Titulo:          page.Title,
				TamanhoConteudo: len(page.Content),
				Fonte:           page.Source,
			})
		}
		consolidated.ConteudoExtraidoReal = &dm.RealExtractedData{
			TotalPaginas:       len(bundle.ExtractedPages),
			TotalCaracteres:    bundle.TotalContentLength,
			PaginasProcessadas: summaries,
		}
	}

	if insights := e.exclusiveInsights(bundle); len(insights) > 0 {
		existing := consolidated.InsightsExclusivos
		if len(existing) == 0 {
			existing = consolidated.InsightsUltra
		}
		merged := make([]string, 0, len(existing)+len(insights))
		merged = append(merged, existing...)
		merged = append(merged, insights...)
		consolidated.InsightsExclusivos = merged
	}

	consolidated.SistemasUtilizados = &dm.SystemsUsed{
		AIProviders:       e.aiStatus(),
		SearchProviders:   e.searchStatus(),
		ContentExtraction: len(bundle.ExtractedPages) > 0,
		TotalSources:      len(bundle.Sources),
		AnalysisQuality:   "premium_real_data",
	}

	return &consolidated
}

// exclusiveInsights 基于真实研究数据派生的洞察，顺序固定、上限 5 条
func (e *Engine) exclusiveInsights(bundle *dm.ResearchBundle) []string {
	var insights []string

	if len(bundle.SearchResults) > 0 {
		insights = append(insights, fmt.Sprintf(
			"🔍 Pesquisa Real: Análise baseada em %d resultados de %d provedores diferentes",
			len(bundle.SearchResults), len(distinctProviders(bundle.SearchResults))))
	}

	if len(bundle.ExtractedPages) > 0 {
		insights = append(insights, fmt.Sprintf(
			"📄 Conteúdo Real: %d páginas analisadas com %d caracteres de conteúdo real",
			len(bundle.ExtractedPages), bundle.TotalContentLength))
	}

	if domains := countDistinctDomains(bundle.SearchResults); domains > 5 {
		insights = append(insights, fmt.Sprintf(
			"🌐 Diversidade de Fontes: Informações coletadas de %d domínios únicos para máxima confiabilidade",
			domains))
	}

	insights = append(insights, fmt.Sprintf(
		"🤖 Sistema Robusto: %d provedores de IA e %d provedores de busca disponíveis com fallback automático",
		countAvailable(e.aiStatus()), countAvailable(e.searchStatus())))

	insights = append(insights,
		"✅ Garantia de Qualidade: 100% dos dados baseados em pesquisa real, sem simulações ou dados fictícios")

	if len(insights) > maxExclusiveInsights {
		insights = insights[:maxExclusiveInsights]
	}
	return insights
}

func countDistinctURLs(results []dm.SearchResult) int {
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		seen[r.URL] = struct{}{}
	}
	return len(seen)
}

// distinctProviders 去重后排序，保证相同输入产出相同洞察文本
func distinctProviders(results []dm.SearchResult) []string {
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		seen[r.Source] = struct{}{}
	}
	providers := make([]string, 0, len(seen))
	for p := range seen {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers
}

// countDistinctDomains 统计搜索结果覆盖的唯一域名数，
// 单条 URL 解析失败只把该条排除在域名集合之外
func countDistinctDomains(results []dm.SearchResult) int {
	domains := make(map[string]struct{})
	for _, r := range results {
		u, err := url.Parse(r.URL)
		if err != nil || u.Host == "" {
			continue
		}
		domains[u.Host] = struct{}{}
	}
	return len(domains)
}

func countAvailable(status map[string]dm.ProviderStatus) int {
	n := 0
	for _, s := range status {
		if s.Available {
			n++
		}
	}
	return n
}
