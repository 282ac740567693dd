package engine

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gson"

	"github.com/arqv30/market_analyzer/pkg/logger"
	dm "github.com/arqv30/market_analyzer/pkg/model"
)

const (
	// 主查询：每个提供商最多取的结果数，以及其中送去抓取的上限
	maxResultsPerProvider = 8
	maxMainExtractions    = 15

	// 上下文查询：每条查询的搜索上限与抓取上限
	maxContextResults     = 5
	maxContextExtractions = 3
)

// contextualQueries 由细分领域合成的固定上下文查询模板
func contextualQueries(segmento string) []string {
	return []string{
		fmt.Sprintf("mercado %s Brasil 2024 tendências", segmento),
		fmt.Sprintf("análise competitiva %s oportunidades", segmento),
		fmt.Sprintf("dados estatísticos %s crescimento", segmento),
	}
}

// collectResearchData 收集一次请求的全部研究材料。永不失败：
// 单条查询或单个 URL 的抓取失败只记日志并丢弃该项。
func (e *Engine) collectResearchData(ctx context.Context, req *dm.AnalysisRequest) *dm.ResearchBundle {
	bundle := &dm.ResearchBundle{}

	// 1. 自由文本查询，多提供商搜索
	if e.searchReady() && req.Query != "" {
		logger.Log.Info("🌐 Executando pesquisa web com múltiplos provedores...")
		results := e.search.MultiSearch(ctx, req.Query, maxResultsPerProvider)
		logger.Log.Debugf("resultado multi-provedor: %s", gson.ToString(results))

		bundle.SearchResults = append(bundle.SearchResults, results...)
		for i, r := range results {
			if i >= maxMainExtractions {
				break
			}
			content, ok := e.extract(r.URL)
			if !ok {
				continue
			}
			bundle.ExtractedPages = append(bundle.ExtractedPages, dm.ExtractedPage{
				URL:     r.URL,
				Title:   r.Title,
				Content: content,
				Source:  r.Source,
			})
			bundle.TotalContentLength += len(content)
		}

		// 来源列表由搜索结果派生，抓取失败或被跳过的 URL 也保留
		for _, r := range results {
			bundle.Sources = append(bundle.Sources, dm.SourceRef{URL: r.URL, Title: r.Title, Source: r.Source})
		}

		logger.Log.Infof("✅ Pesquisa multi-provedor: %d resultados, %d páginas extraídas",
			len(results), len(bundle.ExtractedPages))
	}

	// 2. 基于细分领域的上下文查询
	if e.searchReady() && req.Segmento != "" {
		logger.Log.Info("🔬 Executando pesquisas contextuais...")
		for _, query := range contextualQueries(req.Segmento) {
			results, err := e.search.Search(ctx, query, maxContextResults)
			if err != nil {
				logger.Log.Errorf("Erro na pesquisa contextual [%s]: %v", query, err)
				continue
			}
			bundle.SearchResults = append(bundle.SearchResults, results...)

			for i, r := range results {
				if i >= maxContextExtractions {
					break
				}
				content, ok := e.extract(r.URL)
				if !ok {
					continue
				}
				bundle.ExtractedPages = append(bundle.ExtractedPages, dm.ExtractedPage{
					URL:          r.URL,
					Title:        r.Title,
					Content:      content,
					Source:       r.Source,
					ContextQuery: query,
				})
				bundle.TotalContentLength += len(content)
			}
		}
		logger.Log.Info("✅ Pesquisas contextuais concluídas")
	}

	return bundle
}

func (e *Engine) searchReady() bool {
	return e.search != nil && e.search.Available()
}

// extract 单个 URL 的抓取，失败视为"该项无内容"
func (e *Engine) extract(url string) (string, bool) {
	if e.extractor == nil {
		return "", false
	}
	content, err := e.extractor.ExtractContent(url)
	if err != nil {
		logger.Log.Debugf("抓取失败 [%s]: %v", url, err)
		return "", false
	}
	if content == "" {
		return "", false
	}
	return content, true
}
