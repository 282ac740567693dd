package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	dm "github.com/arqv30/market_analyzer/pkg/model"
)

func manyResults(n int, source string) []dm.SearchResult {
	results := make([]dm.SearchResult, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, dm.SearchResult{
			URL:     fmt.Sprintf("https://site%d.com/artigo", i),
			Title:   fmt.Sprintf("título %d", i),
			Snippet: "trecho",
			Source:  source,
		})
	}
	return results
}

func TestCollectResearchData_NoSearchProvider(t *testing.T) {
	eng := NewEngine(nil, nil, nil, &fakeExtractor{content: "conteúdo"}, nil)

	bundle := eng.collectResearchData(context.Background(), &dm.AnalysisRequest{
		Query:    "mercado de moda",
		Segmento: "Moda",
	})

	if len(bundle.SearchResults) != 0 || len(bundle.ExtractedPages) != 0 {
		t.Errorf("bundle deveria estar vazio: %+v", bundle)
	}
	if bundle.TotalContentLength != 0 {
		t.Errorf("TotalContentLength = %d, esperado 0", bundle.TotalContentLength)
	}
}

func TestCollectResearchData_EmptySearchResults(t *testing.T) {
	searchProv := &fakeSearch{available: true}
	extractor := &fakeExtractor{content: "conteúdo"}
	eng := NewEngine(nil, nil, searchProv, extractor, nil)

	bundle := eng.collectResearchData(context.Background(), &dm.AnalysisRequest{Query: "qualquer coisa"})

	if len(bundle.SearchResults) != 0 {
		t.Errorf("resultados inesperados: %v", bundle.SearchResults)
	}
	if extractor.calls != 0 {
		t.Errorf("extrator chamado %d vezes sem resultados", extractor.calls)
	}
	if len(bundle.Sources) != 0 {
		t.Errorf("fontes inesperadas: %v", bundle.Sources)
	}
}

// 主查询的抓取上限：20 条结果只抓前 15 条
func TestCollectResearchData_MainExtractionBound(t *testing.T) {
	searchProv := &fakeSearch{
		available:    true,
		multiResults: manyResults(20, "tavily"),
	}
	extractor := &fakeExtractor{content: "conteúdo extraído"}
	eng := NewEngine(nil, nil, searchProv, extractor, nil)

	bundle := eng.collectResearchData(context.Background(), &dm.AnalysisRequest{Query: "mercado de moda"})

	if extractor.calls != maxMainExtractions {
		t.Errorf("extrações = %d, esperado %d", extractor.calls, maxMainExtractions)
	}
	if len(bundle.ExtractedPages) != maxMainExtractions {
		t.Errorf("páginas = %d, esperado %d", len(bundle.ExtractedPages), maxMainExtractions)
	}
	// 来源覆盖全部搜索结果，而不只是被抓取的部分
	if len(bundle.Sources) != 20 {
		t.Errorf("fontes = %d, esperado 20", len(bundle.Sources))
	}
	if want := maxMainExtractions * len("conteúdo extraído"); bundle.TotalContentLength != want {
		t.Errorf("TotalContentLength = %d, esperado %d", bundle.TotalContentLength, want)
	}
}

// 上下文查询：3 条固定模板，每条最多抓 3 个结果
func TestCollectResearchData_ContextualQueries(t *testing.T) {
	queries := contextualQueries("Moda")
	contextResults := make(map[string][]dm.SearchResult, len(queries))
	for _, q := range queries {
		contextResults[q] = manyResults(5, "searxng")
	}
	searchProv := &fakeSearch{
		available:      true,
		contextResults: contextResults,
	}
	extractor := &fakeExtractor{content: "conteúdo contextual"}
	eng := NewEngine(nil, nil, searchProv, extractor, nil)

	bundle := eng.collectResearchData(context.Background(), &dm.AnalysisRequest{Segmento: "Moda"})

	if want := 3 * maxContextExtractions; extractor.calls != want {
		t.Errorf("extrações = %d, esperado %d", extractor.calls, want)
	}
	if len(bundle.SearchResults) != 15 {
		t.Errorf("resultados = %d, esperado 15", len(bundle.SearchResults))
	}
	for _, page := range bundle.ExtractedPages {
		if page.ContextQuery == "" {
			t.Errorf("página contextual sem query de origem: %+v", page)
		}
	}
}

// 单条查询上下文失败不影响其余查询
func TestCollectResearchData_ContextualSearchError(t *testing.T) {
	searchProv := &fakeSearch{
		available: true,
		searchErr: errors.New("provedor indisponível"),
	}
	eng := NewEngine(nil, nil, searchProv, &fakeExtractor{content: "x"}, nil)

	bundle := eng.collectResearchData(context.Background(), &dm.AnalysisRequest{Segmento: "Moda"})

	if len(bundle.SearchResults) != 0 || len(bundle.ExtractedPages) != 0 {
		t.Errorf("bundle deveria estar vazio após falhas: %+v", bundle)
	}
}

// 抓取失败的 URL 被跳过但仍计入来源
func TestCollectResearchData_FailedExtractionKeptAsSource(t *testing.T) {
	results := manyResults(4, "tavily")
	searchProv := &fakeSearch{available: true, multiResults: results}
	extractor := &fakeExtractor{
		content:  "ok",
		failURLs: map[string]bool{results[1].URL: true, results[2].URL: true},
	}
	eng := NewEngine(nil, nil, searchProv, extractor, nil)

	bundle := eng.collectResearchData(context.Background(), &dm.AnalysisRequest{Query: "mercado"})

	if len(bundle.ExtractedPages) != 2 {
		t.Errorf("páginas = %d, esperado 2", len(bundle.ExtractedPages))
	}
	if len(bundle.Sources) != 4 {
		t.Errorf("fontes = %d, esperado 4", len(bundle.Sources))
	}
}
