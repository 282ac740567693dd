package engine

import (
	"strings"
	"testing"

	dm "github.com/arqv30/market_analyzer/pkg/model"
)

func TestRenderResearchContext_Empty(t *testing.T) {
	if got := renderResearchContext(&dm.ResearchBundle{}); got != "" {
		t.Errorf("contexto vazio esperado, obtido %q", got)
	}
}

func TestRenderResearchContext_Truncation(t *testing.T) {
	long := strings.Repeat("a", 5000)
	bundle := &dm.ResearchBundle{}
	for i := 0; i < 12; i++ {
		bundle.ExtractedPages = append(bundle.ExtractedPages, dm.ExtractedPage{
			URL:     "https://a.com",
			Title:   "página",
			Content: long,
		})
	}

	got := renderResearchContext(bundle)

	if len(got) > contextCharLimit {
		t.Errorf("contexto com %d caracteres, limite %d", len(got), contextCharLimit)
	}
	// 单页摘录被截断到 1500，而不是整页进入上下文
	if strings.Contains(got, strings.Repeat("a", pageExcerptLimit+1)) {
		t.Error("trecho excede o limite por página")
	}
	// 第 11 页之后不应出现
	if strings.Count(got, "--- FONTE") > maxContextPages {
		t.Errorf("páginas no contexto: %d, limite %d", strings.Count(got, "--- FONTE"), maxContextPages)
	}
}

func TestRenderResearchContext_SnippetBound(t *testing.T) {
	bundle := &dm.ResearchBundle{}
	for i := 0; i < 20; i++ {
		bundle.SearchResults = append(bundle.SearchResults, dm.SearchResult{
			Title:   "resultado",
			Snippet: strings.Repeat("b", 400),
			Source:  "tavily",
		})
	}

	got := renderResearchContext(bundle)

	if n := strings.Count(got, "• "); n != maxContextSnippets {
		t.Errorf("snippets no contexto: %d, esperado %d", n, maxContextSnippets)
	}
	if strings.Contains(got, strings.Repeat("b", snippetExcerptLimit+1)) {
		t.Error("snippet não foi truncado")
	}
	// 标题行仍报告全部结果数
	if !strings.Contains(got, "RESULTADOS DE BUSCA (20 fontes)") {
		t.Error("cabeçalho não reflete o total de resultados")
	}
}

func TestBuildAnalysisPrompt_RequestFields(t *testing.T) {
	req := &dm.AnalysisRequest{
		Segmento:        "Moda Sustentável",
		Produto:         "Assinatura de roupas",
		Publico:         "Mulheres 25-40",
		Preco:           "197",
		ObjetivoReceita: "100000",
		Concorrentes:    "Marca A, Marca B",
	}

	prompt := buildAnalysisPrompt(req, "PESQUISA PROFUNDA REALIZADA:\ndados")

	for _, want := range []string{
		"Moda Sustentável",
		"Assinatura de roupas",
		"Mulheres 25-40",
		"R$ 197",
		"R$ 100000",
		"Marca A, Marca B",
		"PESQUISA PROFUNDA REALIZADA:",
		`"avatar_ultra_detalhado"`,
		`"insights_exclusivos_ultra"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt sem %q", want)
		}
	}

	// 未填写的字段用占位符
	if !strings.Contains(prompt, "Não informado") {
		t.Error("campos vazios deveriam virar 'Não informado'")
	}
}

func TestBuildAnalysisPrompt_NoResearch(t *testing.T) {
	prompt := buildAnalysisPrompt(&dm.AnalysisRequest{Segmento: "Moda"}, "")
	if !strings.Contains(prompt, "Nenhuma pesquisa realizada") {
		t.Error("contexto vazio deveria declarar ausência de pesquisa")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abcd" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Errorf("truncate não deveria alterar string curta: %q", got)
	}
}
