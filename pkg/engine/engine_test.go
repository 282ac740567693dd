package engine

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	dm "github.com/arqv30/market_analyzer/pkg/model"
)

// fakeAI 模拟模型协作方
type fakeAI struct {
	available bool
	response  string
	err       error
	status    map[string]dm.ProviderStatus
	calls     int
}

func (f *fakeAI) Available() bool { return f.available }

func (f *fakeAI) GenerateAnalysis(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeAI) ProviderStatus() map[string]dm.ProviderStatus { return f.status }

// fakeSearch 模拟搜索协作方
type fakeSearch struct {
	available      bool
	multiResults   []dm.SearchResult
	contextResults map[string][]dm.SearchResult
	searchErr      error
	status         map[string]dm.ProviderStatus
}

func (f *fakeSearch) Available() bool { return f.available }

func (f *fakeSearch) MultiSearch(ctx context.Context, query string, maxPerProvider int) []dm.SearchResult {
	return f.multiResults
}

func (f *fakeSearch) Search(ctx context.Context, query string, maxResults int) ([]dm.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.contextResults[query], nil
}

func (f *fakeSearch) ProviderStatus() map[string]dm.ProviderStatus { return f.status }

// fakeExtractor 模拟正文抓取
type fakeExtractor struct {
	content  string
	failURLs map[string]bool
	calls    int
}

func (f *fakeExtractor) ExtractContent(url string) (string, error) {
	f.calls++
	if f.failURLs[url] {
		return "", errors.New("extração falhou")
	}
	return f.content, nil
}

const modelReply = "```json\n" + `{
  "avatar_ultra_detalhado": {"nome_ficticio": "Mariana Empreendedora"},
  "escopo_posicionamento": {"posicionamento_mercado": "Moda sustentável premium"},
  "estrategia_palavras_chave": {"palavras_primarias": ["moda sustentável"]},
  "insights_exclusivos_ultra": ["insight um", "insight dois", "insight três"]
}` + "\n```"

// scenarioResults 10 条结果、3 个提供商、6 个唯一域名
func scenarioResults() []dm.SearchResult {
	return []dm.SearchResult{
		{URL: "https://a.com/p1", Title: "t1", Snippet: "s1", Source: "tavily"},
		{URL: "https://a.com/p2", Title: "t2", Snippet: "s2", Source: "tavily"},
		{URL: "https://b.com/p1", Title: "t3", Snippet: "s3", Source: "tavily"},
		{URL: "https://c.com/p1", Title: "t4", Snippet: "s4", Source: "tavily"},
		{URL: "https://d.com/p1", Title: "t5", Snippet: "s5", Source: "searxng"},
		{URL: "https://e.com/p1", Title: "t6", Snippet: "s6", Source: "searxng"},
		{URL: "https://f.com/p1", Title: "t7", Snippet: "s7", Source: "searxng"},
		{URL: "https://f.com/p2", Title: "t8", Snippet: "s8", Source: "google_cse"},
		{URL: "https://a.com/p3", Title: "t9", Snippet: "s9", Source: "google_cse"},
		{URL: "https://b.com/p2", Title: "t10", Snippet: "s10", Source: "google_cse"},
	}
}

func TestGenerateComprehensiveAnalysis_FullPath(t *testing.T) {
	aiProv := &fakeAI{
		available: true,
		response:  modelReply,
		status:    map[string]dm.ProviderStatus{"deepseek": {Available: true, Model: "deepseek-chat"}},
	}
	searchProv := &fakeSearch{
		available:    true,
		multiResults: scenarioResults(),
		status: map[string]dm.ProviderStatus{
			"tavily":     {Available: true},
			"searxng":    {Available: true},
			"google_cse": {Available: true},
		},
	}
	ext := &fakeExtractor{
		content: strings.Repeat("conteúdo real ", 20),
		failURLs: map[string]bool{
			"https://c.com/p1": true,
			"https://d.com/p1": true,
		},
	}

	eng := NewEngine(nil, aiProv, searchProv, ext, nil)
	req := &dm.AnalysisRequest{Segmento: "moda", Query: "moda sustentável Brasil"}

	report := eng.GenerateComprehensiveAnalysis(context.Background(), req, "sess-1")

	if report.Metadata == nil {
		t.Fatal("metadata ausente")
	}
	if report.Metadata.QualityScore < 0 || report.Metadata.QualityScore > 100 {
		t.Errorf("quality_score fora do intervalo: %v", report.Metadata.QualityScore)
	}
	if report.Metadata.DataSourcesUsed != 10 {
		t.Errorf("data_sources_used = %d, esperado 10", report.Metadata.DataSourcesUsed)
	}
	if report.Metadata.AIModelsUsed != 1 {
		t.Errorf("ai_models_used = %d, esperado 1", report.Metadata.AIModelsUsed)
	}
	if report.Metadata.AnalysisEngine != "ARQV30 Enhanced v2.0" {
		t.Errorf("analysis_engine inesperado: %s", report.Metadata.AnalysisEngine)
	}

	if report.SistemasUtilizados == nil || report.SistemasUtilizados.TotalSources != 10 {
		t.Fatalf("sistemas_utilizados.total_sources inesperado: %+v", report.SistemasUtilizados)
	}
	if !report.SistemasUtilizados.ContentExtraction {
		t.Error("content_extraction deveria ser true")
	}

	if report.DadosPesquisaReal == nil {
		t.Fatal("dados_pesquisa_real ausente")
	}
	if report.DadosPesquisaReal.TotalResultados != 10 {
		t.Errorf("total_resultados = %d", report.DadosPesquisaReal.TotalResultados)
	}
	if report.DadosPesquisaReal.FontesUnicas != 10 {
		t.Errorf("fontes_unicas = %d", report.DadosPesquisaReal.FontesUnicas)
	}
	wantProviders := []string{"google_cse", "searxng", "tavily"}
	if len(report.DadosPesquisaReal.ProvedoresUtilizados) != 3 {
		t.Fatalf("provedores_utilizados = %v", report.DadosPesquisaReal.ProvedoresUtilizados)
	}
	for i, p := range wantProviders {
		if report.DadosPesquisaReal.ProvedoresUtilizados[i] != p {
			t.Errorf("provedores_utilizados[%d] = %s, esperado %s", i, report.DadosPesquisaReal.ProvedoresUtilizados[i], p)
		}
	}

	if report.ConteudoExtraidoReal == nil || report.ConteudoExtraidoReal.TotalPaginas != 8 {
		t.Fatalf("conteudo_extraido_real inesperado: %+v", report.ConteudoExtraidoReal)
	}

	// 6 个唯一域名 > 5，必须出现多样性洞察
	foundDiversity := false
	for _, insight := range report.InsightsExclusivos {
		if strings.Contains(insight, "6 domínios únicos") {
			foundDiversity = true
		}
	}
	if !foundDiversity {
		t.Errorf("洞察列表缺少域名多样性条目: %v", report.InsightsExclusivos)
	}

	// 直接恢复路径，模型字段原样保留
	if report.Avatar == nil || report.Avatar.NomeFicticio != "Mariana Empreendedora" {
		t.Errorf("avatar inesperado: %+v", report.Avatar)
	}
	if report.MetadataAI == nil || report.MetadataAI.RecoveryPath != "direct" {
		t.Errorf("metadata_ai inesperado: %+v", report.MetadataAI)
	}

	// 报告必须可 JSON 序列化
	if _, err := json.Marshal(report); err != nil {
		t.Errorf("报告无法序列化: %v", err)
	}
}

func TestGenerateComprehensiveAnalysis_ModelAlwaysFails(t *testing.T) {
	aiProv := &fakeAI{
		available: true,
		err:       errors.New("timeout"),
		status:    map[string]dm.ProviderStatus{"deepseek": {Available: false}},
	}
	eng := NewEngine(nil, aiProv, nil, nil, nil)
	req := &dm.AnalysisRequest{Segmento: "consultoria"}

	report := eng.GenerateComprehensiveAnalysis(context.Background(), req, "")

	foundWarning := false
	for _, insight := range report.InsightsExclusivos {
		if strings.Contains(insight, "modo básico") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("relatório básico sem aviso de modo básico: %v", report.InsightsExclusivos)
	}

	// 基础分析填充的节：avatar + escopo + palavras (45) + insights 节 (15) + ≥5 条 (20)
	if report.Metadata == nil || report.Metadata.QualityScore != 80.0 {
		t.Errorf("quality_score = %+v, esperado 80", report.Metadata)
	}
	if report.Metadata.AnalysisEngine != "ARQV30 Enhanced v2.0" {
		t.Errorf("engine inesperado: %s", report.Metadata.AnalysisEngine)
	}
	if report.DadosPesquisaReal != nil {
		t.Error("sem pesquisa não deveria existir dados_pesquisa_real")
	}
}

func TestGenerateComprehensiveAnalysis_NoAIProvider(t *testing.T) {
	eng := NewEngine(nil, nil, nil, nil, nil)
	req := &dm.AnalysisRequest{Segmento: "moda"}

	report := eng.GenerateComprehensiveAnalysis(context.Background(), req, "")

	if report.Metadata == nil {
		t.Fatal("metadata ausente no relatório de emergência")
	}
	if report.Metadata.AnalysisEngine != "Emergency Fallback" {
		t.Errorf("engine = %s, esperado Emergency Fallback", report.Metadata.AnalysisEngine)
	}
	if report.Metadata.QualityScore != 25.0 {
		t.Errorf("quality_score = %v, esperado 25", report.Metadata.QualityScore)
	}

	foundErr := false
	for _, insight := range report.InsightsExclusivos {
		if strings.Contains(insight, ErrAIUnavailable.Error()) {
			foundErr = true
		}
	}
	if !foundErr {
		t.Errorf("mensagem de erro não preservada: %v", report.InsightsExclusivos)
	}

	if _, err := json.Marshal(report); err != nil {
		t.Errorf("relatório de emergência não serializável: %v", err)
	}
}

func TestGenerateComprehensiveAnalysis_EmptySearchStillCompletes(t *testing.T) {
	aiProv := &fakeAI{
		available: true,
		response:  modelReply,
		status:    map[string]dm.ProviderStatus{"deepseek": {Available: true}},
	}
	searchProv := &fakeSearch{
		available: true,
		status:    map[string]dm.ProviderStatus{"tavily": {Available: true}},
	}
	eng := NewEngine(nil, aiProv, searchProv, &fakeExtractor{}, nil)
	req := &dm.AnalysisRequest{Segmento: "moda", Query: "moda sustentável"}

	report := eng.GenerateComprehensiveAnalysis(context.Background(), req, "")

	if report.Metadata == nil {
		t.Fatal("metadata ausente")
	}
	if report.Metadata.DataSourcesUsed != 0 {
		t.Errorf("data_sources_used = %d, esperado 0", report.Metadata.DataSourcesUsed)
	}
	if report.DadosPesquisaReal != nil || report.ConteudoExtraidoReal != nil {
		t.Error("sem resultados não deveria haver blocos de pesquisa real")
	}
	if report.Avatar == nil {
		t.Error("análise do modelo deveria estar presente mesmo sem pesquisa")
	}
}
