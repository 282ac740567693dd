package model

// AnalysisRequest 一次分析的业务简报，由调用方提供，进入流水线后不再修改
type AnalysisRequest struct {
	Segmento           string `json:"segmento" yaml:"segmento"`
	Produto            string `json:"produto" yaml:"produto"`
	Publico            string `json:"publico" yaml:"publico"`
	Preco              string `json:"preco" yaml:"preco"`
	ObjetivoReceita    string `json:"objetivo_receita" yaml:"objetivo_receita"`
	OrcamentoMarketing string `json:"orcamento_marketing" yaml:"orcamento_marketing"`
	PrazoLancamento    string `json:"prazo_lancamento" yaml:"prazo_lancamento"`
	Concorrentes       string `json:"concorrentes" yaml:"concorrentes"`
	DadosAdicionais    string `json:"dados_adicionais" yaml:"dados_adicionais"`
	Query              string `json:"query" yaml:"query"`
}

// SearchResult 单条搜索命中，Source 记录产出该结果的搜索提供商
type SearchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// ExtractedPage 从某条搜索结果 URL 抓取到的正文
type ExtractedPage struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Source       string `json:"source"`
	ContextQuery string `json:"context_query,omitempty"`
}

// SourceRef 来源描述符，由搜索结果派生（抓取失败的 URL 也会保留）
type SourceRef struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// ResearchBundle 一次请求收集到的全部研究材料，构建完成后只读
type ResearchBundle struct {
	SearchResults      []SearchResult  `json:"search_results"`
	ExtractedPages     []ExtractedPage `json:"extracted_content"`
	Sources            []SourceRef     `json:"sources"`
	TotalContentLength int             `json:"total_content_length"`
}

// ProviderStatus 协作方上报的可用性快照，核心只读不写
type ProviderStatus struct {
	Available bool   `json:"available"`
	Model     string `json:"model,omitempty"`
}

// DemographicProfile 人口画像
type DemographicProfile struct {
	Idade        string `json:"idade,omitempty"`
	Genero       string `json:"genero,omitempty"`
	Renda        string `json:"renda,omitempty"`
	Escolaridade string `json:"escolaridade,omitempty"`
	Localizacao  string `json:"localizacao,omitempty"`
	EstadoCivil  string `json:"estado_civil,omitempty"`
	Profissao    string `json:"profissao,omitempty"`
}

// PsychographicProfile 心理画像
type PsychographicProfile struct {
	Personalidade       string `json:"personalidade,omitempty"`
	Valores             string `json:"valores,omitempty"`
	Interesses          string `json:"interesses,omitempty"`
	EstiloVida          string `json:"estilo_vida,omitempty"`
	ComportamentoCompra string `json:"comportamento_compra,omitempty"`
	Influenciadores     string `json:"influenciadores,omitempty"`
	MedosProfundos      string `json:"medos_profundos,omitempty"`
	AspiracoesSecretas  string `json:"aspiracoes_secretas,omitempty"`
}

// EmotionalJourney 购买决策的情绪旅程
type EmotionalJourney struct {
	Consciencia  string `json:"consciencia,omitempty"`
	Consideracao string `json:"consideracao,omitempty"`
	Decisao      string `json:"decisao,omitempty"`
	PosCompra    string `json:"pos_compra,omitempty"`
}

// InternalLanguage 目标人群的语言画像
type InternalLanguage struct {
	FrasesDor             []string `json:"frases_dor,omitempty"`
	FrasesDesejo          []string `json:"frases_desejo,omitempty"`
	MetaforasComuns       []string `json:"metaforas_comuns,omitempty"`
	VocabularioEspecifico []string `json:"vocabulario_especifico,omitempty"`
	TomComunicacao        string   `json:"tom_comunicacao,omitempty"`
}

// Avatar 超详细用户画像（报告第一大节）
type Avatar struct {
	NomeFicticio       string                `json:"nome_ficticio,omitempty"`
	PerfilDemografico  *DemographicProfile   `json:"perfil_demografico,omitempty"`
	PerfilPsicografico *PsychographicProfile `json:"perfil_psicografico,omitempty"`
	DoresViscerais     []string              `json:"dores_viscerais,omitempty"`
	DesejosSecretos    []string              `json:"desejos_secretos,omitempty"`
	ObjecoesReais      []string              `json:"objecoes_reais,omitempty"`
	JornadaEmocional   *EmotionalJourney     `json:"jornada_emocional,omitempty"`
	LinguagemInterna   *InternalLanguage     `json:"linguagem_interna,omitempty"`
}

// Positioning 市场定位
type Positioning struct {
	PosicionamentoMercado    string   `json:"posicionamento_mercado,omitempty"`
	PropostaValorUnica       string   `json:"proposta_valor_unica,omitempty"`
	DiferenciaisCompetitivos []string `json:"diferenciais_competitivos,omitempty"`
	MensagemCentral          string   `json:"mensagem_central,omitempty"`
	TomComunicacao           string   `json:"tom_comunicacao,omitempty"`
	NichoEspecifico          string   `json:"nicho_especifico,omitempty"`
	EstrategiaOceanoAzul     string   `json:"estrategia_oceano_azul,omitempty"`
	AncoragemPreco           string   `json:"ancoragem_preco,omitempty"`
}

// SWOT 竞争对手 SWOT 分析
type SWOT struct {
	Forcas        []string `json:"forcas,omitempty"`
	Fraquezas     []string `json:"fraquezas,omitempty"`
	Oportunidades []string `json:"oportunidades,omitempty"`
	Ameacas       []string `json:"ameacas,omitempty"`
}

// Competitor 单个竞争对手的深度分析
type Competitor struct {
	Nome                 string   `json:"nome,omitempty"`
	AnaliseSwot          *SWOT    `json:"analise_swot,omitempty"`
	EstrategiaMarketing  string   `json:"estrategia_marketing,omitempty"`
	Posicionamento       string   `json:"posicionamento,omitempty"`
	Vulnerabilidades     []string `json:"vulnerabilidades,omitempty"`
	ShareMercadoEstimado string   `json:"share_mercado_estimado,omitempty"`
}

// SearchIntent 关键词的搜索意图分类
type SearchIntent struct {
	Informacional []string `json:"informacional,omitempty"`
	Navegacional  []string `json:"navegacional,omitempty"`
	Transacional  []string `json:"transacional,omitempty"`
}

// KeywordStrategy 关键词策略
type KeywordStrategy struct {
	PalavrasPrimarias   []string      `json:"palavras_primarias,omitempty"`
	PalavrasSecundarias []string      `json:"palavras_secundarias,omitempty"`
	PalavrasCaudaLonga  []string      `json:"palavras_cauda_longa,omitempty"`
	IntencaoBusca       *SearchIntent `json:"intencao_busca,omitempty"`
	EstrategiaConteudo  string        `json:"estrategia_conteudo,omitempty"`
	Sazonalidade        string        `json:"sazonalidade,omitempty"`
	OportunidadesSeo    string        `json:"oportunidades_seo,omitempty"`
}

// KPI 单项关键指标
type KPI struct {
	Metrica     string `json:"metrica,omitempty"`
	Objetivo    string `json:"objetivo,omitempty"`
	Frequencia  string `json:"frequencia,omitempty"`
	Responsavel string `json:"responsavel,omitempty"`
}

// Scenario 财务预测的单个情景
type Scenario struct {
	ReceitaMensal string `json:"receita_mensal,omitempty"`
	ClientesMes   string `json:"clientes_mes,omitempty"`
	TicketMedio   string `json:"ticket_medio,omitempty"`
	MargemLucro   string `json:"margem_lucro,omitempty"`
}

// FinancialProjections 保守/现实/乐观三档财务预测
type FinancialProjections struct {
	CenarioConservador *Scenario `json:"cenario_conservador,omitempty"`
	CenarioRealista    *Scenario `json:"cenario_realista,omitempty"`
	CenarioOtimista    *Scenario `json:"cenario_otimista,omitempty"`
}

// PerformanceMetrics 绩效指标大节
type PerformanceMetrics struct {
	KpisPrincipais       []KPI                 `json:"kpis_principais,omitempty"`
	ProjecoesFinanceiras *FinancialProjections `json:"projecoes_financeiras,omitempty"`
	RoiEsperado          string                `json:"roi_esperado,omitempty"`
	PaybackInvestimento  string                `json:"payback_investimento,omitempty"`
	LifetimeValue        string                `json:"lifetime_value,omitempty"`
}

// ActionPhase 行动计划中的一个阶段
type ActionPhase struct {
	Duracao      string   `json:"duracao,omitempty"`
	Atividades   []string `json:"atividades,omitempty"`
	Investimento string   `json:"investimento,omitempty"`
	Entregas     []string `json:"entregas,omitempty"`
	Responsaveis []string `json:"responsaveis,omitempty"`
}

// ActionPlan 三阶段行动计划
type ActionPlan struct {
	Fase1Preparacao  *ActionPhase `json:"fase_1_preparacao,omitempty"`
	Fase2Lancamento  *ActionPhase `json:"fase_2_lancamento,omitempty"`
	Fase3Crescimento *ActionPhase `json:"fase_3_crescimento,omitempty"`
}

// MarketIntelligence 市场情报
type MarketIntelligence struct {
	TendenciasEmergentes []string `json:"tendencias_emergentes,omitempty"`
	OportunidadesOcultas []string `json:"oportunidades_ocultas,omitempty"`
	AmeacasPotenciais    []string `json:"ameacas_potenciais,omitempty"`
	GapsMercado          []string `json:"gaps_mercado,omitempty"`
	InovacoesDisruptivas []string `json:"inovacoes_disruptivas,omitempty"`
}

// ResearchMeta 模型自述的研究质量元数据（来自提示词 schema）
type ResearchMeta struct {
	FontesConsultadas int    `json:"fontes_consultadas,omitempty"`
	QualidadeDados    string `json:"qualidade_dados,omitempty"`
	Confiabilidade    string `json:"confiabilidade,omitempty"`
	Atualizacao       string `json:"atualizacao,omitempty"`
}

// RealSearchData 真实搜索数据统计，仅在存在搜索结果时填充
type RealSearchData struct {
	TotalResultados      int            `json:"total_resultados"`
	FontesUnicas         int            `json:"fontes_unicas"`
	ProvedoresUtilizados []string       `json:"provedores_utilizados"`
	ResultadosDetalhados []SearchResult `json:"resultados_detalhados"`
}

// PageSummary 单页抓取摘要
type PageSummary struct {
	URL             string `json:"url"`
	Titulo          string `json:"titulo"`
	TamanhoConteudo int    `json:"tamanho_conteudo"`
	Fonte           string `json:"fonte"`
}

// RealExtractedData 真实抓取内容统计，仅在发生过抓取时填充
type RealExtractedData struct {
	TotalPaginas       int           `json:"total_paginas"`
	TotalCaracteres    int           `json:"total_caracteres"`
	PaginasProcessadas []PageSummary `json:"paginas_processadas"`
}

// SystemsUsed 本次分析实际用到的子系统快照
type SystemsUsed struct {
	AIProviders       map[string]ProviderStatus `json:"ai_providers"`
	SearchProviders   map[string]ProviderStatus `json:"search_providers"`
	ContentExtraction bool                      `json:"content_extraction"`
	TotalSources      int                       `json:"total_sources"`
	AnalysisQuality   string                    `json:"analysis_quality"`
}

// AIMetadata 响应恢复阶段附加的溯源信息
type AIMetadata struct {
	GeneratedAt  string `json:"generated_at"`
	RecoveryPath string `json:"recovery_path"`
	Version      string `json:"version"`
}

// AvailableSystems 应急报告里记录的协作方可用性快照
type AvailableSystems struct {
	AIProviders     map[string]ProviderStatus `json:"ai_providers,omitempty"`
	SearchProviders map[string]ProviderStatus `json:"search_providers,omitempty"`
}

// ReportMetadata 流水线顶层附加的报告元数据
type ReportMetadata struct {
	ProcessingTimeSeconds   float64           `json:"processing_time_seconds"`
	ProcessingTimeFormatted string            `json:"processing_time_formatted,omitempty"`
	AnalysisEngine          string            `json:"analysis_engine"`
	GeneratedAt             string            `json:"generated_at"`
	QualityScore            float64           `json:"quality_score"`
	DataSourcesUsed         int               `json:"data_sources_used"`
	AIModelsUsed            int               `json:"ai_models_used"`
	Recommendation          string            `json:"recommendation,omitempty"`
	AvailableSystems        *AvailableSystems `json:"available_systems,omitempty"`
}

// Analysis 最终报告。各节均为可选：完整路径、恢复路径与降级路径
// 只保证填充各自的子集，空节在序列化时省略。
type Analysis struct {
	Avatar              *Avatar             `json:"avatar_ultra_detalhado,omitempty"`
	Escopo              *Positioning        `json:"escopo_posicionamento,omitempty"`
	AnaliseConcorrencia []Competitor        `json:"analise_concorrencia_profunda,omitempty"`
	PalavrasChave       *KeywordStrategy    `json:"estrategia_palavras_chave,omitempty"`
	Metricas            *PerformanceMetrics `json:"metricas_performance_detalhadas,omitempty"`
	PlanoAcao           *ActionPlan         `json:"plano_acao_detalhado,omitempty"`
	InsightsExclusivos  []string            `json:"insights_exclusivos,omitempty"`
	InsightsUltra       []string            `json:"insights_exclusivos_ultra,omitempty"`
	InteligenciaMercado *MarketIntelligence `json:"inteligencia_mercado,omitempty"`
	DadosPesquisa       *ResearchMeta       `json:"dados_pesquisa,omitempty"`

	// 以下两节在当前所有路径中都不会被填充，评分器按零分处理；
	// 保留字段是为了兼容未来提供深度研究数据的协作方。
	PesquisaWebDetalhada map[string]any `json:"pesquisa_web_detalhada,omitempty"`
	PesquisaProfunda     map[string]any `json:"pesquisa_profunda,omitempty"`

	DadosPesquisaReal    *RealSearchData    `json:"dados_pesquisa_real,omitempty"`
	ConteudoExtraidoReal *RealExtractedData `json:"conteudo_extraido_real,omitempty"`
	SistemasUtilizados   *SystemsUsed       `json:"sistemas_utilizados,omitempty"`

	RawAIResponse string          `json:"raw_ai_response,omitempty"`
	MetadataAI    *AIMetadata     `json:"metadata_ai,omitempty"`
	Metadata      *ReportMetadata `json:"metadata,omitempty"`
}
