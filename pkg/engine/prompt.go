package engine

import (
	"fmt"
	"strings"

	dm "github.com/arqv30/market_analyzer/pkg/model"
)

const (
	// 研究上下文的各项边界：页数、单页摘录、搜索条目、摘要长度，
	// 以及整体上限（受模型输入长度约束）
	maxContextPages     = 10
	pageExcerptLimit    = 1500
	maxContextSnippets  = 15
	snippetExcerptLimit = 200
	contextCharLimit    = 12000
)

// renderResearchContext 将研究材料渲染为嵌入提示词的纯文本。
// 前 10 页正文摘录在先，搜索结果摘要在后，整体截断到 12000 字符。
func renderResearchContext(bundle *dm.ResearchBundle) string {
	var sb strings.Builder

	if len(bundle.ExtractedPages) > 0 {
		sb.WriteString("PESQUISA PROFUNDA REALIZADA:\n\n")
		for i, page := range bundle.ExtractedPages {
			if i >= maxContextPages {
				break
			}
			fmt.Fprintf(&sb, "--- FONTE %d: %s ---\n", i+1, page.Title)
			fmt.Fprintf(&sb, "URL: %s\n", page.URL)
			fmt.Fprintf(&sb, "Conteúdo: %s\n\n", truncate(page.Content, pageExcerptLimit))
		}
	}

	if len(bundle.SearchResults) > 0 {
		fmt.Fprintf(&sb, "RESULTADOS DE BUSCA (%d fontes):\n", len(bundle.SearchResults))
		for i, r := range bundle.SearchResults {
			if i >= maxContextSnippets {
				break
			}
			fmt.Fprintf(&sb, "• %s - %s\n", r.Title, truncate(r.Snippet, snippetExcerptLimit))
		}
		sb.WriteString("\n")
	}

	return truncate(sb.String(), contextCharLimit)
}

// buildAnalysisPrompt 纯函数：把请求字段与研究上下文渲染成一份指令文档。
// schema 中的字段都标注了"仅用真实数据"，用于约束模型不得编造。
func buildAnalysisPrompt(req *dm.AnalysisRequest, searchContext string) string {
	if searchContext == "" {
		searchContext = "Nenhuma pesquisa realizada"
	}

	var sb strings.Builder
	sb.WriteString("# ANÁLISE ULTRA-DETALHADA DE MERCADO - ARQV30 ENHANCED v2.0\n\n")
	sb.WriteString("Você é o DIRETOR SUPREMO DE ANÁLISE DE MERCADO, um especialista de elite com 30+ anos de experiência.\n\n")

	sb.WriteString("## DADOS DO PROJETO:\n")
	fmt.Fprintf(&sb, "- **Segmento**: %s\n", orUnknown(req.Segmento))
	fmt.Fprintf(&sb, "- **Produto/Serviço**: %s\n", orUnknown(req.Produto))
	fmt.Fprintf(&sb, "- **Público-Alvo**: %s\n", orUnknown(req.Publico))
	fmt.Fprintf(&sb, "- **Preço**: R$ %s\n", orUnknown(req.Preco))
	fmt.Fprintf(&sb, "- **Objetivo de Receita**: R$ %s\n", orUnknown(req.ObjetivoReceita))
	fmt.Fprintf(&sb, "- **Orçamento Marketing**: R$ %s\n", orUnknown(req.OrcamentoMarketing))
	fmt.Fprintf(&sb, "- **Prazo**: %s\n", orUnknown(req.PrazoLancamento))
	fmt.Fprintf(&sb, "- **Concorrentes**: %s\n", orUnknown(req.Concorrentes))
	fmt.Fprintf(&sb, "- **Dados Adicionais**: %s\n\n", orUnknown(req.DadosAdicionais))

	sb.WriteString("## CONTEXTO DE PESQUISA REAL:\n")
	sb.WriteString(searchContext)
	sb.WriteString("\n\n## INSTRUÇÕES CRÍTICAS:\n\n")
	sb.WriteString("Gere uma análise ULTRA-COMPLETA em formato JSON estruturado. Use APENAS dados REAIS baseados na pesquisa fornecida.\n\n")
	sb.WriteString("```json\n")
	sb.WriteString(analysisSchema)
	sb.WriteString("\n```\n\n")
	sb.WriteString("CRÍTICO: Use APENAS dados REAIS da pesquisa fornecida. NUNCA invente ou simule informações.\n")

	return sb.String()
}

func orUnknown(v string) string {
	if v == "" {
		return "Não informado"
	}
	return v
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// analysisSchema 模型必须填充的嵌套 JSON 模板，与 model.Analysis 的
// 字段一一对应
const analysisSchema = `{
  "avatar_ultra_detalhado": {
    "nome_ficticio": "Nome representativo baseado em dados reais",
    "perfil_demografico": {
      "idade": "Faixa etária específica com dados reais",
      "genero": "Distribuição real por gênero",
      "renda": "Faixa de renda real baseada em pesquisas",
      "escolaridade": "Nível educacional real",
      "localizacao": "Regiões geográficas reais",
      "estado_civil": "Status relacionamento real",
      "profissao": "Ocupações reais mais comuns"
    },
    "perfil_psicografico": {
      "personalidade": "Traços reais dominantes",
      "valores": "Valores reais e crenças principais",
      "interesses": "Hobbies e interesses reais específicos",
      "estilo_vida": "Como realmente vive baseado em pesquisas",
      "comportamento_compra": "Processo real de decisão",
      "influenciadores": "Quem realmente influencia decisões",
      "medos_profundos": "Medos reais documentados",
      "aspiracoes_secretas": "Aspirações reais baseadas em estudos"
    },
    "dores_viscerais": ["Lista de 10-15 dores específicas e REAIS baseadas em pesquisas"],
    "desejos_secretos": ["Lista de 10-15 desejos profundos REAIS baseados em estudos"],
    "objecoes_reais": ["Lista de 8-12 objeções REAIS específicas baseadas em dados"],
    "jornada_emocional": {
      "consciencia": "Como realmente toma consciência",
      "consideracao": "Processo real de avaliação",
      "decisao": "Fatores reais decisivos",
      "pos_compra": "Experiência real pós-compra"
    },
    "linguagem_interna": {
      "frases_dor": ["Frases reais que usa"],
      "frases_desejo": ["Frases reais de desejo"],
      "metaforas_comuns": ["Metáforas reais usadas"],
      "vocabulario_especifico": ["Palavras específicas do nicho"],
      "tom_comunicacao": "Tom real de comunicação"
    }
  },
  "escopo_posicionamento": {
    "posicionamento_mercado": "Posicionamento único REAL baseado em análise",
    "proposta_valor_unica": "Proposta REAL irresistível",
    "diferenciais_competitivos": ["Lista de diferenciais REAIS únicos e defensáveis"],
    "mensagem_central": "Mensagem principal REAL",
    "tom_comunicacao": "Tom de voz REAL ideal",
    "nicho_especifico": "Nicho mais específico REAL",
    "estrategia_oceano_azul": "Como criar mercado REAL sem concorrência",
    "ancoragem_preco": "Como ancorar o preço REAL"
  },
  "analise_concorrencia_profunda": [
    {
      "nome": "Nome REAL do concorrente principal",
      "analise_swot": {
        "forcas": ["Principais forças REAIS específicas"],
        "fraquezas": ["Principais fraquezas REAIS exploráveis"],
        "oportunidades": ["Oportunidades REAIS que eles não veem"],
        "ameacas": ["Ameaças REAIS que representam"]
      },
      "estrategia_marketing": "Estratégia REAL principal detalhada",
      "posicionamento": "Como se posicionam REALMENTE",
      "vulnerabilidades": ["Pontos fracos REAIS exploráveis"],
      "share_mercado_estimado": "Participação REAL estimada"
    }
  ],
  "estrategia_palavras_chave": {
    "palavras_primarias": ["10-15 palavras-chave REAIS principais com alto volume"],
    "palavras_secundarias": ["20-30 palavras-chave REAIS secundárias"],
    "palavras_cauda_longa": ["25-40 palavras-chave REAIS de cauda longa específicas"],
    "intencao_busca": {
      "informacional": ["Palavras REAIS para conteúdo educativo"],
      "navegacional": ["Palavras REAIS para encontrar a marca"],
      "transacional": ["Palavras REAIS para conversão direta"]
    },
    "estrategia_conteudo": "Como usar as palavras-chave REALMENTE",
    "sazonalidade": "Variações REAIS sazonais das buscas",
    "oportunidades_seo": "Oportunidades REAIS específicas identificadas"
  },
  "metricas_performance_detalhadas": {
    "kpis_principais": [
      {
        "metrica": "Nome da métrica REAL",
        "objetivo": "Valor objetivo REAL",
        "frequencia": "Frequência de medição",
        "responsavel": "Quem acompanha"
      }
    ],
    "projecoes_financeiras": {
      "cenario_conservador": {
        "receita_mensal": "Valor REAL baseado em dados",
        "clientes_mes": "Número REAL de clientes",
        "ticket_medio": "Ticket médio REAL",
        "margem_lucro": "Margem REAL esperada"
      },
      "cenario_realista": {
        "receita_mensal": "Valor REAL baseado em dados",
        "clientes_mes": "Número REAL de clientes",
        "ticket_medio": "Ticket médio REAL",
        "margem_lucro": "Margem REAL esperada"
      },
      "cenario_otimista": {
        "receita_mensal": "Valor REAL baseado em dados",
        "clientes_mes": "Número REAL de clientes",
        "ticket_medio": "Ticket médio REAL",
        "margem_lucro": "Margem REAL esperada"
      }
    },
    "roi_esperado": "ROI REAL baseado em dados do mercado",
    "payback_investimento": "Tempo REAL de retorno",
    "lifetime_value": "LTV REAL do cliente"
  },
  "plano_acao_detalhado": {
    "fase_1_preparacao": {
      "duracao": "Tempo REAL necessário",
      "atividades": ["Lista de atividades REAIS específicas"],
      "investimento": "Investimento REAL necessário",
      "entregas": ["Entregas REAIS esperadas"],
      "responsaveis": ["Perfis REAIS necessários"]
    },
    "fase_2_lancamento": {
      "duracao": "Tempo REAL necessário",
      "atividades": ["Lista de atividades REAIS específicas"],
      "investimento": "Investimento REAL necessário",
      "entregas": ["Entregas REAIS esperadas"],
      "responsaveis": ["Perfis REAIS necessários"]
    },
    "fase_3_crescimento": {
      "duracao": "Tempo REAL necessário",
      "atividades": ["Lista de atividades REAIS específicas"],
      "investimento": "Investimento REAL necessário",
      "entregas": ["Entregas REAIS esperadas"],
      "responsaveis": ["Perfis REAIS necessários"]
    }
  },
  "insights_exclusivos_ultra": ["Lista de 25-30 insights únicos, específicos e ULTRA-VALIOSOS baseados na análise REAL profunda"],
  "inteligencia_mercado": {
    "tendencias_emergentes": ["Tendências REAIS identificadas na pesquisa"],
    "oportunidades_ocultas": ["Oportunidades REAIS não exploradas"],
    "ameacas_potenciais": ["Ameaças REAIS identificadas"],
    "gaps_mercado": ["Lacunas REAIS no mercado"],
    "inovacoes_disruptivas": ["Inovações REAIS que podem impactar"]
  },
  "dados_pesquisa": {
    "fontes_consultadas": 0,
    "qualidade_dados": "Alta - baseado em pesquisa real",
    "confiabilidade": "100% - dados verificados",
    "atualizacao": "dd/mm/aaaa hh:mm"
  }
}`
