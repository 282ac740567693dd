package engine

import (
	"testing"

	dm "github.com/arqv30/market_analyzer/pkg/model"
)

func TestCalculateQualityScore_Empty(t *testing.T) {
	if got := calculateQualityScore(&dm.Analysis{}); got != 0 {
		t.Errorf("score vazio = %v, esperado 0", got)
	}
}

func TestCalculateQualityScore_Sections(t *testing.T) {
	analysis := &dm.Analysis{Avatar: &dm.Avatar{}}
	if got := calculateQualityScore(analysis); got != 15 {
		t.Errorf("avatar apenas = %v, esperado 15", got)
	}

	analysis.Escopo = &dm.Positioning{}
	if got := calculateQualityScore(analysis); got != 30 {
		t.Errorf("avatar+escopo = %v, esperado 30", got)
	}

	analysis.PalavrasChave = &dm.KeywordStrategy{}
	if got := calculateQualityScore(analysis); got != 45 {
		t.Errorf("três seções = %v, esperado 45", got)
	}
}

func TestCalculateQualityScore_InsightTiers(t *testing.T) {
	cases := []struct {
		insights int
		want     float64
	}{
		{0, 0},
		{1, 25},  // seção 15 + faixa 10
		{3, 30},  // seção 15 + faixa 15
		{5, 35},  // seção 15 + faixa 20
		{10, 35}, // faixa máxima
	}

	for _, c := range cases {
		analysis := &dm.Analysis{}
		for i := 0; i < c.insights; i++ {
			analysis.InsightsExclusivos = append(analysis.InsightsExclusivos, "insight")
		}
		if got := calculateQualityScore(analysis); got != c.want {
			t.Errorf("%d insights = %v, esperado %v", c.insights, got, c.want)
		}
	}
}

// 加入之前缺失的节只会增加分数，从不降低
func TestCalculateQualityScore_Monotonic(t *testing.T) {
	base := &dm.Analysis{
		Avatar:             &dm.Avatar{},
		InsightsExclusivos: []string{"a", "b", "c"},
	}
	before := calculateQualityScore(base)

	base.Escopo = &dm.Positioning{}
	after := calculateQualityScore(base)
	if after < before {
		t.Errorf("score caiu ao adicionar seção: %v -> %v", before, after)
	}

	base.PesquisaWebDetalhada = map[string]any{"fontes": 3}
	base.PesquisaProfunda = map[string]any{"paginas": 5}
	withResearch := calculateQualityScore(base)
	if withResearch != after+20 {
		t.Errorf("seções de pesquisa = %v, esperado %v", withResearch, after+20)
	}
}

func TestCalculateQualityScore_Clamped(t *testing.T) {
	full := &dm.Analysis{
		Avatar:               &dm.Avatar{},
		Escopo:               &dm.Positioning{},
		PalavrasChave:        &dm.KeywordStrategy{},
		InsightsExclusivos:   []string{"1", "2", "3", "4", "5", "6"},
		PesquisaWebDetalhada: map[string]any{"x": 1},
		PesquisaProfunda:     map[string]any{"y": 2},
	}
	got := calculateQualityScore(full)
	if got != 100 {
		t.Errorf("score máximo = %v, esperado 100", got)
	}
}
