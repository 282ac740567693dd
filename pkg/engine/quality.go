package engine

import dm "github.com/arqv30/market_analyzer/pkg/model"

// calculateQualityScore 按报告形态计算 0-100 的完整度评分。
// 缺失的节直接记零分，因此对任意输入都不会失败。
//
// 权重：四个主节各 15 分；两个深度研究节各 10 分（当前没有任何
// 路径会填充它们）；洞察数量阶梯最高 20 分。
func calculateQualityScore(analysis *dm.Analysis) float64 {
	var score float64

	if analysis.Avatar != nil {
		score += 15.0
	}
	if analysis.Escopo != nil {
		score += 15.0
	}
	if analysis.PalavrasChave != nil {
		score += 15.0
	}
	if len(analysis.InsightsExclusivos) > 0 {
		score += 15.0
	}

	if len(analysis.PesquisaWebDetalhada) > 0 {
		score += 10.0
	}
	if len(analysis.PesquisaProfunda) > 0 {
		score += 10.0
	}

	switch insights := len(analysis.InsightsExclusivos); {
	case insights >= 5:
		score += 20.0
	case insights >= 3:
		score += 15.0
	case insights >= 1:
		score += 10.0
	}

	// 权重之和不会超过 100，这里仍做防御性钳制
	if score > 100.0 {
		score = 100.0
	}
	return score
}
