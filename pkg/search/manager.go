package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/arqv30/market_analyzer/pkg/logger"
	"github.com/arqv30/market_analyzer/pkg/model"
)

const snippetLimit = 300

// Manager 聚合多个搜索提供商，对外提供多源搜索与可用性快照。
// 单个提供商失败只影响它自己的结果，不会中断整批查询。
type Manager struct {
	providers []Provider

	mu     sync.RWMutex
	failed map[string]bool
}

// NewManager 创建搜索管理器，providers 的顺序即查询顺序
func NewManager(providers ...Provider) *Manager {
	return &Manager{
		providers: providers,
		failed:    make(map[string]bool),
	}
}

// Available 是否配置了至少一个提供商
func (m *Manager) Available() bool {
	return m != nil && len(m.providers) > 0
}

// MultiSearch 在所有提供商上执行同一查询，按提供商顺序拼接结果。
// 失败的提供商被记录并跳过，因此返回值可能为空但调用永不失败。
func (m *Manager) MultiSearch(ctx context.Context, query string, maxPerProvider int) []model.SearchResult {
	var results []model.SearchResult
	for _, p := range m.providers {
		resp, err := p.Search(ctx, &Request{Query: query, Topic: "general", MaxResults: maxPerProvider})
		if err != nil {
			logger.Log.Errorf("搜索提供商 [%s] 查询失败: %v", p.Name(), err)
			m.markFailed(p.Name(), true)
			continue
		}
		m.markFailed(p.Name(), false)
		results = append(results, convert(resp, p.Name(), maxPerProvider)...)
	}
	return results
}

// Search 使用第一个可用的提供商执行查询，失败时依次故障转移
func (m *Manager) Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	if len(m.providers) == 0 {
		return nil, fmt.Errorf("nenhum provedor de busca configurado")
	}

	var lastErr error
	for _, p := range m.providers {
		resp, err := p.Search(ctx, &Request{Query: query, Topic: "general", MaxResults: maxResults})
		if err != nil {
			logger.Log.Warnf("搜索提供商 [%s] 查询失败，尝试下一个: %v", p.Name(), err)
			m.markFailed(p.Name(), true)
			lastErr = err
			continue
		}
		m.markFailed(p.Name(), false)
		return convert(resp, p.Name(), maxResults), nil
	}
	return nil, lastErr
}

// ProviderStatus 返回各提供商的可用性快照
func (m *Manager) ProviderStatus() map[string]model.ProviderStatus {
	status := make(map[string]model.ProviderStatus, len(m.providers))
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.providers {
		status[p.Name()] = model.ProviderStatus{Available: !m.failed[p.Name()]}
	}
	return status
}

func (m *Manager) markFailed(name string, failed bool) {
	m.mu.Lock()
	m.failed[name] = failed
	m.mu.Unlock()
}

func convert(resp *Response, provider string, max int) []model.SearchResult {
	if resp == nil {
		return nil
	}
	items := resp.Results
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	out := make([]model.SearchResult, 0, len(items))
	for _, r := range items {
		snippet := r.Content
		if len(snippet) > snippetLimit {
			snippet = snippet[:snippetLimit]
		}
		out = append(out, model.SearchResult{
			URL:     r.URL,
			Title:   r.Title,
			Snippet: snippet,
			Source:  provider,
		})
	}
	return out
}
