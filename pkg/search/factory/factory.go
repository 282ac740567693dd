package factory

import (
	"fmt"

	"github.com/arqv30/market_analyzer/pkg/config"
	"github.com/arqv30/market_analyzer/pkg/search"
	"github.com/arqv30/market_analyzer/pkg/searxng"
	"github.com/arqv30/market_analyzer/pkg/tavily"
)

// NewManager 根据配置创建搜索管理器。
// 未显式列出提供商时，按已填写的凭据自动推断。
func NewManager(cfg *config.Config) (*search.Manager, error) {
	names := cfg.Search.Providers
	if len(names) == 0 {
		if cfg.Search.Tavily.APIKey != "" {
			names = append(names, "tavily")
		}
		if cfg.Search.SearXNG.BaseURL != "" {
			names = append(names, "searxng")
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("search provider not configured")
	}

	var providers []search.Provider
	for _, name := range names {
		switch name {
		case "tavily":
			if cfg.Search.Tavily.APIKey == "" {
				return nil, fmt.Errorf("tavily api key is missing")
			}
			providers = append(providers, tavily.NewClient(cfg.Search.Tavily.APIKey))

		case "searxng":
			if cfg.Search.SearXNG.BaseURL == "" {
				return nil, fmt.Errorf("searxng base url is missing")
			}
			providers = append(providers, searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout))

		default:
			return nil, fmt.Errorf("unknown search provider: %s", name)
		}
	}

	return search.NewManager(providers...), nil
}
