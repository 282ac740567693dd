package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/arqv30/market_analyzer/pkg/config"
	"github.com/arqv30/market_analyzer/pkg/logger"
	dm "github.com/arqv30/market_analyzer/pkg/model"
)

const systemPrompt = "Você é um gerador de JSON. Responda apenas com a string JSON solicitada."

type provider struct {
	name      string
	modelName string
	chatModel model.ChatModel

	mu        sync.Mutex
	available bool
}

// Manager 模型协作方。按 providers 顺序调用，失败自动转移到下一个，
// 全部失败才向调用方报错。
type Manager struct {
	providers []*provider
	limiter   *rate.Limiter
}

// NewManager 按配置初始化模型提供商链。初始化失败的提供商被跳过，
// 一个都初始化不了时返回错误。
func NewManager(ctx context.Context, cfg config.AIConfig, conc config.ConcurrencyConfig) (*Manager, error) {
	var providers []*provider
	for _, pc := range cfg.Providers {
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: pc.BaseURL,
			APIKey:  pc.APIKey,
			Model:   pc.Model,
		})
		if err != nil {
			logger.Log.Errorf("模型提供商 [%s] 初始化失败: %v", pc.Name, err)
			continue
		}
		providers = append(providers, &provider{
			name:      pc.Name,
			modelName: pc.Model,
			chatModel: cm,
			available: true,
		})
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("nenhum provedor de IA pôde ser inicializado")
	}

	limit := rate.Limit(float64(conc.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, conc.QPS)

	return &Manager{providers: providers, limiter: limiter}, nil
}

// Available 是否配置了至少一个可调用的提供商
func (m *Manager) Available() bool {
	return m != nil && len(m.providers) > 0
}

// GenerateAnalysis 调用模型生成分析文本。按提供商顺序尝试，
// 对 429 做指数退避重试，空响应按失败处理。
func (m *Manager) GenerateAnalysis(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if len(m.providers) == 0 {
		return "", fmt.Errorf("nenhum provedor de IA configurado")
	}

	var lastErr error
	for _, p := range m.providers {
		content, err := m.generateWith(ctx, p, prompt, maxTokens)
		if err != nil {
			logger.Log.Errorf("提供商 [%s] 生成失败，切换下一个: %v", p.name, err)
			p.setAvailable(false)
			lastErr = err
			continue
		}
		p.setAvailable(true)
		return content, nil
	}
	return "", fmt.Errorf("todos os provedores de IA falharam: %w", lastErr)
}

// ProviderStatus 返回各提供商的可用性快照
func (m *Manager) ProviderStatus() map[string]dm.ProviderStatus {
	status := make(map[string]dm.ProviderStatus, len(m.providers))
	for _, p := range m.providers {
		p.mu.Lock()
		status[p.name] = dm.ProviderStatus{Available: p.available, Model: p.modelName}
		p.mu.Unlock()
	}
	return status
}

func (p *provider) setAvailable(v bool) {
	p.mu.Lock()
	p.available = v
	p.mu.Unlock()
}

func (m *Manager) generateWith(ctx context.Context, p *provider, prompt string, maxTokens int) (string, error) {
	maxRetries := 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := m.limiter.Wait(ctx); err != nil {
			return "", err
		}

		messages := []*schema.Message{
			{Role: schema.System, Content: systemPrompt},
			{Role: schema.User, Content: prompt},
		}

		resp, err := p.chatModel.Generate(ctx, messages, model.WithMaxTokens(maxTokens))
		if err != nil {
			if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "too many requests") {
				lastErr = err
				if i < maxRetries {
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return "", err
		}

		content := strings.TrimSpace(resp.Content)
		if content == "" {
			return "", fmt.Errorf("provedor [%s] retornou resposta vazia", p.name)
		}
		return content, nil
	}
	return "", lastErr
}
