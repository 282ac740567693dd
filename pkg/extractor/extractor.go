package extractor

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

// 抓到的正文低于该长度视为无效（导航壳、反爬页等）
const minContentLength = 100

// Extractor 基于 readability 的网页正文抓取器
type Extractor struct {
	timeout time.Duration
}

// NewExtractor 创建抓取器，timeout 单位为秒
func NewExtractor(timeout int) *Extractor {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Extractor{timeout: t}
}

// ExtractContent 抓取 URL 并提取核心文本
func (e *Extractor) ExtractContent(url string) (string, error) {
	article, err := readability.FromURL(url, e.timeout)
	if err != nil {
		return "", fmt.Errorf("readability failed for %s: %w", url, err)
	}

	content := strings.TrimSpace(article.TextContent)
	if len(content) < minContentLength {
		return "", fmt.Errorf("conteúdo insuficiente em %s (%d bytes)", url, len(content))
	}
	return content, nil
}
