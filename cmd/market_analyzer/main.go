package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2"
	"gopkg.in/yaml.v3"

	"github.com/arqv30/market_analyzer/pkg/ai"
	"github.com/arqv30/market_analyzer/pkg/config"
	"github.com/arqv30/market_analyzer/pkg/engine"
	"github.com/arqv30/market_analyzer/pkg/extractor"
	"github.com/arqv30/market_analyzer/pkg/logger"
	"github.com/arqv30/market_analyzer/pkg/model"
	"github.com/arqv30/market_analyzer/pkg/search/factory"
	"github.com/arqv30/market_analyzer/pkg/server"
	"github.com/arqv30/market_analyzer/pkg/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	requestPath := flag.String("request", "", "单次分析请求文件 (yaml)，指定后不启动 HTTP 服务")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动市场分析引擎...")

	ctx := context.Background()

	// 3. 初始化数据库连接（可选）
	var store *storage.Storage
	if cfg.DB.Host != "" {
		s, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 报告将不落库。", err)
		} else {
			store = s
			defer store.Close()
			logger.Log.Info("已成功连接到数据库")
		}
	} else {
		logger.Log.Info("未配置数据库信息，跳过数据库连接")
	}

	// 4. 初始化模型协作方（可选，缺失时引擎走应急路径）
	var aiProvider engine.AIProvider
	if len(cfg.AI.Providers) > 0 {
		mgr, err := ai.NewManager(ctx, cfg.AI, cfg.Concurrency)
		if err != nil {
			logger.Log.Errorf("模型协作方初始化失败: %v", err)
		} else {
			aiProvider = mgr
			logger.Log.Infof("模型协作方已就绪: %d 个提供商", len(cfg.AI.Providers))
		}
	}

	// 5. 初始化搜索协作方（可选）
	var searchProvider engine.SearchProvider
	if mgr, err := factory.NewManager(cfg); err != nil {
		logger.Log.Warnf("搜索协作方不可用: %v", err)
	} else {
		searchProvider = mgr
	}

	// 6. 组装引擎
	var reportStore engine.ReportStore
	if store != nil {
		reportStore = store
	}
	eng := engine.NewEngine(cfg, aiProvider, searchProvider,
		extractor.NewExtractor(cfg.Engine.ExtractTimeout), reportStore)

	if *requestPath != "" {
		runOnce(ctx, eng, *requestPath)
		return
	}

	// 7. 启动 HTTP 服务
	var runReader server.RunReader
	if store != nil {
		runReader = store
	}
	httpSrv := server.NewHTTPServer(cfg.Server, server.NewService(eng, runReader))

	app := kratos.New(
		kratos.Name("market_analyzer"),
		kratos.Server(httpSrv),
	)
	if err := app.Run(); err != nil {
		logger.Log.Fatalf("HTTP 服务退出: %v", err)
	}
}

// runOnce 执行一次分析并把报告写到 output/
func runOnce(ctx context.Context, eng *engine.Engine, requestPath string) {
	data, err := os.ReadFile(requestPath)
	if err != nil {
		logger.Log.Fatalf("无法读取请求文件: %v", err)
	}

	var req model.AnalysisRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		logger.Log.Fatalf("请求文件格式错误: %v", err)
	}

	report := eng.GenerateComprehensiveAnalysis(ctx, &req, "")

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Log.Fatalf("无法序列化报告: %v", err)
	}

	if err := os.MkdirAll("output", 0o755); err != nil {
		logger.Log.Fatalf("无法创建输出目录: %v", err)
	}
	outPath := fmt.Sprintf("output/analise_%s.json", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		logger.Log.Fatalf("无法写入报告: %v", err)
	}

	logger.Log.Infof("✅ Relatório gerado: %s", outPath)
}
