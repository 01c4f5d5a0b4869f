package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jvanzella/filecrawler/internal/config"
	"github.com/jvanzella/filecrawler/internal/database"
	"github.com/jvanzella/filecrawler/internal/files"
	"github.com/jvanzella/filecrawler/internal/processor"
	"github.com/jvanzella/filecrawler/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	// 确保日志目录存在
	if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
		panic(err)
	}

	// 初始化日志
	logConfig := zap.NewProductionConfig()
	logConfig.OutputPaths = []string{cfg.Logging.File, "stdout"}
	logConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Logging.Level == "debug" {
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := logConfig.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.New(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("open database failed", zap.Error(err))
	}
	defer db.Close()

	cutoffDay, err := cfg.CutoffWeekday()
	if err != nil {
		logger.Fatal("invalid cutoff weekday", zap.Error(err))
	}

	proc := processor.New(files.Gateway{}, db, cfg.Paths.RootDir, logger)
	sched := scheduler.New(proc, cfg.Batch.Size, cfg.Batch.Workers, cutoffDay, cfg.Cutoff.Hour, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 获取待处理记录
	records, err := db.FetchPending(ctx)
	if err != nil {
		logger.Fatal("fetch pending documents failed", zap.Error(err))
	}
	logger.Info("pending documents fetched",
		zap.String("root_dir", cfg.Paths.RootDir),
		zap.Int("count", len(records)))

	summary, err := sched.Run(ctx, records)
	if err != nil {
		logger.Fatal("relocation run aborted",
			zap.Error(err),
			zap.Int64("succeeded", summary.Succeeded),
			zap.Int64("failed", summary.Failed))
	}

	logger.Info("relocation run finished",
		zap.Int64("succeeded", summary.Succeeded),
		zap.Int64("failed", summary.Failed),
		zap.Int("skipped_batches", summary.SkippedBatches),
		zap.Int("total", len(records)))
}
