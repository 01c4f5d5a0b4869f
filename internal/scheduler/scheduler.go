package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jvanzella/filecrawler/internal/model"
)

type Processor interface {
	Process(ctx context.Context, record model.DocumentRecord) (model.RelocationOutcome, error)
}

// Summary 单次运行的汇总计数
type Summary struct {
	Succeeded      int64
	Failed         int64
	SkippedBatches int
}

// Scheduler 把待处理记录切成批次，由有上限的worker池并发处理。
// 不做跨进程互斥：同时启动多个实例的行为未定义
type Scheduler struct {
	processor  Processor
	batchSize  int
	workers    int
	cutoffDay  time.Weekday
	cutoffHour int
	logger     *zap.Logger
	now        func() time.Time
}

func New(processor Processor, batchSize, workers int, cutoffDay time.Weekday, cutoffHour int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		processor:  processor,
		batchSize:  batchSize,
		workers:    workers,
		cutoffDay:  cutoffDay,
		cutoffHour: cutoffHour,
		logger:     logger,
		now:        time.Now,
	}
}

// Run 处理全部记录后返回汇总。只有记录结果无法写入时才返回错误
func (s *Scheduler) Run(ctx context.Context, records []model.DocumentRecord) (Summary, error) {
	batches := partition(records, s.batchSize)

	var succeeded, failed, skipped atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			// 每个批次开始前检查截止时间，已在处理中的批次不会被打断
			if s.pastCutoff(s.now()) {
				skipped.Add(1)
				s.logger.Info("cutoff reached, batch skipped",
					zap.Int("batch", i),
					zap.Int("records", len(batch)),
					zap.Int64("succeeded", succeeded.Load()),
					zap.Int64("failed", failed.Load()))
				return nil
			}

			for _, record := range batch {
				outcome, err := s.processor.Process(ctx, record)
				if err != nil {
					// 结果无法记录时继续运行是不安全的
					return err
				}
				if outcome.Status == model.StatusSuccess {
					succeeded.Add(1)
				} else {
					failed.Add(1)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	return Summary{
		Succeeded:      succeeded.Load(),
		Failed:         failed.Load(),
		SkippedBatches: int(skipped.Load()),
	}, err
}

func (s *Scheduler) pastCutoff(now time.Time) bool {
	return now.Weekday() == s.cutoffDay && now.Hour() >= s.cutoffHour
}

// partition 按原始顺序切分成连续批次，最后一批可能不足size条
func partition(records []model.DocumentRecord, size int) [][]model.DocumentRecord {
	var batches [][]model.DocumentRecord
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		batches = append(batches, records[start:end])
	}
	return batches
}
