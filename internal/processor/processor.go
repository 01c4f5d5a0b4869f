package processor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jvanzella/filecrawler/internal/model"
	"github.com/jvanzella/filecrawler/internal/pathplan"
)

type Gateway interface {
	Exists(path string) bool
	EnsureDir(path string) error
	Move(sourcePath, destinationPath string) error
}

type Recorder interface {
	UpdateLocation(ctx context.Context, id uuid.UUID, newLocation string) error
	LogOutcome(ctx context.Context, outcome model.RelocationOutcome) error
}

type Processor struct {
	gateway  Gateway
	recorder Recorder
	rootDir  string
	logger   *zap.Logger
}

func New(gateway Gateway, recorder Recorder, rootDir string, logger *zap.Logger) *Processor {
	return &Processor{
		gateway:  gateway,
		recorder: recorder,
		rootDir:  rootDir,
		logger:   logger,
	}
}

// Process 处理单条记录并写入一条迁移日志。只有日志本身写入失败才返回错误，
// 其余失败都体现在返回的结果状态中
func (p *Processor) Process(ctx context.Context, record model.DocumentRecord) (model.RelocationOutcome, error) {
	outcome := p.relocate(ctx, record)
	if err := p.recorder.LogOutcome(ctx, outcome); err != nil {
		return outcome, fmt.Errorf("log outcome: %w", err)
	}
	return outcome, nil
}

func (p *Processor) relocate(ctx context.Context, record model.DocumentRecord) model.RelocationOutcome {
	outcome := model.RelocationOutcome{
		RecordID:         record.ID,
		PreviousLocation: record.CurrentLocation,
		SequenceNumber:   record.SequenceNumber,
	}

	// 检查源文件是否存在
	sourcePath := record.SourcePath()
	if !p.gateway.Exists(sourcePath) {
		outcome.Status = model.StatusFileMissing
		outcome.Message = "source file not found: " + sourcePath
		p.logger.Warn("source file missing",
			zap.String("document_id", record.ID.String()),
			zap.String("path", sourcePath),
			zap.Int64("sequence", record.SequenceNumber))
		return outcome
	}

	dest := pathplan.Plan(p.rootDir, record.CreatedOn)

	// 年度目录由外部流程预建，这里绝不自动创建，避免在共享目录下出现意外的顶层文件夹
	if !p.gateway.Exists(dest.YearDir) {
		outcome.Status = model.StatusRootFolderMissing
		outcome.Message = "year folder " + dest.YearFolder + " does not exist, file skipped"
		p.logger.Warn("year folder missing, file skipped",
			zap.String("document_id", record.ID.String()),
			zap.String("year_dir", dest.YearDir),
			zap.Int64("sequence", record.SequenceNumber))
		return outcome
	}

	// 月份子目录按需创建
	if !p.gateway.Exists(dest.Dir) {
		if err := p.gateway.EnsureDir(dest.Dir); err != nil {
			outcome.Status = model.StatusFilesystemError
			outcome.NewLocation = dest.Dir
			outcome.Message = fmt.Sprintf("create month folder: %v", err)
			p.logger.Error("create month folder failed",
				zap.String("document_id", record.ID.String()),
				zap.String("dir", dest.Dir),
				zap.Error(err))
			return outcome
		}
		p.logger.Info("created month folder", zap.String("dir", dest.Dir))
	}

	// 先更新数据库再移动文件：此时目标目录已存在，两步之间崩溃的话
	// 数据库指向文件即将到达的位置，人工即可补救
	if err := p.recorder.UpdateLocation(ctx, record.ID, dest.Dir); err != nil {
		outcome.Status = model.StatusUpdateFailed
		outcome.NewLocation = dest.Dir
		outcome.Message = fmt.Sprintf("update location: %v", err)
		p.logger.Error("location update failed",
			zap.String("document_id", record.ID.String()),
			zap.Error(err))
		return outcome
	}

	destinationPath := filepath.Join(dest.Dir, record.FileName())
	if err := p.gateway.Move(sourcePath, destinationPath); err != nil {
		outcome.Status = model.StatusMoveFailedAfterUpdate
		outcome.NewLocation = dest.Dir
		outcome.Message = fmt.Sprintf("location updated but move failed: %v", err)
		p.logger.Error("move failed after location update, manual reconciliation required",
			zap.String("document_id", record.ID.String()),
			zap.String("source", sourcePath),
			zap.String("destination", destinationPath),
			zap.Error(err))
		return outcome
	}

	outcome.Status = model.StatusSuccess
	outcome.NewLocation = dest.Dir
	outcome.Message = "SUCCESS"
	p.logger.Info("file relocated",
		zap.String("document_id", record.ID.String()),
		zap.String("destination", destinationPath),
		zap.Int64("sequence", record.SequenceNumber))
	return outcome
}
