package model

import (
	"encoding/hex"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// 文档归档文件的固定扩展名
const FileExtension = ".zip"

// 日志中表示"未确定目标位置"的占位值
const NoNewLocation = "no new location"

// Status 单条记录迁移结果的分类
type Status string

const (
	StatusSuccess           Status = "SUCCESS"
	StatusFileMissing       Status = "FILE_MISSING"
	StatusRootFolderMissing Status = "ROOT_FOLDER_MISSING"
	StatusFilesystemError   Status = "FILESYSTEM_ERROR"
	StatusUpdateFailed      Status = "UPDATE_FAILED"
	// 数据库已更新但文件移动失败，需要人工核对
	StatusMoveFailedAfterUpdate Status = "MOVE_FAILED_AFTER_UPDATE"
)

// Terminal 终态记录不会在下次运行中重试
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFileMissing, StatusMoveFailedAfterUpdate:
		return true
	}
	return false
}

// DocumentRecord 待迁移的文档记录
type DocumentRecord struct {
	ID              uuid.UUID
	CurrentLocation string
	CreatedOn       time.Time
	SequenceNumber  int64
}

// FileName 文件名为32位小写十六进制ID加固定扩展名
func (r DocumentRecord) FileName() string {
	return hex.EncodeToString(r.ID[:]) + FileExtension
}

func (r DocumentRecord) SourcePath() string {
	return filepath.Join(r.CurrentLocation, r.FileName())
}

// RelocationOutcome 单次处理的最终结果，只写入一次，不再更新
type RelocationOutcome struct {
	RecordID         uuid.UUID
	PreviousLocation string
	NewLocation      string // 未确定目标位置时为空
	Status           Status
	Message          string
	SequenceNumber   int64
}
