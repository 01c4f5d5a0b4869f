package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/jvanzella/filecrawler/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

type Database struct {
	db     *sql.DB
	logger *zap.Logger
}

func New(dbPath string, logger *zap.Logger) (*Database, error) {
	// 确保目录存在
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.Exec(string(schema)); err != nil {
		return nil, fmt.Errorf("execute schema: %w", err)
	}

	return &Database{
		db:     db,
		logger: logger,
	}, nil
}

// FetchPending 按序号返回待迁移记录，排除已有终态日志的记录
func (d *Database) FetchPending(ctx context.Context) ([]model.DocumentRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT d.id, d.location, d.created_on, d.sequence_number
		FROM documents d
		WHERE NOT EXISTS (
			SELECT 1 FROM relocation_log l
			WHERE l.document_id = d.id AND l.status IN (?, ?, ?)
		)
		ORDER BY d.sequence_number`,
		string(model.StatusSuccess),
		string(model.StatusFileMissing),
		string(model.StatusMoveFailedAfterUpdate))
	if err != nil {
		return nil, fmt.Errorf("query pending documents: %w", err)
	}
	defer rows.Close()

	var records []model.DocumentRecord
	for rows.Next() {
		var idStr string
		var record model.DocumentRecord
		if err := rows.Scan(&idStr, &record.CurrentLocation, &record.CreatedOn, &record.SequenceNumber); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse document id %q: %w", idStr, err)
		}
		record.ID = id
		records = append(records, record)
	}

	return records, rows.Err()
}

// UpdateLocation 更新记录的存储位置，重复应用同一值无副作用
func (d *Database) UpdateLocation(ctx context.Context, id uuid.UUID, newLocation string) error {
	if _, err := d.db.ExecContext(ctx,
		"UPDATE documents SET location = ? WHERE id = ?",
		newLocation, id.String()); err != nil {
		return fmt.Errorf("update document location: %w", err)
	}
	return nil
}

// LogOutcome 追加一条迁移日志，NewLocation为空时写入占位值
func (d *Database) LogOutcome(ctx context.Context, outcome model.RelocationOutcome) error {
	newLocation := outcome.NewLocation
	if newLocation == "" {
		newLocation = model.NoNewLocation
	}

	if _, err := d.db.ExecContext(ctx, `
		INSERT INTO relocation_log (
			document_id, previous_location, new_location,
			status, message, sequence_number, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		outcome.RecordID.String(), outcome.PreviousLocation, newLocation,
		string(outcome.Status), outcome.Message, outcome.SequenceNumber,
		time.Now()); err != nil {
		return fmt.Errorf("insert relocation log: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}
