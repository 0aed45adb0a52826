package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/toheart/dumpy/domain"
	"github.com/toheart/dumpy/domain/model"
)

// DumpRepository 是SQLite实现的渲染日志仓储
type DumpRepository struct {
	db *sql.DB
}

// NewDumpRepository 创建一个新的SQLite渲染日志仓储
func NewDumpRepository(db *sql.DB) domain.DumpRepository {
	return &DumpRepository{
		db: db,
	}
}

// SaveDump 保存渲染记录
func (r *DumpRepository) SaveDump(record *model.DumpRecord) (int64, error) {
	result, err := r.db.Exec(
		SQLInsertDump,
		record.Session,
		record.Source,
		record.Output,
		record.Options,
		record.CreatedAt.UTC().Format(TimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("save dump error: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read dump id error: %w", err)
	}
	record.ID = id
	return id, nil
}

// FindDumpsBySession 查找会话的全部记录
func (r *DumpRepository) FindDumpsBySession(session string) ([]model.DumpRecord, error) {
	rows, err := r.db.Query(SQLQueryDumpsBySession, session)
	if err != nil {
		return nil, fmt.Errorf("find dumps by session error: %w", err)
	}
	defer rows.Close()

	var result []model.DumpRecord
	for rows.Next() {
		var (
			record    model.DumpRecord
			createdAt string
		)
		if err := rows.Scan(&record.ID, &record.Session, &record.Source, &record.Output, &record.Options, &createdAt); err != nil {
			return nil, fmt.Errorf("scan dump data error: %w", err)
		}
		if record.CreatedAt, err = time.Parse(TimeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse dump time error: %w", err)
		}
		result = append(result, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dump result error: %w", err)
	}

	return result, nil
}
