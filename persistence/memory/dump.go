package memory

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/toheart/dumpy/domain/model"
)

// MemDumpRepository 渲染日志仓储的内存实现
type MemDumpRepository struct {
	mu      sync.Mutex
	logger  *logrus.Logger
	records []model.DumpRecord
	nextID  int64
}

// NewMemDumpRepository 创建新的内存渲染日志仓储
func NewMemDumpRepository(logger *logrus.Logger) *MemDumpRepository {
	return &MemDumpRepository{
		logger: logger,
		nextID: 1,
	}
}

// SaveDump 保存渲染记录
func (r *MemDumpRepository) SaveDump(record *model.DumpRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = r.nextID
	r.nextID++
	r.records = append(r.records, *record)
	r.logger.WithFields(logrus.Fields{
		"id":      record.ID,
		"session": record.Session,
		"source":  record.Source,
	}).Debug("dump saved")
	return record.ID, nil
}

// FindDumpsBySession 查找会话的全部记录
func (r *MemDumpRepository) FindDumpsBySession(session string) ([]model.DumpRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []model.DumpRecord
	for _, record := range r.records {
		if record.Session == session {
			result = append(result, record)
		}
	}
	return result, nil
}
