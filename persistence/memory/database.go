package memory

import (
	"github.com/sirupsen/logrus"
	"github.com/toheart/dumpy/domain"
)

// 确保MemDatabase实现了RepositoryFactory接口
var _ domain.RepositoryFactory = (*MemDatabase)(nil)

// MemDatabase 内存数据库实现，进程退出后数据丢失
type MemDatabase struct {
	logger         *logrus.Logger
	dumpRepository *MemDumpRepository
}

// NewMemDatabase 创建新的内存数据库
func NewMemDatabase(logger *logrus.Logger) *MemDatabase {
	return &MemDatabase{
		logger:         logger,
		dumpRepository: NewMemDumpRepository(logger),
	}
}

// Initialize 初始化数据库
func (m *MemDatabase) Initialize() error {
	return nil // 内存实现无需初始化
}

// Close 关闭数据库连接
func (m *MemDatabase) Close() error {
	return nil // 内存实现无需关闭
}

func (m *MemDatabase) GetDumpRepository() domain.DumpRepository {
	return m.dumpRepository
}
