package domain

import (
	"github.com/toheart/dumpy/domain/model"
)

// DumpRepository 渲染日志仓储接口
type DumpRepository interface {
	// SaveDump 保存一条渲染记录，返回记录ID
	SaveDump(record *model.DumpRecord) (int64, error)

	// FindDumpsBySession 按写入顺序查找某个会话的全部记录
	FindDumpsBySession(session string) ([]model.DumpRecord, error)
}

// RepositoryFactory 仓储工厂接口
type RepositoryFactory interface {
	// 初始化数据库
	Initialize() error

	// GetDumpRepository 获取渲染日志仓储
	GetDumpRepository() DumpRepository

	// 关闭数据库连接
	Close() error
}
