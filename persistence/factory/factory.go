package factory

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/toheart/dumpy/domain"
	"github.com/toheart/dumpy/persistence/memory"
	"github.com/toheart/dumpy/persistence/sqlite"
)

// DatabaseType 数据库类型
type DatabaseType string

const (
	DBTypeSQLite DatabaseType = "sqlite"
	DBTypeMemory DatabaseType = "memory"
)

// CreateRepositoryFactory 创建并初始化仓储工厂
func CreateRepositoryFactory(dbType string, dsn string, logger *logrus.Logger) (domain.RepositoryFactory, error) {
	var factory domain.RepositoryFactory

	// 根据数据库类型返回对应的仓储工厂
	switch DatabaseType(dbType) {
	case DBTypeSQLite:
		factory = sqlite.NewSQLiteDatabase(dsn, logger)
	case DBTypeMemory:
		factory = memory.NewMemDatabase(logger)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	// 初始化数据库
	if err := factory.Initialize(); err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("initialize database failed: %w", err)
	}

	return factory, nil
}

// CloseFactory 关闭指定仓储工厂并释放资源
func CloseFactory(factory domain.RepositoryFactory) error {
	if factory == nil {
		return nil
	}
	return factory.Close()
}
