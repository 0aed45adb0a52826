package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/toheart/dumpy/domain"
	_ "modernc.org/sqlite"
)

// 确保SQLiteDatabase实现了RepositoryFactory接口
var _ domain.RepositoryFactory = (*SQLiteDatabase)(nil)

// SQLiteDatabase SQLite数据库实现
type SQLiteDatabase struct {
	dumpRepository domain.DumpRepository
	dsn            string
	db             *sql.DB
	logger         *logrus.Logger
}

// NewSQLiteDatabase 创建新的SQLite数据库，dsn 为空时按可执行文件名生成数据库文件
func NewSQLiteDatabase(dsn string, logger *logrus.Logger) *SQLiteDatabase {
	return &SQLiteDatabase{
		dsn:    dsn,
		logger: logger,
	}
}

// Initialize 初始化数据库
func (s *SQLiteDatabase) Initialize() error {
	dbPath := s.dsn
	if dbPath == "" {
		dbPath = findAvailableDBName()
	}

	var err error
	s.logger.Infof("opening db: %s", dbPath)
	if dbPath == MemoryDSN {
		s.db, err = sql.Open("sqlite", MemoryDSN)
	} else {
		s.db, err = sql.Open("sqlite", fmt.Sprintf("file:%s?%s", dbPath, DSNPragmas))
	}
	if err != nil {
		return fmt.Errorf("can't open db: %w", err)
	}

	// 内存数据库每个连接都是独立的库
	if dbPath == MemoryDSN {
		s.db.SetMaxOpenConns(1)
	} else {
		s.db.SetMaxOpenConns(10)
		s.db.SetMaxIdleConns(5)
		s.db.SetConnMaxIdleTime(30 * time.Second)
	}

	// 测试连接
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("can't ping db: %w", err)
	}

	if err := s.createTablesAndIndexes(); err != nil {
		return fmt.Errorf("can't create tables and indexes: %w", err)
	}

	return nil
}

// createTablesAndIndexes 创建数据表和索引
func (s *SQLiteDatabase) createTablesAndIndexes() error {
	statements := []string{
		SQLCreateDumpTable,
		SQLCreateSessionIndex,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("can't exec sql: %s, %w", stmt, err)
		}
	}
	s.dumpRepository = NewDumpRepository(s.db)

	return nil
}

// Close 关闭数据库连接
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteDatabase) GetDumpRepository() domain.DumpRepository {
	return s.dumpRepository
}

// findAvailableDBName 查找可用的数据库文件名
func findAvailableDBName() string {
	execName, err := os.Executable()
	if err != nil {
		execName = "dumpy"
	}
	execName = filepath.Base(execName)
	currentTime := time.Now().Format("20060102150405")
	return fmt.Sprintf(DBFileNameFormat, execName, currentTime)
}
