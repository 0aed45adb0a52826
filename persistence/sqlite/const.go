package sqlite

// 数据库相关常量
const (
	// 数据库文件名格式
	DBFileNameFormat = "./%s_%s.db"

	// 内存数据库
	MemoryDSN = ":memory:"

	// 连接参数
	DSNPragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	// 时间存储格式
	TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

	// SQL语句
	SQLCreateDumpTable = `CREATE TABLE IF NOT EXISTS DumpJournal (
		id INTEGER PRIMARY KEY AUTOINCREMENT, 
		session TEXT NOT NULL, 
		source TEXT, 
		output TEXT, 
		options TEXT, 
		createdAt TEXT
	)`

	SQLCreateSessionIndex = "CREATE INDEX IF NOT EXISTS idx_dump_session ON DumpJournal (session)"

	SQLInsertDump = "INSERT INTO DumpJournal (session, source, output, options, createdAt) VALUES (?, ?, ?, ?, ?)"

	// 查询某个会话的全部记录
	SQLQueryDumpsBySession = "SELECT id, session, source, output, options, createdAt FROM DumpJournal WHERE session = ? ORDER BY id"
)
