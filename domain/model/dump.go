package model

import "time"

// DumpRecord 一次渲染结果的日志记录
type DumpRecord struct {
	ID        int64     `json:"id"`        // 自增ID
	Session   string    `json:"session"`   // 一次命令执行的会话ID
	Source    string    `json:"source"`    // 输入来源，文件名或 "-"
	Output    string    `json:"output"`    // 渲染输出
	Options   string    `json:"options"`   // 渲染时的配置快照(JSON)
	CreatedAt time.Time `json:"createdAt"` // 创建时间
}

// NewDumpRecord 创建一条新的日志记录
func NewDumpRecord(session, source, output, options string) *DumpRecord {
	return &DumpRecord{
		Session:   session,
		Source:    source,
		Output:    output,
		Options:   options,
		CreatedAt: time.Now().UTC(),
	}
}
