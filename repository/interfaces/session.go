package interfaces

// Session 数据库会话抽象，内存实现下事务方法为空操作
type Session interface {
	Begin() error
	Commit() error
	Rollback() error
	Close() error
}
