package xormimplement

import (
	"github.com/pkg/errors"
	"xorm.io/xorm"
)

// Session 包一层 xorm 会话，实现 interfaces.Session
type Session struct {
	*xorm.Session
}

func (s *Session) Begin() error {
	return errors.Wrap(s.Session.Begin(), "begin xorm session")
}

func (s *Session) Close() error {
	return errors.Wrap(s.Session.Close(), "close xorm session")
}

func (s *Session) Commit() error {
	return errors.Wrap(s.Session.Commit(), "commit xorm session")
}

func (s *Session) Rollback() error {
	return errors.Wrap(s.Session.Rollback(), "rollback xorm session")
}
