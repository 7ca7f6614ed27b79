package record

import (
	"database/sql"
	"elnsim/mna"
	"elnsim/sim"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// SQLite 把每个时间步的节点值和触发事件写入 SQLite 数据库
type SQLite struct {
	db     *sql.DB
	states []*mna.State
	err    error
}

// OpenSQLite 打开或创建数据库，path 为 ":memory:" 时使用内存数据库
func OpenSQLite(path string, states ...*mna.State) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	db.SetMaxOpenConns(1)
	s := &SQLite{db: db, states: states}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("创建数据表失败: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS ticks (
		step INTEGER NOT NULL,
		time REAL NOT NULL,
		node TEXT NOT NULL,
		value REAL NOT NULL
	);
	CREATE TABLE IF NOT EXISTS triggers (
		time REAL NOT NULL,
		watchdog TEXT NOT NULL
	);`)
	return err
}

// Func 实现 sim.Hook，写入失败时只记录第一个错误
func (s *SQLite) Func(ctx sim.HookCtx) {
	if s.err != nil {
		return
	}
	switch ctx.Pos {
	case sim.HookPosAfterTick:
		s.setErr(s.insertTick(ctx.Domain.Steps(), ctx.Domain.Time()))
	case sim.HookPosTrigger:
		if w, ok := ctx.Item.(sim.Watchdog); ok {
			_, err := s.db.Exec(`INSERT INTO triggers (time, watchdog) VALUES (?, ?)`, ctx.Domain.Time(), w.Name())
			s.setErr(err)
		}
	}
}

func (s *SQLite) setErr(err error) {
	if err != nil {
		s.err = err
		log.Println("记录写入失败:", err)
	}
}

func (s *SQLite) insertTick(step int, t float64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO ticks (step, time, node, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, st := range s.states {
		if _, err := stmt.Exec(step, t, st.Name, st.Value); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Values 读取某个节点的历史值，按时间步排序
func (s *SQLite) Values(node string) ([]float64, error) {
	rows, err := s.db.Query(`SELECT value FROM ticks WHERE node = ? ORDER BY step`, node)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Triggers 读取触发事件
func (s *SQLite) Triggers() ([]Trigger, error) {
	rows, err := s.db.Query(`SELECT time, watchdog FROM triggers ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Trigger
	for rows.Next() {
		var t Trigger
		if err := rows.Scan(&t.Time, &t.Watchdog); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Err 第一个写入错误
func (s *SQLite) Err() error { return s.err }

// Close 关闭数据库
func (s *SQLite) Close() error { return s.db.Close() }
