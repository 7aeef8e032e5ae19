package repository

import (
	"context"
	"database/sql"
	"fmt"
	"go-acquire/entities"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/multierr"
)

// ResultArchive 归档已结束对局的最终排名
type ResultArchive interface {
	Archive(ctx context.Context, roomID string, state entities.GameState) error
}

type ResultRecord struct {
	RoomID     string
	GameMode   string
	Winners    []string
	FinishedAt time.Time
}

const schemaResults = `CREATE TABLE IF NOT EXISTS game_results (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_id VARCHAR(64) NOT NULL,
	game_mode VARCHAR(16) NOT NULL,
	winners VARCHAR(255) NOT NULL,
	finished_at DATETIME NOT NULL
)`

const schemaStandings = `CREATE TABLE IF NOT EXISTS game_standings (
	result_id BIGINT NOT NULL,
	player_id VARCHAR(16) NOT NULL,
	name VARCHAR(64) NOT NULL,
	money INT NOT NULL,
	player_rank INT NOT NULL
)`

// OpenMySQL 解析 DSN 并建立连接
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("MySQL DSN 无效: %w", err)
	}
	cfg.ParseTime = true
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建 MySQL 连接器失败: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("MySQL 连接失败: %w", err), db.Close())
	}
	return db, nil
}

type MySQLArchive struct {
	db  *sql.DB
	now func() time.Time
}

func NewMySQLArchive(db *sql.DB) *MySQLArchive {
	return &MySQLArchive{db: db, now: time.Now}
}

func (a *MySQLArchive) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{schemaResults, schemaStandings} {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("初始化表结构失败: %w", err)
		}
	}
	return nil
}

func winnersOf(state entities.GameState) []string {
	if state.Winner != "" {
		return []string{state.Winner}
	}
	return state.Winners
}

func (a *MySQLArchive) Archive(ctx context.Context, roomID string, state entities.GameState) (err error) {
	if state.GamePhase != entities.PhaseGameOver {
		return fmt.Errorf("房间 %s 的游戏尚未结束", roomID)
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO game_results (room_id, game_mode, winners, finished_at) VALUES (?, ?, ?, ?)",
		roomID, string(state.Mode), strings.Join(winnersOf(state), ","), a.now().UTC())
	if err != nil {
		return fmt.Errorf("写入对局结果失败: %w", err)
	}
	resultID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("获取对局 ID 失败: %w", err)
	}
	for _, s := range state.FinalStandings {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO game_standings (result_id, player_id, name, money, player_rank) VALUES (?, ?, ?, ?, ?)",
			resultID, s.PlayerID, s.Name, s.Money, s.Rank); err != nil {
			return fmt.Errorf("写入玩家[%s]排名失败: %w", s.PlayerID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}

// Recent 最近结束的对局
func (a *MySQLArchive) Recent(ctx context.Context, limit int) ([]ResultRecord, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT room_id, game_mode, winners, finished_at FROM game_results ORDER BY finished_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("查询对局结果失败: %w", err)
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		var r ResultRecord
		var winners string
		if err := rows.Scan(&r.RoomID, &r.GameMode, &winners, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("解析对局结果失败: %w", err)
		}
		if winners != "" {
			r.Winners = strings.Split(winners, ",")
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
