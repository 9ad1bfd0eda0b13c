package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/todoapp/backend/internal/domain/todo"
	"github.com/todoapp/backend/internal/infrastructure/config"
	"github.com/todoapp/backend/internal/infrastructure/log"
)

// Conn 单个请求借用的数据库连接
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// lease 从连接池借出的连接，用完必须归还
type lease interface {
	Conn
	Release()
}

// backend 已验证可用的连接池
type backend struct {
	pgx     *pgxpool.Pool
	acquire func(ctx context.Context) (lease, error)
}

// dialFunc 建立并验证连接池
type dialFunc func(ctx context.Context, dsn string, minConns, maxConns int32) (*backend, error)

// Pool 数据库连接池管理器
// 启动时连接失败会进入不可用状态，此时所有操作直接返回 todo.ErrUnavailable
type Pool struct {
	pgx            *pgxpool.Pool
	acquire        func(ctx context.Context) (lease, error)
	acquireTimeout time.Duration
	closeOnce      sync.Once
	logger         *slog.Logger
}

// PoolStats 连接池状态
type PoolStats struct {
	Available bool
	Acquired  int32
	Idle      int32
	Total     int32
	Max       int32
}

// Open 按配置建立连接池，失败时按固定间隔重试
// 重试用尽后返回不可用的 Pool，进程继续运行
func Open(ctx context.Context, cfg *config.DatabaseConfig) *Pool {
	return open(ctx, cfg, RetryPolicy{
		Attempts: cfg.ConnectAttempts,
		Delay:    cfg.RetryDelay,
	}, dial)
}

func open(ctx context.Context, cfg *config.DatabaseConfig, policy RetryPolicy, dialer dialFunc) *Pool {
	logger := log.NewModuleLogger("storage", "pool")
	p := &Pool{
		acquireTimeout: cfg.AcquireTimeout,
		logger:         logger,
	}

	policy.OnFailure = func(attempt int, err error) {
		logger.Warn("Failed to connect to database",
			"attempt", attempt,
			"max_attempts", policy.Attempts,
			"host", cfg.Host,
			"error", err,
		)
	}

	var conns *backend
	err := Retry(ctx, policy, func(ctx context.Context, attempt int) error {
		var err error
		conns, err = dialer(ctx, cfg.DSN(), cfg.MinConns, cfg.MaxConns)
		return err
	})
	if err != nil {
		logger.Error("All retries failed, database connection unavailable",
			"host", cfg.Host,
			"error", err,
		)
		return p
	}

	p.pgx = conns.pgx
	p.acquire = conns.acquire
	logger.Info("Connected to database",
		"host", cfg.Host,
		"database", cfg.Name,
		"min_conns", cfg.MinConns,
		"max_conns", cfg.MaxConns,
	)

	if err := EnsureSchema(ctx, p); err != nil {
		logger.Error("Failed to initialize schema", "error", err)
	}

	return p
}

// dial 创建 pgx 连接池并 ping 验证
func dial(ctx context.Context, dsn string, minConns, maxConns int32) (*backend, error) {
	poolCfg, err := poolConfig(dsn, minConns, maxConns)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &backend{
		pgx: pool,
		acquire: func(ctx context.Context) (lease, error) {
			conn, err := pool.Acquire(ctx)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
	}, nil
}

// poolConfig 解析 DSN 并设置连接池参数
// 会话时区固定为 UTC，created_at 按 UTC 读写
func poolConfig(dsn string, minConns, maxConns int32) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolCfg.MinConns = minConns
	poolCfg.MaxConns = maxConns
	poolCfg.ConnConfig.RuntimeParams["timezone"] = "UTC"
	return poolCfg, nil
}

// Available 连接池是否可用
func (p *Pool) Available() bool {
	return p != nil && p.acquire != nil
}

// WithConn 借出一个连接执行 fn，任何路径返回前都会归还连接
func (p *Pool) WithConn(ctx context.Context, fn func(ctx context.Context, conn Conn) error) error {
	if !p.Available() {
		return todo.ErrUnavailable
	}

	acquireCtx := ctx
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	conn, err := p.acquire(acquireCtx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(ctx, conn)
}

// Greet 执行存活查询，返回数据库给出的问候语
func (p *Pool) Greet(ctx context.Context) (string, error) {
	var message string
	err := p.WithConn(ctx, func(ctx context.Context, conn Conn) error {
		return conn.QueryRow(ctx, "SELECT 'Hello from the backend!'").Scan(&message)
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

// Stats 返回连接池状态
func (p *Pool) Stats() PoolStats {
	if !p.Available() {
		return PoolStats{}
	}
	stats := PoolStats{Available: true}
	if p.pgx != nil {
		s := p.pgx.Stat()
		stats.Acquired = s.AcquiredConns()
		stats.Idle = s.IdleConns()
		stats.Total = s.TotalConns()
		stats.Max = s.MaxConns()
	}
	return stats
}

// Close 关闭连接池
func (p *Pool) Close() {
	if p == nil || p.pgx == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.pgx.Close()
		p.logger.Info("Database pool closed")
	})
}
