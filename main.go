package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-acquire/config"
	"go-acquire/controller"
	"go-acquire/logger"
	"go-acquire/middleware"
	"go-acquire/replay"
	"go-acquire/repository"
	"go-acquire/router"
	"go-acquire/service"
	"go-acquire/utils"
	"go-acquire/ws"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	root := &cobra.Command{
		Use:          "acquire",
		Short:        "Acquire 游戏服务",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newReplayCmd(), newResultsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP / WebSocket 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) (err error) {
	rdb, err := repository.InitRedis(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, rdb.Close()) }()

	store := repository.NewRedisStore(rdb, log)
	var archive repository.ResultArchive
	if cfg.MySQLDSN != "" {
		db, dbErr := openArchive(ctx, cfg.MySQLDSN)
		if dbErr != nil {
			return dbErr
		}
		defer func() { err = multierr.Append(err, db.Close()) }()
		archive = repository.NewMySQLArchive(db)
		log.Info("✅ MySQL 归档已启用")
	}

	rooms := service.NewRoomManager(store, store, archive, log)
	if err := rooms.Restore(ctx); err != nil {
		log.Warn("恢复房间失败", zap.Error(err))
	}
	defer rooms.Flush()

	issuer := utils.NewTokenIssuer(cfg.JWTSecret)
	hub := ws.NewHub(rooms, issuer, log, cfg.WSMessagesPerSecond, cfg.WSBurst)

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.ZapLogger(log))
	r.Use(cors.New(corsConfig(cfg)))
	router.InitRouter(r, controller.NewRoomController(rooms, issuer, log), hub, issuer)

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("服务关闭中")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openArchive(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := repository.OpenMySQL(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := repository.NewMySQLArchive(db).EnsureSchema(ctx); err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	return db, nil
}

// 未配置 ALLOWED_ORIGINS 时允许所有来源
func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

func newReplayCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "重放动作日志并打印棋盘",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			actions, err := replay.ReadLog(f)
			if err != nil {
				return err
			}
			res := replay.Run(actions)

			out := cmd.OutOrStdout()
			if !quiet {
				for _, r := range res.Rejected {
					color.New(color.FgYellow).Fprintf(out, "#%d %s 被拒绝: %v\n", r.Index, r.Type, r.Err)
				}
			}
			fmt.Fprintf(out, "共 %d 条动作，成功 %d 条，阶段 %s\n\n", len(actions), res.Applied, res.State.GamePhase)
			replay.RenderBoard(out, res.State)
			fmt.Fprintln(out)
			replay.RenderSummary(out, res.State)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "不打印被拒绝的动作")
	return cmd
}

func newResultsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "results",
		Short: "查看最近归档的对局结果",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.MySQLDSN == "" {
				return errors.New("未配置 MYSQL_DSN")
			}
			db, err := repository.OpenMySQL(cmd.Context(), cfg.MySQLDSN)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, db.Close()) }()

			records, err := repository.NewMySQLArchive(db).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range records {
				fmt.Fprintf(out, "%s  %-8s %-8s %s\n", r.FinishedAt.Format(time.DateTime), r.RoomID, r.GameMode, strings.Join(r.Winners, ","))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "最多显示条数")
	return cmd
}
