package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/mediadb-backend/internal/config"
	"github.com/ignatzorin/mediadb-backend/internal/db"
	"github.com/ignatzorin/mediadb-backend/internal/logger"
)

// app общее состояние команд: конфигурация загружается один раз в PersistentPreRunE.
type app struct {
	cfg     *config.Config
	connect func(ctx context.Context, dsn string) (*sqlx.DB, error)
}

// NewRootCmd собирает дерево команд mediactl.
func NewRootCmd() *cobra.Command {
	a := &app{
		connect: func(ctx context.Context, dsn string) (*sqlx.DB, error) {
			return db.NewPostgres(ctx, dsn, db.DefaultPoolOptions)
		},
	}

	root := &cobra.Command{
		Use:   "mediactl",
		Short: "mediactl - администрирование каталога медиа",
		Long: "mediactl применяет миграции схемы и создаёт демо-записи,\n" +
			"на которые ссылаются ассеты и категории.",
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}

	root.AddCommand(newMigrateCmd(a))
	root.AddCommand(newSeedCmd(a))

	return root
}

// Execute запускает mediactl и завершает процесс с кодом 1 при ошибке.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(cfg.LogLevel)
	logger.SetTextFormatter()
	return nil
}

// withDB открывает соединение на время выполнения fn.
func (a *app) withDB(ctx context.Context, fn func(conn *sqlx.DB) error) error {
	conn, err := a.connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к базе: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.L().WithError(err).Warn("mediactl: ошибка закрытия базы")
		}
	}()
	return fn(conn)
}
