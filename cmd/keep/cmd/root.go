package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"keep/cmd/keep/cmd/auth"
	"keep/cmd/keep/cmd/items"
	"keep/cmd/keep/cmd/shared"
	"keep/internal/app/client"
	"keep/internal/app/client/config"
	"keep/internal/utils/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
	app     *client.App
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "keep",
	Short: "Keep - локальное зашифрованное хранилище секретов",
	Long: `Keep хранит пароли, банковские карты, счета и заметки
в локальном зашифрованном хранилище.

Все записи шифруются мастер-ключом, который защищен мастер-паролем.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log = logger.NewWithLevel(cfg.Env, level)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(shared.WithApp(cmd.Context(), app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&shared.JSONOutput, "json", false, "вывод в формате JSON")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(resetCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.UnlockCmd)
	auth.AuthCmd.AddCommand(auth.LockCmd)
	auth.AuthCmd.AddCommand(auth.StatusCmd)
	auth.AuthCmd.AddCommand(auth.ChangePasswordCmd)

	rootCmd.AddCommand(items.ItemCmd)
	items.ItemCmd.AddCommand(items.AddCmd)
	items.ItemCmd.AddCommand(items.ListCmd)
	items.ItemCmd.AddCommand(items.ShowCmd)
	items.ItemCmd.AddCommand(items.EditCmd)
	items.ItemCmd.AddCommand(items.DeleteCmd)
	items.ItemCmd.AddCommand(items.CopyCmd)
	items.ItemCmd.AddCommand(items.TypesCmd)
}
