// Package shared содержит общее для команд CLI: доступ к приложению,
// ввод паролей и вывод.
package shared

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"keep/internal/app/client"
	"keep/internal/domain/vault"
)

// JSONOutput включается глобальным флагом --json
var JSONOutput bool

var (
	Success = color.New(color.FgGreen).SprintFunc()
	Warning = color.New(color.FgYellow).SprintFunc()
	Faint   = color.New(color.Faint).SprintFunc()
	Bold    = color.New(color.Bold).SprintFunc()
)

type appKey struct{}

// WithApp кладет приложение в контекст команды.
func WithApp(ctx context.Context, app *client.App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// App достает приложение из контекста команды.
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(appKey{}).(*client.App)
	if !ok || app == nil {
		return nil, errors.New("приложение не инициализировано")
	}
	return app, nil
}

// Vault возвращает сервис записей; мастер-ключ должен быть разблокирован.
func Vault(cmd *cobra.Command) (*vault.Service, error) {
	app, err := App(cmd)
	if err != nil {
		return nil, err
	}
	return app.Vault(cmd.Context())
}

// UserError переводит ошибку сервиса в сообщение для пользователя.
func UserError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(vault.Describe(err))
}

// PrintJSON печатает v в stdout команды
func PrintJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// ReadPassword читает пароль без эха. Если stdin не терминал,
// читается одна строка, так команды можно вызывать из скриптов.
func ReadPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		return string(password), nil
	}

	line, err := Reader(cmd).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var stdin *bufio.Reader

// Reader возвращает общий буферизованный reader stdin команды.
func Reader(cmd *cobra.Command) *bufio.Reader {
	if stdin == nil {
		stdin = bufio.NewReader(cmd.InOrStdin())
	}
	return stdin
}

// Prompt печатает подсказку и читает строку ввода.
func Prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", label)
	line, err := Reader(cmd).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
