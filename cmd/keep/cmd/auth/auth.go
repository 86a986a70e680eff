package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для операций с мастер-ключом
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление мастер-ключом",
	Long:  `Разблокировка, блокировка и смена мастер-пароля.`,
}
