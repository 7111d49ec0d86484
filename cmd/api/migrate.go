package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Aplica ou desfaz migrações do banco de dados",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	direction := "up"
	if len(args) == 1 {
		direction = args[0]
	}

	var err error
	if direction == "down" {
		err = migration.Down(cfg.Database.DSN)
	} else {
		err = migration.Up(cfg.Database.DSN)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Migrações (%s) concluídas com sucesso\n", direction)
	return nil
}
