package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/pkg/utils"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Executa um único ciclo de sincronização e imprime o resultado",
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sync.PassTimeout)
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	outcome, err := a.reconciler.SyncAll(ctx)
	if err != nil {
		return err
	}
	if outcome == nil {
		outcome = &domain.SyncOutcome{}
	}

	fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(outcome))
	return nil
}
