package cmd

import (
	"lending/pkg/sysversion"
	"lending/worker"
	"lending/worker/cashier"
	"lending/worker/notifier"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run background workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		transferStore := provideTransferStore(database)
		eventStore := provideEventStore(database)
		propertyStore := providePropertyStore(database)
		if err := sysversion.Check(ctx, propertyStore); err != nil {
			return err
		}

		walletService := provideWalletService(provideWallet())

		workers := []worker.Worker{
			cashier.New(transferStore, walletService, cfg.Cashier),
			notifier.New(eventStore, propertyStore, provideRedis(), cfg.Notifier),
		}

		g, gctx := errgroup.WithContext(ctx)
		for idx := range workers {
			w := workers[idx]
			g.Go(func() error {
				return w.Run(gctx)
			})
		}

		// workers only stop when the context is done
		if err := g.Wait(); err != nil && ctx.Err() == nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
