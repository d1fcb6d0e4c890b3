package commands

import (
	"os"

	"github.com/spf13/cobra"

	"corona-spread-gif/config"
	"corona-spread-gif/kaggle"
	"corona-spread-gif/utils"
)

func newUpdateCommand(cfg *config.Config, verbose *bool) *cobra.Command {
	dest := cfg.InputDir
	owner := kaggle.DefaultOwner
	dataset := kaggle.DefaultDataset

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Download the latest COVID-19 dataset from Kaggle and report its last dates.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLoggerTo(os.Stderr, *verbose)

			creds, err := kaggle.LoadCredentials(cfg.KaggleUsername, cfg.KaggleKey)
			if err != nil {
				return err
			}
			client := kaggle.NewClient(cfg.KaggleBaseURL, creds, logger)
			name, err := client.Download(cmd.Context(), owner, dataset, dest)
			if err != nil {
				return err
			}
			logger.Info("Dataset: %s is downloaded into %s", name, dest)

			latest, err := kaggle.CheckLatestDates(dest)
			if err != nil {
				return err
			}
			logger.Info("Last update of the main dataset (%s): %s", kaggle.MainDataset, latest.Main)
			logger.Info("Last update of the timeseries datasets (%s): %s", kaggle.TimeseriesDataset, latest.Timeseries)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dest, "dest", "d", dest, "Destination directory for the dataset.")
	cmd.Flags().StringVar(&owner, "owner", owner, "Kaggle dataset owner.")
	cmd.Flags().StringVar(&dataset, "dataset", dataset, "Kaggle dataset name.")
	return cmd
}
