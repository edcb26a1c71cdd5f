package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haisi/eaf-movierental/internal/config"
	"github.com/haisi/eaf-movierental/internal/database"
	"github.com/haisi/eaf-movierental/internal/repository"
	"github.com/haisi/eaf-movierental/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load price categories, movies and users from a YAML file",
		Long: `Load price categories, movies and users from a YAML file.

Entries that already exist are skipped, so seeding twice is harmless.
The schema is applied first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := rootOpts.logger(cmd.ErrOrStderr())
			f, err := seed.Load(file)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := database.Migrate(cmd.Context(), db, cfg.DBDriver); err != nil {
				return err
			}
			res, err := seed.Apply(cmd.Context(), repository.New(db), f)
			if err != nil {
				return err
			}
			log.Info("seeded", "file", file,
				"price_categories", res.PriceCategories, "movies", res.Movies, "users", res.Users)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "seed file")
	return cmd
}
