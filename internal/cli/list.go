package cli

import (
	"github.com/spf13/cobra"

	"github.com/mfaias/propscope/internal/listing"
)

func newListCmd() *cobra.Command {
	var neighborhood string

	cmd := &cobra.Command{
		Use:   "list <sale|rental>",
		Short: "List stored listings",
		Long:  "List stored listings of the given kind, optionally filtered by neighborhood.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args[0], neighborhood)
		},
	}

	cmd.Flags().StringVar(&neighborhood, "neighborhood", "", "filter by normalized neighborhood")

	return cmd
}

func runList(kindArg, neighborhood string) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	opts := listing.ListOptions{Neighborhood: neighborhood}

	listings, err := repo.ListByKind(kind, opts)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(listings)
	}
	return printListingTable(listings)
}
