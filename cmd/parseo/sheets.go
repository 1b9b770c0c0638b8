package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/parseos/internal/sheet"
	"github.com/spf13/cobra"
)

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file.xlsx>",
		Short: "List the sheets of a workbook, for use with convert --sheet",
		Args:  cobra.ExactArgs(1),
		// Listing sheets needs no configuration.
		PersistentPreRun: func(*cobra.Command, []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if sheet.KindOf(path) != sheet.KindWorkbook {
				return fmt.Errorf("%w: %s is not a workbook", sheet.ErrUnsupportedType, path)
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			names, err := sheet.SheetNames(f)
			if err != nil {
				return err
			}
			for i, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, name)
			}
			return nil
		},
	}
}
