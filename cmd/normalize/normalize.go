// Package normalize implements the main parsing command: one messy export
// in, normalized transaction CSV out.
package normalize

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/bank-csv/cmd/root"
	"fjacquet/bank-csv/internal/categorizer"
	"fjacquet/bank-csv/internal/common"
	"fjacquet/bank-csv/internal/pipeline"
	"fjacquet/bank-csv/internal/store"
)

// Cmd represents the normalize command.
var Cmd = &cobra.Command{
	Use:   "normalize",
	Short: "Parse a bank export and emit normalized transactions",
	Long: `Parse a delimited-text bank or card export, recover as many rows as
possible, and write the normalized transactions as CSV.`,
	Run: normalizeFunc,
}

func normalizeFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Error("No input file specified, use --input")
		return
	}

	log := root.Logger()
	categoryStore := store.NewCategoryStore(root.Cfg.Categorization.CategoriesFile, log)
	p := pipeline.New(root.Cfg, log,
		pipeline.WithCategorizer(categorizer.NewKeywordCategorizer(categoryStore, log)),
	)

	result, err := p.Process(cmd.Context(), root.SharedFlags.Input)
	if err != nil {
		root.Log.WithError(err).Fatal("Processing failed")
	}
	if result.Duplicate {
		root.Log.Warn("This file content was processed before")
	}

	if root.SharedFlags.Output != "" {
		if err := common.WriteTransactionsCSV(root.SharedFlags.Output, result.Transactions); err != nil {
			root.Log.WithError(err).Fatal("Writing output failed")
		}
		root.Log.WithField("output", root.SharedFlags.Output).Info("Transactions written")
	} else {
		out, err := common.MarshalTransactionsCSV(result.Transactions)
		if err != nil {
			root.Log.WithError(err).Fatal("Rendering output failed")
		}
		fmt.Print(out)
	}

	root.Log.Infof("Parsed %d transactions (%d rows failed, %d rejected)",
		len(result.Transactions), len(result.Failures), result.Rejected)
	if result.PrimaryCurrency != "" {
		root.Log.Infof("Primary currency: %s", result.PrimaryCurrency)
	}
}
