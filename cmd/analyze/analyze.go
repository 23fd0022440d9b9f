// Package analyze implements the structural inspection command.
package analyze

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"fjacquet/bank-csv/cmd/root"
	"fjacquet/bank-csv/internal/analyzer"
	"fjacquet/bank-csv/internal/common"
)

// Cmd represents the analyze command.
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Inspect a file's structure without parsing it",
	Long: `Report the detected encoding, delimiter ranking, header presence, and
corruption indicators of an export file. Useful to understand why a file
parses badly before running normalize.`,
	Run: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Error("No input file specified, use --input")
		return
	}
	if err := common.ValidateFile(root.SharedFlags.Input, root.Cfg.Parsing.MaxFileBytes); err != nil {
		root.Log.WithError(err).Fatal("File rejected")
	}

	data, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		root.Log.WithError(err).Fatal("Cannot read file")
	}

	summary := analyzer.New(root.Logger()).Analyze(data)

	fmt.Printf("File:      %s (%d bytes)\n", root.SharedFlags.Input, summary.FileSize)
	fmt.Printf("Encoding:  %s\n", summary.Encoding)
	fmt.Printf("Columns:   %d (header detected: %v)\n", summary.ColumnCount, summary.HasHeader)
	fmt.Printf("Rows:      %d\n", summary.RowCount)

	fmt.Println("Delimiters by frequency:")
	for _, dc := range summary.Delimiters {
		fmt.Printf("  %q: %d\n", dc.Delimiter, dc.Count)
	}

	if summary.Corrupted() {
		indicators := append([]string(nil), summary.CorruptionIndicators...)
		sort.Strings(indicators)
		fmt.Println("Corruption indicators:")
		for _, ind := range indicators {
			fmt.Printf("  - %s\n", ind)
		}
	} else {
		fmt.Println("No corruption indicators found.")
	}
}
