// Package common holds output and file helpers shared by the commands and
// the pipeline.
package common

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"fjacquet/bank-csv/internal/models"
)

// WriteTransactionsCSV writes normalized transactions to a CSV file.
func WriteTransactionsCSV(path string, txs []*models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&txs, f); err != nil {
		return fmt.Errorf("writing transactions: %w", err)
	}
	return nil
}

// MarshalTransactionsCSV renders normalized transactions as a CSV string,
// used when output goes to stdout.
func MarshalTransactionsCSV(txs []*models.Transaction) (string, error) {
	out, err := gocsv.MarshalString(&txs)
	if err != nil {
		return "", fmt.Errorf("marshaling transactions: %w", err)
	}
	return out, nil
}
