package main

import (
	"os"

	"fjacquet/bank-csv/cmd/analyze"
	"fjacquet/bank-csv/cmd/normalize"
	"fjacquet/bank-csv/cmd/root"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(normalize.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
