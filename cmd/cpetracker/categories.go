package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supercpe/cpe-tracker/constants"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the reporting categories and their CE Broker subjects",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range constants.FieldsOfStudy() {
			subjects := constants.SubjectsFor(f)
			names := make([]string, len(subjects))
			for i, s := range subjects {
				names[i] = string(s)
			}
			fmt.Printf("%-30s -> %v\n", f, names)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
