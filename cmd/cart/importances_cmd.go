package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vuthaihoc/cart/feature"
	"github.com/vuthaihoc/cart/tree"
)

func importancesCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &dataCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "importances",
		Short: "Report the feature importances of a grown tree",
		Long:  `Grow a tree from a dataset and report the normalized share of purity increase each feature contributed.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			s, predictors, err := config.loadData()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, err := config.growTree(s, predictors)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			printImportances(t, predictors)
		},
	}
	config.declareFlags(cmd)
	return cmd
}

func printImportances(t *tree.Tree, predictors []feature.Feature) {
	importances := t.FeatureImportances()
	if len(importances) == 0 {
		return
	}
	fmt.Println("Feature importances:")
	for _, imp := range importances {
		fmt.Printf("  %-20s %.4f\n", predictors[imp.Column].Name(), imp.Score)
	}
}
