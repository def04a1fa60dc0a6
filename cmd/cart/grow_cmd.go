package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	cart "github.com/vuthaihoc/cart"
	"github.com/vuthaihoc/cart/dataset"
)

type growCmdConfig struct {
	*dataCmdConfig
	testPercent int
	seed        int64
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{dataCmdConfig: &dataCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a dataset",
		Long:  `Grow a tree from a dataset to predict a certain feature, evaluate it on a test split and report its feature importances.`,
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
			trainSet := s
			var testSet dataset.Dataset
			if config.testPercent > 0 {
				r := rand.New(rand.NewSource(config.seed))
				trainSet, testSet, err = cart.Holdout(config.Context(), s, 100-config.testPercent, r)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
			}
			t, err := config.growTree(trainSet, predictors)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			fmt.Print(t)
			if testSet != nil {
				if config.regression {
					mse, err := cart.MeanSquaredError(config.Context(), t, testSet)
					if err != nil {
						fmt.Fprintln(os.Stderr, err)
						os.Exit(5)
					}
					fmt.Printf("Mean squared error on test split: %g\n", mse)
				} else {
					accuracy, err := cart.Accuracy(config.Context(), t, testSet)
					if err != nil {
						fmt.Fprintln(os.Stderr, err)
						os.Exit(5)
					}
					fmt.Printf("Accuracy on test split: %.2f%%\n", accuracy*100)
				}
			}
			printImportances(t, predictors)
		},
	}
	config.declareFlags(cmd)
	cmd.Flags().IntVar(&(config.testPercent), "test-percent", 0, "percentage of samples to hold out of growing and evaluate the tree on (defaults to 0: no test split)")
	cmd.Flags().Int64Var(&(config.seed), "seed", time.Now().Unix(), "seed for the random sampling of the test split")
	return cmd
}
