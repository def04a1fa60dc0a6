package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vuthaihoc/cart/dataset/csv"
)

type predictCmdConfig struct {
	*dataCmdConfig
	samplesInput string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{dataCmdConfig: &dataCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the label of unlabeled samples",
		Long:  `Grow a tree from a dataset and use it to predict the label feature of unlabeled samples read as CSV.`,
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
			samplesFile := os.Stdin
			if config.samplesInput != "" {
				samplesFile, err = os.Open(config.samplesInput)
				if err != nil {
					fmt.Fprintf(os.Stderr, "opening samples at %s: %v\n", config.samplesInput, err)
					os.Exit(4)
				}
				defer samplesFile.Close()
			}
			vectors, err := csv.ReadVectors(samplesFile, predictors)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading samples to predict: %v\n", err)
				os.Exit(5)
			}
			for i, vector := range vectors {
				leaf, err := t.Search(config.Context(), vector)
				if err != nil {
					fmt.Fprintf(os.Stderr, "predicting sample %d: %v\n", i+1, err)
					os.Exit(6)
				}
				if leaf.Probabilities != nil {
					fmt.Printf("%v (p=%.4f)\n", leaf.Outcome, leaf.Probabilities[leaf.Outcome.String()])
				} else {
					fmt.Printf("%v\n", leaf.Outcome)
				}
			}
		},
	}
	config.declareFlags(cmd)
	cmd.Flags().StringVarP(&(config.samplesInput), "samples", "s", "", "path to a CSV file with the unlabeled samples to predict (defaults to STDIN)")
	return cmd
}
