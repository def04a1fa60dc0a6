package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/dataset/csv"
	"github.com/vuthaihoc/cart/dataset/mongodataset"
	"github.com/vuthaihoc/cart/dataset/redisdataset"
	"github.com/vuthaihoc/cart/dataset/sqldataset"
	"github.com/vuthaihoc/cart/dataset/sqldataset/pgadapter"
	"github.com/vuthaihoc/cart/dataset/sqldataset/sqlite3adapter"
	"github.com/vuthaihoc/cart/feature"
	"github.com/vuthaihoc/cart/feature/yaml"
	"github.com/vuthaihoc/cart/splitter"
	"github.com/vuthaihoc/cart/tree"
	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"
)

// dataCmdConfig holds the flags shared by every command that
// grows a tree from training data.
type dataCmdConfig struct {
	*rootCmdConfig
	dataInput         string
	metadataInput     string
	labelFeature      string
	tableName         string
	redisPrefix       string
	regression        bool
	maxDepth          int
	maxLeafSize       int
	minPurityIncrease float64
	maxDBConns        int
	ctx               context.Context
	cancelFunc        context.CancelFunc
}

func (dcc *dataCmdConfig) declareFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(dcc.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(dcc.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(dcc.labelFeature), "label-feature", "c", "", "name of the feature the grown tree should predict (required)")
	cmd.PersistentFlags().StringVar(&(dcc.tableName), "table", "samples", "name of the table with the samples on SQL inputs")
	cmd.PersistentFlags().StringVar(&(dcc.redisPrefix), "redis-prefix", "cart", "prefix of the keys holding the samples on redis inputs")
	cmd.PersistentFlags().BoolVar(&(dcc.regression), "regression", false, "grow a regression tree with a variance-reduction strategy instead of a classification tree with a Gini strategy")
	cmd.PersistentFlags().IntVar(&(dcc.maxDepth), "max-depth", 0, "maximum depth the tree may grow to (defaults to 0: unbounded)")
	cmd.PersistentFlags().IntVar(&(dcc.maxLeafSize), "max-leaf-size", 0, "number of samples a partition may hold before the tree tries to split it further (defaults to 3)")
	cmd.PersistentFlags().Float64Var(&(dcc.minPurityIncrease), "min-purity-increase", 0, "minimum purity increase a split must achieve to be kept instead of a leaf")
	cmd.PersistentFlags().IntVar(&(dcc.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}

func (dcc *dataCmdConfig) Validate() error {
	if dcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if dcc.labelFeature == "" {
		return fmt.Errorf("required label-feature flag was not set")
	}
	return nil
}

func (dcc *dataCmdConfig) setContextAndCancelFunc() {
	if dcc.ctx == nil {
		dcc.ctx, dcc.cancelFunc = context.WithCancel(context.Background())
	}
}

func (dcc *dataCmdConfig) Context() context.Context {
	dcc.setContextAndCancelFunc()
	return dcc.ctx
}

// loadData reads the feature metadata and the training dataset the
// flags point to, and returns the dataset together with the
// predictor features in column order.
func (dcc *dataCmdConfig) loadData() (dataset.Dataset, []feature.Feature, error) {
	ctx := dcc.Context()
	dcc.Logf("Reading features from metadata at %s...", dcc.metadataInput)
	features, err := yaml.ReadFeaturesFromFile(dcc.metadataInput)
	if err != nil {
		return nil, nil, err
	}
	dcc.Logf("Features from metadata read")
	var label feature.Feature
	predictors := make([]feature.Feature, 0, len(features)-1)
	for _, f := range features {
		if f.Name() == dcc.labelFeature {
			label = f
		} else {
			predictors = append(predictors, f)
		}
	}
	if label == nil {
		return nil, nil, fmt.Errorf("label feature '%s' is not defined", dcc.labelFeature)
	}
	switch {
	case strings.HasPrefix(dcc.dataInput, "postgresql://"):
		adapter, err := pgadapter.New(dcc.dataInput, dcc.maxDBConns)
		if err != nil {
			return nil, nil, fmt.Errorf("opening PostgreSQL dataset: %v", err)
		}
		return sqldataset.Open(adapter, dcc.tableName, predictors, label), predictors, nil
	case strings.HasSuffix(dcc.dataInput, ".db"):
		adapter, err := sqlite3adapter.New(dcc.dataInput, dcc.maxDBConns)
		if err != nil {
			return nil, nil, fmt.Errorf("opening SQLite3 dataset at %s: %v", dcc.dataInput, err)
		}
		return sqldataset.Open(adapter, dcc.tableName, predictors, label), predictors, nil
	case strings.HasPrefix(dcc.dataInput, "mongodb://"):
		session, err := mgo.Dial(dcc.dataInput)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to MongoDB: %v", err)
		}
		return mongodataset.Open(ctx, session, predictors, label), predictors, nil
	case strings.HasPrefix(dcc.dataInput, "redis://"):
		options, err := redis.ParseURL(dcc.dataInput)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %v", err)
		}
		return redisdataset.New(redis.NewClient(options), dcc.redisPrefix, predictors, label), predictors, nil
	case dcc.dataInput == "":
		dcc.Logf("Reading training dataset from STDIN...")
		s, ordered, err := csv.ReadDataset(os.Stdin, features, dcc.labelFeature)
		if err != nil {
			return nil, nil, fmt.Errorf("reading training dataset: %v", err)
		}
		return s, ordered, nil
	}
	dcc.Logf("Opening %s to read training dataset...", dcc.dataInput)
	s, ordered, err := csv.ReadDatasetFromFilePath(dcc.dataInput, features, dcc.labelFeature)
	if err != nil {
		return nil, nil, err
	}
	return s, ordered, nil
}

// growTree grows a tree over the given dataset with the strategy
// and hyperparameters the flags select.
func (dcc *dataCmdConfig) growTree(s dataset.Dataset, predictors []feature.Feature) (*tree.Tree, error) {
	var strategy tree.Strategy
	if dcc.regression {
		strategy = splitter.NewVariance(predictors)
	} else {
		strategy = splitter.NewGini(predictors)
	}
	t, err := tree.New(strategy, tree.Config{
		MaxDepth:          dcc.maxDepth,
		MaxLeafSize:       dcc.maxLeafSize,
		MinPurityIncrease: dcc.minPurityIncrease,
	})
	if err != nil {
		return nil, err
	}
	count, err := s.Count(dcc.Context())
	if err != nil {
		return nil, fmt.Errorf("counting training dataset samples: %v", err)
	}
	dcc.Logf("Growing tree from a dataset with %d samples and %d features to predict %s ...", count, len(predictors), dcc.labelFeature)
	if err := t.Grow(dcc.Context(), s); err != nil {
		return nil, fmt.Errorf("growing the tree: %v", err)
	}
	dcc.Logf("Done")
	return t, nil
}
