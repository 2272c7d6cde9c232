package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/brandalign/brandalign/internal/analysis"
	"github.com/brandalign/brandalign/internal/db"
	"github.com/brandalign/brandalign/internal/db/controller/brand"
	"github.com/brandalign/brandalign/internal/db/controller/history"
	"github.com/brandalign/brandalign/internal/genai"
	"github.com/brandalign/brandalign/internal/governance"
	"github.com/brandalign/brandalign/internal/upload"
)

func init() { //nolint: gochecknoinits
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeOpts.purpose, "purpose", string(governance.PurposeMarketing), "purpose of the asset")
	f.StringVar(&analyzeOpts.region, "region", governance.DefaultRegion, "target region")
	f.StringVar(&analyzeOpts.assetType, "asset-type", "", "asset type, derived from the file extension when empty")
	f.StringVar(&analyzeOpts.fixIntensity, "fix-intensity", string(governance.FixMedium), "rewrite intensity: Low, Medium or High")
	f.StringVar(&analyzeOpts.context, "context", "", "additional context for the reviewer")
	f.BoolVar(&analyzeOpts.record, "record", false, "store the result in the history")

	rootCmd.AddCommand(analyzeCmd)
}

type analyzeOptions struct {
	purpose      string
	region       string
	assetType    string
	fixIntensity string
	context      string
	record       bool
}

var (
	analyzeOpts analyzeOptions

	analyzeCmd = &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a single file against the brand guidelines and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: runAnalyze,
	}
)

// analysisContext checks the flags and fills the asset type from the upload when not given.
func (o analyzeOptions) analysisContext(detected governance.AssetType) (governance.AnalysisContext, error) {
	actx := governance.AnalysisContext{
		Purpose:           governance.Purpose(o.purpose),
		Region:            o.region,
		AssetType:         governance.AssetType(o.assetType),
		FixIntensity:      governance.FixIntensity(o.fixIntensity),
		AdditionalContext: o.context,
	}

	if actx.AssetType == "" {
		actx.AssetType = detected
	}

	if !actx.Purpose.Valid() {
		return actx, errors.Errorf("unknown purpose %q", o.purpose)
	}

	if !actx.AssetType.Valid() {
		return actx, errors.Errorf("unknown asset type %q", actx.AssetType)
	}

	switch actx.FixIntensity {
	case governance.FixLow, governance.FixMedium, governance.FixHigh:
	default:
		return actx, errors.Errorf("unknown fix intensity %q", o.fixIntensity)
	}

	return actx, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	filename := filepath.Base(args[0])

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	res, err := upload.Intake(filename, "", raw, cfg.Upload.MaxFileSize)
	if err != nil {
		return err
	}

	state := governance.DefaultUploadState()
	upload.Apply(&state, filename, res)

	content, err := upload.Content(&state)
	if err != nil {
		return err
	}

	actx, err := analyzeOpts.analysisContext(state.AssetType)
	if err != nil {
		return err
	}

	gdb, err := db.Open(&cfg)
	if err != nil {
		return err
	}

	if err = genai.Open(ctx, gdb, &cfg.Model); err != nil {
		return err
	}

	settings, err := brand.Load(gdb)
	if err != nil {
		return err
	}

	result, err := analysis.New(&genai.Engine, cfg.Model.Temperature).Analyze(ctx, content, actx, settings)
	if err != nil {
		return err
	}

	if analyzeOpts.record {
		item := governance.NewHistoryItem(filename, actx, result, settings, time.Now())
		if _, err = history.Create(gdb, item); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}
