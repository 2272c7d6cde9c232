package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brandalign/brandalign/internal/db"
	"github.com/brandalign/brandalign/internal/db/controller/brand"
	"github.com/brandalign/brandalign/internal/governance"
)

// Guideline file formats.
const (
	formatYAML = "yaml"
	formatTOML = "toml"
	formatJSON = "json"
)

// ErrUnknownFormat is returned for guideline files that are neither yaml, toml nor json.
var ErrUnknownFormat = errors.New("unknown guideline file format")

func init() { //nolint: gochecknoinits
	settingsExportCmd.Flags().StringVar(&exportFormat, "format", formatYAML, "output format: yaml, toml or json")

	settingsCmd.AddCommand(settingsImportCmd, settingsExportCmd)
	rootCmd.AddCommand(settingsCmd)
}

var (
	exportFormat string

	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Manage the brand guidelines",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
	}

	settingsImportCmd = &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the brand guidelines with the content of a yaml, toml or json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			s, err := decodeSettings(formatFromPath(args[0]), raw)
			if err != nil {
				return err
			}

			gdb, err := db.Open(&cfg)
			if err != nil {
				return err
			}

			if err = brand.Save(gdb, s); err != nil {
				return err
			}

			log.Info().Str("file", args[0]).Str("version", s.VersionLabel()).Msg("brand guidelines imported")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %s as %s\n", s.BrandName, s.VersionLabel())

			return err
		},
	}

	settingsExportCmd = &cobra.Command{
		Use:   "export",
		Short: "Print the current brand guidelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, err := db.Open(&cfg)
			if err != nil {
				return err
			}

			s, err := brand.Load(gdb)
			if err != nil {
				return err
			}

			return encodeSettings(cmd.OutOrStdout(), exportFormat, s)
		},
	}
)

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".toml":
		return formatTOML
	case ".json":
		return formatJSON
	default:
		return ""
	}
}

// decodeSettings parses and validates a guideline file.
func decodeSettings(format string, raw []byte) (*governance.BrandSettings, error) {
	var (
		s   governance.BrandSettings
		err error
	)

	switch format {
	case formatYAML:
		err = yaml.Unmarshal(raw, &s)
	case formatTOML:
		_, err = toml.Decode(string(raw), &s)
	case formatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	default:
		return nil, errors.Wrap(ErrUnknownFormat, format)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s guidelines", format)
	}

	if err = validator.New().Struct(s); err != nil {
		return nil, errors.Wrap(err, "invalid guidelines")
	}

	return &s, nil
}

func encodeSettings(w io.Writer, format string, s governance.BrandSettings) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(s); err != nil {
			return err
		}

		return enc.Close()
	case formatTOML:
		return toml.NewEncoder(w).Encode(s)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(s)
	default:
		return errors.Wrap(ErrUnknownFormat, format)
	}
}
