package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/format"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var parseAttributes bool
	var parseSignatures bool
	var skipUnknown bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "parse <file.class>",
		Short: "Parse a class file and dump its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, haveConfig, err := loadConfig()
			if err != nil {
				return err
			}

			// Flags win; the config file supplies defaults for flags
			// the user did not pass.
			opt := classfile.ParsingOptions{
				ParseAttributes:       parseAttributes,
				ParseSignatures:       parseSignatures,
				SkipUnknownAttributes: skipUnknown,
				Strict:                strict,
			}
			if haveConfig {
				fileOpt := cfg.Parse.options()
				if !cmd.Flags().Changed("attributes") {
					opt.ParseAttributes = fileOpt.ParseAttributes
				}
				if !cmd.Flags().Changed("signatures") {
					opt.ParseSignatures = fileOpt.ParseSignatures
				}
				if !cmd.Flags().Changed("skip-unknown") {
					opt.SkipUnknownAttributes = fileOpt.SkipUnknownAttributes
				}
				if !cmd.Flags().Changed("strict") {
					opt.Strict = fileOpt.Strict
				}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read class file: %w", err)
			}
			cf, err := classfile.ParseBytes(data, opt)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "cbor":
				encoder = format.NewCBOREncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(cf); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, cbor)")
	cmd.Flags().BoolVar(&parseAttributes, "attributes", true, "decode attribute bodies")
	cmd.Flags().BoolVar(&parseSignatures, "signatures", false, "parse generic signatures")
	cmd.Flags().BoolVar(&skipUnknown, "skip-unknown", false, "drop unknown attributes")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject unsupported class file versions")

	return cmd
}
