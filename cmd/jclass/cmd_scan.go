package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/jclass/classfile"
)

var log = commonlog.GetLogger("jclass.scan")

func newScanCmd() *cobra.Command {
	var verbosity int
	var strict bool

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Parse every class file under a directory and report failures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)

			cfg, haveConfig, err := loadConfig()
			if err != nil {
				return err
			}
			opt := classfile.ParsingOptions{ParseAttributes: true, Strict: strict}
			if haveConfig {
				fileOpt := cfg.Parse.options()
				opt.ParseSignatures = fileOpt.ParseSignatures
				opt.SkipUnknownAttributes = fileOpt.SkipUnknownAttributes
				if !cmd.Flags().Changed("strict") {
					opt.Strict = fileOpt.Strict
				}
			}

			var parsed, failed int
			err = filepath.WalkDir(args[0], func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !strings.HasSuffix(path, ".class") {
					return nil
				}

				data, err := os.ReadFile(path)
				if err != nil {
					failed++
					log.Errorf("%s: %s", path, err.Error())
					return nil
				}
				cf, err := classfile.ParseBytes(data, opt)
				if err != nil {
					failed++
					log.Errorf("%s: %s", path, err.Error())
					return nil
				}
				parsed++
				log.Infof("%s: %s (%s)", path, cf.ClassName(), cf.JavaVersion())
				return nil
			})
			if err != nil {
				return fmt.Errorf("scan %s: %w", args[0], err)
			}

			fmt.Printf("%d parsed, %d failed\n", parsed, failed)
			if failed > 0 {
				return fmt.Errorf("%d class files failed to parse", failed)
			}
			return nil
		},
	}

	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject unsupported class file versions")

	return cmd
}
