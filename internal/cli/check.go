package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/DaveyUS/gridkit/pkg/errors"
	"github.com/DaveyUS/gridkit/pkg/layout"
)

// checkCommand creates the check command for validating layout documents.
// It exits non-zero when the document violates a structural constraint, so
// it slots into CI pipelines that keep committed dashboards valid.
func (c *CLI) checkCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate layout documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed bool
			for _, path := range args {
				if err := c.checkOne(path, quiet); err != nil {
					failed = true
					if !quiet {
						printError("%s: %s", path, apperrors.UserMessage(err))
					}
				}
			}
			if failed {
				return apperrors.New(apperrors.ErrCodeInvalidLayout, "validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-file output")

	return cmd
}

func (c *CLI) checkOne(path string, quiet bool) error {
	l, err := layout.ImportFile(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "load layout")
	}
	c.Config.Grid.applyGridDefaults(l)
	if err := layout.Validate(l); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidLayout, err, "invalid layout")
	}
	if !quiet {
		printSuccess("%s", path)
		printStats(len(l.Items), l.Cols, l.Rows, false)
	}
	return nil
}
