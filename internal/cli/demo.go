package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/DaveyUS/gridkit/pkg/errors"
	"github.com/DaveyUS/gridkit/pkg/layout"
)

// demoCommand creates the demo command, an interactive terminal editor for
// layout documents. Without a file argument it starts from a small sample
// grid; with --save, committed edits write back to the file on exit.
func (c *CLI) demoCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "demo [file]",
		Short: "Edit a layout interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				l    *layout.Layout
				path string
				err  error
			)
			if len(args) == 1 {
				path = args[0]
				l, err = layout.ImportFile(path)
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "load layout %s", path)
				}
			} else {
				l = sampleLayout()
			}
			c.Config.Grid.applyGridDefaults(l)
			if err := layout.Validate(l); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidLayout, err, "layout")
			}

			model, err := NewEditorModel(l)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}

			m, ok := final.(EditorModel)
			if !ok || !m.Dirty {
				return nil
			}
			if save && path != "" && m.Saved != nil {
				if err := layout.ExportFile(m.Saved, path); err != nil {
					return err
				}
				printSuccess("Saved %s", path)
			} else if m.Dirty {
				printWarning("Edits discarded (run with --save and a file to persist)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "write committed edits back to the file on exit")

	return cmd
}

// sampleLayout is the grid shown when demo runs without a file.
func sampleLayout() *layout.Layout {
	return &layout.Layout{
		Cols:      8,
		Collision: "push",
		Items: []layout.Item{
			{ID: "a", X: 0, Y: 0, W: 3, H: 2, Label: "Chart"},
			{ID: "b", X: 3, Y: 0, W: 2, H: 1, Label: "Stats"},
			{ID: "c", X: 5, Y: 0, W: 3, H: 1, Label: "Feed"},
			{ID: "d", X: 3, Y: 1, W: 2, H: 2, Label: "Table"},
		},
	}
}
