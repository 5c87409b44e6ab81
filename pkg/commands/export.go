package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaallen85/jade-py-sub000/pkg/export"
	"github.com/jaallen85/jade-py-sub000/pkg/store"
)

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export drawing.json out.svg",
		Short: "Convert a saved drawing to SVG.",
		Example: `
jade export drawing.json drawing.svg
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := store.LoadFile(args[0], store.NewRegistry())
			if err != nil {
				return err
			}
			if err := export.WriteFile(args[1], page); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d item(s))\n", args[1], len(page.Items()))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
