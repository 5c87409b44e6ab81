package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jaallen85/jade-py-sub000/pkg/export"
	"github.com/jaallen85/jade-py-sub000/pkg/script"
	"github.com/jaallen85/jade-py-sub000/pkg/store"
)

func addRun(topLevel *cobra.Command) {
	var outPath string
	var svgPath string
	var grid float64

	cmd := &cobra.Command{
		Use:   "run script.lisp",
		Short: "Evaluate a drawing script.",
		Example: `
jade run drawing.lisp
jade run drawing.lisp --out drawing.json --svg drawing.svg
jade run drawing.lisp --grid 5
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("grid") {
				grid = cfg.Grid()
			}

			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			eng := script.NewEngine(cfg.PageName(), grid)
			session, evalErrs, err := eng.Evaluate(string(source))
			if err != nil {
				return err
			}
			if len(evalErrs) > 0 {
				errColor := color.New(color.FgRed)
				for _, e := range evalErrs {
					_, _ = errColor.Fprintf(os.Stderr, "%s: %s\n", args[0], e.Error())
				}
				return fmt.Errorf("%d error(s) in %s", len(evalErrs), args[0])
			}

			fmt.Printf("%s: %d item(s)\n", session.Page.Name(), len(session.Page.Items()))

			if outPath != "" {
				if err := store.SaveFile(outPath, session.Page); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", outPath)
			}
			if svgPath != "" {
				if err := export.WriteFile(svgPath, session.Page); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", svgPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Save the resulting drawing as JSON.")
	cmd.Flags().StringVar(&svgPath, "svg", "", "Export the resulting drawing as SVG.")
	cmd.Flags().Float64Var(&grid, "grid", 0, "Grid spacing for placement snapping (0 disables).")

	topLevel.AddCommand(cmd)
}
