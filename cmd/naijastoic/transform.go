package main

import (
	"context"
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/ai"
	"github.com/Odunjoy/NaijaStoic-props/config"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/Odunjoy/NaijaStoic-props/production"
	"github.com/Odunjoy/NaijaStoic-props/seo"
	"github.com/Odunjoy/NaijaStoic-props/utils"
	"github.com/spf13/cobra"
	"io"
	"os"
)

// newGenerator is replaced in tests.
var newGenerator = ai.New

func newTransformCmd() *cobra.Command {
	var (
		scriptFile  string
		text        string
		in          production.Input
		out         string
		printOnly   bool
		printExtras bool
	)
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Transform one script into a production package",
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScript(cmd.InOrStdin(), scriptFile, text)
			if err != nil {
				return err
			}
			in.Script = script

			ctx := context.Background()
			gen, err := newGenerator(ctx, config.TheConfig)
			if err != nil {
				return err
			}
			store, err := seo.Load(config.TheConfig.SeoCsv)
			if err != nil {
				return err
			}
			tr := production.NewTransformer(store, gen, production.OptionsFromConfig(config.TheConfig))

			p, err := tr.Transform(ctx, in)
			if err != nil {
				return err
			}
			if printOnly {
				b, err := p.Marshal()
				if err != nil {
					return err
				}
				if _, err = cmd.OutOrStdout().Write(b); err != nil {
					return err
				}
			} else {
				if out == "" {
					out = config.TheConfig.Output
				}
				path, err := production.Export(out, p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			if printExtras {
				x, err := tr.Extras(p, in)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), utils.AsJson(x))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&scriptFile, "script", "s", "", "script file, - for stdin")
	cmd.Flags().StringVar(&text, "text", "", "script text")
	cmd.Flags().StringVarP(&in.Mode, "template", "t", "auto", "auto or manual:<id>")
	cmd.Flags().StringVar(&in.Style, "style", "", "Luxury, Casual or Streetwise (default DEFAULT_STYLE)")
	cmd.Flags().StringVar(&in.Language, "language", "", "pidgin, mixed or english (default DEFAULT_LANGUAGE)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default OUTPUT)")
	cmd.Flags().StringVar(&in.Animation, "animation", "", "2d_lofi or 3d_cgi, used by --print-extras (default 3d_cgi)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the package instead of exporting it")
	cmd.Flags().BoolVar(&printExtras, "print-extras", false, "also print editing extras: metadata, audio manifest, reference props and platform motion prompts")
	return cmd
}

func readScript(stdin io.Reader, file string, text string) (string, error) {
	switch {
	case text != "" && file != "":
		return "", errs.Newf(errs.InvalidInput, "use either --script or --text")
	case text != "":
		return text, nil
	case file == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", errs.New(errs.InvalidInput, "reading stdin", err)
		}
		return string(b), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", errs.New(errs.InvalidInput, "reading script", err)
		}
		return string(b), nil
	}
	return "", errs.Newf(errs.InvalidInput, "a script is required, pass --script or --text")
}
