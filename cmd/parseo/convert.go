package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/JonMunkholm/parseos/internal/sheet"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	out          string
	sheet        string
	headerRow    int
	delimiter    string
	retenciones  string
	percepciones string
}

func newConvertCmd(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <format> [file]",
		Short: "Convert a spreadsheet into a filing text file",
		Long: `Convert reads a CSV or XLSX file and writes the text file of the given format.

Formats that need two sources take them from --retenciones and --percepciones
instead of the positional file. Run 'parseo formats' to list the formats.`,
		Example: `  parseo convert arciba retenciones.xlsx --out arciba.txt
  parseo convert sicore-ganancias pagos.csv --delimiter ';'
  parseo convert iva-cuadro-compras cuadro.xlsx --sheet Compras
  parseo convert arciba-drogueria-vip --retenciones ret.xlsx --percepciones perc.xlsx`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "", "Write the result to this file instead of stdout")
	f.StringVar(&opts.sheet, "sheet", "", "Workbook sheet to read (default: first sheet)")
	f.IntVar(&opts.headerRow, "header-row", 0, "1-based row holding the headers (default: the format's)")
	f.StringVar(&opts.delimiter, "delimiter", "", "CSV delimiter; 'tab' for tabs (default: sniffed)")
	f.StringVar(&opts.retenciones, "retenciones", "", "Retenciones file for two-source formats")
	f.StringVar(&opts.percepciones, "percepciones", "", "Percepciones file for two-source formats")

	return cmd
}

func (a *app) convert(cmd *cobra.Command, args []string, opts convertOptions) error {
	key := args[0]
	info, ok := a.service.Format(key)
	if !ok {
		return fmt.Errorf("%w %q (known: %s)", core.ErrUnknownFormat, key, strings.Join(core.Keys(), ", "))
	}

	readOpts, err := opts.sheetOptions(info)
	if err != nil {
		return err
	}

	paths, err := opts.sourcePaths(info, args[1:])
	if err != nil {
		return describe(err)
	}

	sources := make(core.Sources, len(paths))
	for _, name := range info.Sources {
		path := paths[name]
		tbl, err := sheet.ReadFile(path, readOpts)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		a.logger.Debug("source read",
			"source", name,
			"path", path,
			"headers", len(tbl.Headers),
			"rows", len(tbl.Rows),
		)
		sources[name] = tbl
	}

	ctx := core.ContextWithOrigin(cmd.Context(), "cli")
	res, err := a.service.Transform(ctx, key, sources)
	if err != nil {
		return describe(err)
	}

	if opts.out == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), res.Text)
		return err
	}

	if err := os.WriteFile(opts.out, []byte(res.Text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	a.logger.Info("output written",
		"path", opts.out,
		"lines", res.Lines,
		"conversion_id", res.ConversionID,
	)
	return nil
}

func (o convertOptions) sheetOptions(info core.FormatInfo) (sheet.Options, error) {
	opts := sheet.Options{Sheet: o.sheet, HeaderRow: info.HeaderRow}

	switch {
	case o.headerRow < 0:
		return opts, fmt.Errorf("--header-row must be positive, got %d", o.headerRow)
	case o.headerRow > 0:
		opts.HeaderRow = o.headerRow
	}

	if o.delimiter != "" {
		d, err := sheet.ParseDelimiter(o.delimiter)
		if err != nil {
			return opts, fmt.Errorf("--delimiter: %w", err)
		}
		opts.Delimiter = d
	}
	return opts, nil
}

// sourcePaths maps each source the format needs to the file it is read from.
func (o convertOptions) sourcePaths(info core.FormatInfo, files []string) (map[string]string, error) {
	paths := make(map[string]string, len(info.Sources))

	for _, name := range info.Sources {
		switch name {
		case core.SourceMain:
			if len(files) == 0 {
				return nil, fmt.Errorf("%s needs an input file", info.Key)
			}
			paths[name] = files[0]
		case core.SourceRetenciones:
			paths[name] = o.retenciones
		case core.SourcePercepciones:
			paths[name] = o.percepciones
		}
	}

	if _, single := paths[core.SourceMain]; !single {
		if len(files) > 0 {
			return nil, fmt.Errorf("%s reads --retenciones and --percepciones, not a positional file", info.Key)
		}
		for _, path := range paths {
			if path == "" {
				return nil, core.ErrMissingSources
			}
		}
	}
	return paths, nil
}

// describe appends the user-facing message, and any missing columns, to a
// conversion error.
func describe(err error) error {
	if !core.IsUserFacing(err) {
		return err
	}

	var b strings.Builder
	b.WriteString(core.FormatUserError(err))

	var merr *core.MissingColumnsError
	if errors.As(err, &merr) {
		fmt.Fprintf(&b, "\n  missing columns: %s", strings.Join(merr.Columns, ", "))
		if merr.Hint != "" {
			fmt.Fprintf(&b, "\n  %s", merr.Hint)
		}
	}
	return fmt.Errorf("%w\n  %s", err, b.String())
}
