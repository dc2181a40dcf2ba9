package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/i18n"
	"github.com/smallbiznis/fatura/internal/invoice/calc"
	"github.com/smallbiznis/fatura/internal/invoice/render"
	"github.com/smallbiznis/fatura/internal/providers/pdf"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	formatHTML  = "html"
	formatPrint = "print"
	formatPDF   = "pdf"
)

func newRenderCmd() *cobra.Command {
	var (
		file      string
		output    string
		outFormat string
		lang      string
		themeMode string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a draft stored as JSON to HTML, a print document, or PDF",
		Example: `  fatura render -f draft.json --format html > preview.html
  fatura render -f draft.json --format pdf --lang en
  fatura render -f draft.json --format print -o print.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			language, err := i18n.ParseLanguage(firstNonEmpty(lang, cfg.Invoice.DefaultLanguage))
			if err != nil {
				return err
			}
			labels, err := config.NewLabelsHolder(cfg, log)
			if err != nil {
				return err
			}

			d, err := readDraft(file)
			if err != nil {
				return err
			}
			totals := calc.Policy{ClampPercentages: cfg.Invoice.ClampPercentages}.Compute(d)
			doc := render.Build(d, totals, i18n.NewCatalog(labels).Table(language), language,
				firstNonEmpty(themeMode, cfg.Invoice.DefaultThemeMode))

			outFormat = strings.ToLower(strings.TrimSpace(outFormat))
			content, err := renderAs(cmd.Context(), outFormat, doc)
			if err != nil {
				return err
			}

			target := output
			if target == "" && outFormat == formatPDF {
				target = doc.FileName
			}
			if target == "" || target == "-" {
				_, err = cmd.OutOrStdout().Write(content)
				return err
			}
			if err := os.WriteFile(target, content, 0o644); err != nil {
				return err
			}
			log.Info("document written", zap.String("path", target), zap.String("format", outFormat))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "draft JSON file, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, - for stdout (pdf defaults to fatura-<number>.pdf)")
	cmd.Flags().StringVar(&outFormat, "format", formatHTML, "html | print | pdf")
	cmd.Flags().StringVar(&lang, "lang", "", "label language: tr | en")
	cmd.Flags().StringVar(&themeMode, "theme-mode", "", "light | dark")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func renderAs(ctx context.Context, outFormat string, doc render.Document) ([]byte, error) {
	switch outFormat {
	case formatHTML:
		page, err := render.NewRenderer().RenderHTML(doc)
		return []byte(page), err
	case formatPrint:
		markup, err := render.NewRenderer().RenderMarkup(doc)
		if err != nil {
			return nil, err
		}
		return []byte(render.PrintHTML(markup, render.Styles)), nil
	case formatPDF:
		if ctx == nil {
			ctx = context.Background()
		}
		return pdf.New().GenerateInvoice(ctx, doc)
	default:
		return nil, fmt.Errorf("unsupported format %q", outFormat)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
