package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/invoice/calc"
	"github.com/smallbiznis/fatura/internal/invoice/domain"
	"github.com/smallbiznis/fatura/internal/invoice/format"
	"github.com/spf13/cobra"
)

type totalsOutput struct {
	Totals    domain.Totals     `json:"totals"`
	Formatted map[string]string `json:"formatted"`
}

func newTotalsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Compute the totals of a draft stored as JSON",
		Example: `  fatura totals -f draft.json
  CLAMP_PERCENTAGES=true fatura totals -f draft.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			d, err := readDraft(file)
			if err != nil {
				return err
			}

			totals := calc.Policy{ClampPercentages: cfg.Invoice.ClampPercentages}.Compute(d)
			out := totalsOutput{
				Totals: totals,
				Formatted: map[string]string{
					"subtotal":       format.Money(totals.Subtotal, d.Currency),
					"discountAmount": format.Money(totals.DiscountAmount, d.Currency),
					"taxableAmount":  format.Money(totals.TaxableAmount, d.Currency),
					"taxAmount":      format.Money(totals.TaxAmount, d.Currency),
					"extraTotal":     format.Money(totals.ExtraTotal, d.Currency),
					"total":          format.Money(totals.Total, d.Currency),
				},
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "draft JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readDraft decodes a draft from path, or stdin when path is "-".
func readDraft(path string) (domain.Draft, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Draft{}, err
	}

	var d domain.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.Draft{}, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}
	return d, nil
}
