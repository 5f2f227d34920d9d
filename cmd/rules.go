package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/estate-calculator/internal/calculation"
	"github.com/rpgo/estate-calculator/internal/config"
	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/rpgo/estate-calculator/internal/output"
)

var flagRulesYAML bool

var hundred = decimal.NewFromInt(100)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective estate tax tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := config.LoadRules(flagRules)
		if err != nil {
			return err
		}
		if flagRulesYAML {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer func() { _ = enc.Close() }()
			return enc.Encode(rules)
		}
		printRules(cmd.OutOrStdout(), rules)
		return nil
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&flagRulesYAML, "yaml", false, "Dump the rules as YAML (usable as a --rules file)")
	rootCmd.AddCommand(rulesCmd)
}

func printRules(w io.Writer, rules domain.EstateTaxRules) {
	fmt.Fprintf(w, "ESTATE TAX RULES (data year %d)\n", rules.Metadata.DataYear)
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "Federal rate: %s%%\n\n", rules.Federal.Rate.Mul(hundred).StringFixed(0))
	fmt.Fprintln(w, "FEDERAL EXEMPTION BY YEAR:")
	for _, e := range rules.Federal.Exemptions {
		fmt.Fprintf(w, "  %d  %18s\n", e.Year, output.FormatCurrency(e.Exemption))
	}
	fmt.Fprintf(w, "  %d+ %18s\n\n", rules.Federal.PostResetYear, output.FormatCurrency(rules.Federal.PostResetExemption))

	fmt.Fprintln(w, "STATE ESTATE TAXES:")
	resolver := calculation.NewExemptionResolver(rules)
	for _, code := range resolver.StateCodes() {
		st, _ := resolver.StateRules(code)
		top := "0"
		if n := len(st.Brackets); n > 0 {
			top = st.Brackets[n-1].Rate.Mul(hundred).StringFixed(0)
		}
		fmt.Fprintf(w, "  %s  %-22s exemption %16s  top rate %s%%\n", code, st.Name, output.FormatCurrency(st.Exemption), top)
	}
	fmt.Fprintln(w)

	s := rules.Settlement
	fmt.Fprintln(w, "SETTLEMENT:")
	fmt.Fprintf(w, "  Probate: %s%%  Administrative: %s%%  Funeral: %s\n",
		s.ProbateRate.Mul(hundred).StringFixed(1), s.AdministrativeExpenseRate.Mul(hundred).StringFixed(1), output.FormatCurrency(s.FuneralCost))
}
