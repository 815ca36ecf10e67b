package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coolbeans/taxid/pkg/fixtures"
	"github.com/coolbeans/taxid/pkg/gst"
	"github.com/coolbeans/taxid/pkg/lookup"
	"github.com/coolbeans/taxid/pkg/taxid"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "taxid",
		Short: "National tax-identifier toolkit",
		Long: `Taxid validates, parses, formats, and generates national tax
identifiers: India GSTIN/PAN/HSN/SAC, Spain NIF/NIE/CIF/VAT, Japan
Corporate and Invoice Registration Numbers, and UK VAT/Company/UTR/
NINO/PAYE references.

All operations are pure string computations against static lookup
tables; nothing touches the network or disk except the batch,
fixtures, and watch commands, which read local files.`,
		Version: version,
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(formatCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(fixturesCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(kindsCmd())
	rootCmd.AddCommand(lookupCmd())
	rootCmd.AddCommand(gstCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printJSON writes indented JSON to stdout.
func printJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// describeResult renders one validation result as a human-readable line.
func describeResult(result taxid.ValidationResult) string {
	if result.Valid {
		return fmt.Sprintf("VALID    %s", result.Normalized)
	}
	return fmt.Sprintf("INVALID  %s  (%s: %s)", result.Normalized, result.Err.Kind, result.Err.Message)
}

func validateCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate KIND VALUE...",
		Short: "Validate one or more identifiers",
		Long: `Validate identifiers of the given kind.

Example:
  taxid validate gstin 27AAPFU0939F1ZV
  taxid validate nif 12345678Z 12345678X --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := taxid.Kind(args[0])
			results, err := taxid.ValidateMany(kind, args[1:])
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(results)
			}
			anyInvalid := false
			for _, result := range results {
				fmt.Println(describeResult(result))
				if !result.Valid {
					anyInvalid = true
				}
			}
			if anyInvalid {
				return fmt.Errorf("one or more identifiers failed validation")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	return cmd
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse KIND VALUE",
		Short: "Decompose an identifier into named segments",
		Long: `Parse a valid identifier into its semantic segments, resolving
lookup codes (e.g. the state behind a GSTIN's state code).

Example:
  taxid parse gstin 27AAPFU0939F1ZV`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := taxid.Parse(taxid.Kind(args[0]), args[1])
			if err != nil {
				return err
			}
			return printJSON(parsed)
		},
	}
}

func formatCmd() *cobra.Command {
	var separator string

	cmd := &cobra.Command{
		Use:   "format KIND VALUE",
		Short: "Render an identifier with display separators",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatted, err := taxid.Format(taxid.Kind(args[0]), args[1], separator)
			if err != nil {
				return err
			}
			fmt.Println(formatted)
			return nil
		},
	}

	cmd.Flags().StringVar(&separator, "separator", "", "Separator to insert (default: the kind's canonical one)")
	return cmd
}

func generateCmd() *cobra.Command {
	var segmentFlags []string

	cmd := &cobra.Command{
		Use:   "generate KIND",
		Short: "Generate a valid identifier from partial segments",
		Long: `Generate a canonical identifier, filling unsupplied segments with
deterministic defaults and computing the check digit.

Example:
  taxid generate gstin --segment state=29 --segment pan=AAACI1234F
  taxid generate jp-corporate --segment base=000012345678`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments := make(map[string]string, len(segmentFlags))
			for _, flag := range segmentFlags {
				name, value, found := strings.Cut(flag, "=")
				if !found || name == "" {
					return fmt.Errorf("segment flag must be name=value, got %q", flag)
				}
				segments[name] = value
			}
			value, err := taxid.Generate(taxid.Kind(args[0]), segments)
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&segmentFlags, "segment", nil, "Segment value as name=value (repeatable)")
	return cmd
}

func batchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch KIND FILE",
		Short: "Validate a file of identifiers, one per line",
		Long: `Validate every identifier in a file. Blank lines and lines starting
with # are skipped. Results keep the input order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			var values []string
			for _, line := range strings.Split(string(data), "\n") {
				trimmed := strings.TrimSpace(line)
				if trimmed == "" || strings.HasPrefix(trimmed, "#") {
					continue
				}
				values = append(values, trimmed)
			}
			results, err := taxid.ValidateMany(taxid.Kind(args[0]), values)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(results)
			}
			validCount := 0
			for _, result := range results {
				fmt.Println(describeResult(result))
				if result.Valid {
					validCount++
				}
			}
			fmt.Printf("\n%d/%d valid\n", validCount, len(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	return cmd
}

func fixturesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fixtures FILE",
		Short: "Generate identifier batches from a YAML fixture spec",
		Long: `Generate batches of valid identifiers from a YAML specification:

  fixtures:
    - name: maharashtra-vendors
      kind: gstin
      count: 3
      segments:
        state: "27"

Every generated identifier is revalidated before being printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := fixtures.LoadFile(args[0])
			if err != nil {
				return err
			}
			generated, err := set.Generate()
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(generated)
			}
			for _, item := range generated {
				fmt.Printf("%-30s %-14s %s\n", item.Name, item.Kind, item.Value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch KIND FILE",
		Short: "Revalidate a file of identifiers on every change",
		Long: `Watch a file of identifiers (one per line) and rerun validation each
time it is written. Useful while editing seed files by hand.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := fixtures.NewWatcher(taxid.Kind(args[0]), args[1], func(results []fixtures.LineResult) {
				validCount := 0
				for _, line := range results {
					fmt.Printf("%4d  %s\n", line.Line, describeResult(line.Result))
					if line.Result.Valid {
						validCount++
					}
				}
				fmt.Printf("---- %d/%d valid\n", validCount, len(results))
			})
			if err != nil {
				return err
			}
			if err := watcher.Start(); err != nil {
				return err
			}
			defer watcher.Stop()

			fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", args[1])
			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			<-interrupt
			return nil
		},
	}
}

func kindsCmd() *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List supported identifier kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			var kinds []taxid.Kind
			if country != "" {
				kinds = taxid.DefaultRegistry().ListByCountry(taxid.Country(strings.ToUpper(country)))
			} else {
				kinds = taxid.Kinds()
			}
			for _, kind := range kinds {
				fmt.Println(kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Filter by country code (IN, ES, JP, UK)")
	return cmd
}

func lookupCmd() *cobra.Command {
	var code string
	var name string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "lookup {states|cif-types}",
		Short: "Query the static lookup tables",
		Long: `Query the built-in lookup tables.

Example:
  taxid lookup states --code 27
  taxid lookup states --active-only
  taxid lookup cif-types --code B`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var table *lookup.Table
			switch args[0] {
			case "states":
				table = lookup.IndiaStates()
			case "cif-types":
				table = lookup.SpainCIFTypes()
			default:
				return fmt.Errorf("unknown lookup table %q (want states or cif-types)", args[0])
			}

			if code != "" {
				entry, ok := table.ByCode(strings.ToUpper(code))
				if !ok {
					return fmt.Errorf("code %q not found", code)
				}
				return printJSON(entry)
			}
			if name != "" {
				entry, ok := table.ByName(name)
				if !ok {
					return fmt.Errorf("name %q not found", name)
				}
				return printJSON(entry)
			}

			var filter func(lookup.Entry) bool
			if activeOnly {
				filter = lookup.Active
			}
			for _, entry := range table.List(filter) {
				status := ""
				if !entry.Active {
					status = "  (inactive)"
				}
				fmt.Printf("%-4s %s%s\n", entry.Code, entry.Name, status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Look up a single entry by code")
	cmd.Flags().StringVar(&name, "name", "", "Look up a single entry by display name")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "List only active entries")
	return cmd
}

func gstCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gst",
		Short: "India GST business rules",
	}
	cmd.AddCommand(gstTypeCmd())
	cmd.AddCommand(gstSplitCmd())
	cmd.AddCommand(gstHSNDigitsCmd())
	return cmd
}

func gstTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type SUPPLIER_GSTIN RECIPIENT_GSTIN",
		Short: "Derive the transaction type between two GSTINs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			determination, err := gst.DetermineTransactionType(args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(determination)
		},
	}
}

func gstSplitCmd() *cobra.Command {
	var rate float64

	cmd := &cobra.Command{
		Use:   "split SUPPLIER_GSTIN RECIPIENT_GSTIN",
		Short: "Split a GST rate across tax components",
		Long: `Derive the transaction type between two GSTINs and split the total
rate over the applicable tax heads.

Example:
  taxid gst split --rate 18 27AAPFU0939F1ZV 29AAPFU0939F1ZR`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			determination, err := gst.DetermineTransactionType(args[0], args[1])
			if err != nil {
				return err
			}
			split, err := gst.SplitRate(rate, determination.Type, determination.RecipientState.UnionTerritory)
			if err != nil {
				return err
			}
			return printJSON(struct {
				Type       gst.TransactionType `json:"type"`
				Components []gst.Component     `json:"tax_components"`
				Split      gst.RateSplit       `json:"split"`
			}{determination.Type, determination.Components, split})
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 18, "Total GST rate percentage to split")
	return cmd
}

func gstHSNDigitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hsn-digits TURNOVER",
		Short: "Mandatory HSN/SAC digit count for an annual turnover in rupees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			turnover, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("turnover must be an integer rupee amount, got %q", args[0])
			}
			digits := gst.RequiredHSNDigits(turnover)
			if digits == 0 {
				fmt.Println("HSN/SAC codes are optional at this turnover")
				return nil
			}
			fmt.Printf("%d digits required\n", digits)
			return nil
		},
	}
}
