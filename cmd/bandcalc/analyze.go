package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bandcalc/internal/breakeven"
	"github.com/rgehrsitz/bandcalc/internal/compare"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare levy across buyer types and regions",
		Long: `Price one amount under a base profile and alternatives. Profiles are
"region:buyer-type", a bare buyer type (England) or a bare region (standard).

Examples:
  bandcalc compare --amount 500000
  bandcalc compare --amount 500000 --base ftb --with standard,scotland:ftb,wales
  bandcalc compare --base standard --with additional --sweep 200000:1000000:50000 --format csv
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseStr, _ := cmd.Flags().GetString("base")
			withStr, _ := cmd.Flags().GetString("with")
			sweepStr, _ := cmd.Flags().GetString("sweep")
			format, _ := cmd.Flags().GetString("format")

			base, err := compare.ParseProfile(baseStr)
			if err != nil {
				return fmt.Errorf("--base: %w", err)
			}
			alternatives, err := parseProfiles(withStr)
			if err != nil {
				return fmt.Errorf("--with: %w", err)
			}
			if len(alternatives) == 0 {
				alternatives = compare.RegionProfiles(base.Region)
			}

			engine, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			ce := compare.NewCompareEngine(engine)

			if sweepStr != "" {
				opts, err := parseSweep(sweepStr)
				if err != nil {
					return err
				}
				opts.Profiles = append([]compare.Profile{base}, alternatives...)
				sweep, err := ce.Sweep(cmd.Context(), opts)
				if err != nil {
					return err
				}
				return printSweep(cmd, sweep, format)
			}

			amountStr, _ := cmd.Flags().GetString("amount")
			amount, err := domain.ParseMoney("amount", amountStr)
			if err != nil {
				return err
			}
			set, err := ce.Compare(cmd.Context(), compare.CompareOptions{
				Amount:       amount,
				Base:         base,
				Alternatives: alternatives,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			log.WithFields(logrus.Fields{
				"base":         base.Name,
				"alternatives": len(set.AlternativeResults),
			}).Debug("comparison complete")
			return printComparison(cmd, set, format)
		},
	}
	cmd.Flags().String("amount", "", "Purchase price (required unless --sweep)")
	cmd.Flags().String("base", "england:standard", "Base profile")
	cmd.Flags().String("with", "", "Comma-separated alternative profiles (default: every buyer type in the base region)")
	cmd.Flags().String("sweep", "", "Price range as from:to:step")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

func parseProfiles(s string) ([]compare.Profile, error) {
	var profiles []compare.Profile
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := compare.ParseProfile(part)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func parseSweep(s string) (compare.SweepOptions, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return compare.SweepOptions{}, fmt.Errorf("--sweep must be from:to:step, got %q", s)
	}
	var vals [3]decimal.Decimal
	for i, field := range []string{"from", "to", "step"} {
		d, err := domain.ParseMoney("sweep "+field, parts[i])
		if err != nil {
			return compare.SweepOptions{}, err
		}
		vals[i] = d
	}
	return compare.SweepOptions{From: vals[0], To: vals[1], Step: vals[2]}, nil
}

func printComparison(cmd *cobra.Command, set *compare.ComparisonSet, format string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "csv":
		s, err := (&compare.CSVFormatter{}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, s)
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(out, s)
	case "compact":
		fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(set))
	case "table", "console", "":
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
	return nil
}

func printSweep(cmd *cobra.Command, sweep *compare.SweepResult, format string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "csv":
		s, err := (&compare.CSVFormatter{}).FormatSweep(sweep)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true}).FormatSweep(sweep)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	case "table", "console", "compact", "":
		fmt.Fprint(out, (&compare.TableFormatter{}).FormatSweep(sweep))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
	}
	return nil
}

func maxPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "max-price",
		Short: "Find the highest price a levy budget covers",
		Long: `Find the largest whole-pound price whose levy fits within a budget.
Without --buyer every buyer type in the region is solved and compared.

Examples:
  bandcalc max-price --budget 15000
  bandcalc max-price --budget 18750 --buyer first-time-buyer
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			budgetStr, _ := cmd.Flags().GetString("budget")
			regionStr, _ := cmd.Flags().GetString("region")
			buyer, _ := cmd.Flags().GetString("buyer")
			format, _ := cmd.Flags().GetString("format")

			budget, err := domain.ParseMoney("budget", budgetStr)
			if err != nil {
				return err
			}
			region, err := domain.ParseRegion(regionStr)
			if err != nil {
				return err
			}
			engine, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(engine)
			out := cmd.OutOrStdout()
			asJSON := strings.EqualFold(format, "json")

			if buyer == "" {
				multi, err := solver.MaxPriceAcrossBuyers(cmd.Context(), budget, region)
				if err != nil {
					return err
				}
				if asJSON {
					s, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMulti(multi)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, s)
					return nil
				}
				fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMulti(multi))
				return nil
			}

			result, err := solver.MaxPrice(cmd.Context(), breakeven.MaxPriceRequest{
				Budget:    budget,
				Region:    region,
				BuyerType: domain.BuyerType(buyer),
			})
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"max_price":   result.MaxPrice.String(),
				"adjustments": result.Adjustments,
			}).Debug("max price solved")
			if asJSON {
				s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}
	cmd.Flags().String("budget", "", "Levy budget (required)")
	cmd.Flags().String("region", "england", "Region")
	cmd.Flags().String("buyer", "", "Buyer type (default: compare all)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	_ = cmd.MarkFlagRequired("budget")
	return cmd
}
