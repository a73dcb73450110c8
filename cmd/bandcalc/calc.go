package main

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/spf13/cobra"
)

func levyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levy",
		Short: "Calculate property transaction levy (SDLT, LBTT, LTT)",
		Long: `Calculate the levy on a property purchase.

Examples:
  bandcalc levy --amount 500000
  bandcalc levy --amount 300000 --region scotland --buyer first-time-buyer
  bandcalc levy --amount "£1,250,000" --buyer additional-property --format json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amountStr, _ := cmd.Flags().GetString("amount")
			buyer, _ := cmd.Flags().GetString("buyer")
			region, _ := cmd.Flags().GetString("region")
			name, _ := cmd.Flags().GetString("name")

			amount, err := domain.ParseMoney("amount", amountStr)
			if err != nil {
				return err
			}
			engine, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			result, err := engine.CalculateLevy(cmd.Context(), domain.LevyRequest{
				Amount:    amount,
				BuyerType: domain.BuyerType(buyer),
				Region:    domain.Region(region),
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			save, _ := cmd.Flags().GetBool("save")
			return emit(cmd, &domain.BatchResults{
				Levy: []domain.NamedLevyResult{{Name: name, Result: *result}},
			}, format, save)
		},
	}
	cmd.Flags().String("amount", "", "Purchase price (required)")
	cmd.Flags().String("buyer", "standard", "Buyer type (standard, first-time-buyer, additional-property, commercial)")
	cmd.Flags().String("region", "england", "Region (england, northern-ireland, scotland, wales)")
	cmd.Flags().String("name", "Levy", "Label for the result")
	cmd.Flags().StringP("format", "f", "console", "Output format")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func maintenanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Estimate CMS child maintenance",
		Long: `Estimate child maintenance from the paying parent's gross income.

Examples:
  bandcalc maintenance --income 26000
  bandcalc maintenance --income 500 --frequency weekly --children 2 --nights 104
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			incomeStr, _ := cmd.Flags().GetString("income")
			frequency, _ := cmd.Flags().GetString("frequency")
			children, _ := cmd.Flags().GetInt("children")
			dependents, _ := cmd.Flags().GetInt("dependents")
			nights, _ := cmd.Flags().GetInt("nights")
			name, _ := cmd.Flags().GetString("name")

			income, err := domain.ParseMoney("gross_income", incomeStr)
			if err != nil {
				return err
			}
			engine, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			result, err := engine.CalculateMaintenance(cmd.Context(), domain.MaintenanceRequest{
				GrossIncome:          income,
				IncomeFrequency:      domain.IncomeFrequency(frequency),
				ChildCount:           children,
				OtherDependentsCount: dependents,
				SharedCareNights:     nights,
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			save, _ := cmd.Flags().GetBool("save")
			return emit(cmd, &domain.BatchResults{
				Maintenance: []domain.NamedMaintenanceResult{{Name: name, Result: *result}},
			}, format, save)
		},
	}
	cmd.Flags().String("income", "", "Gross income of the paying parent (required)")
	cmd.Flags().String("frequency", "yearly", "Income frequency (weekly, monthly, yearly)")
	cmd.Flags().Int("children", 1, "Number of children the maintenance is for")
	cmd.Flags().Int("dependents", 0, "Other children living with the paying parent")
	cmd.Flags().Int("nights", 0, "Shared care nights per year")
	cmd.Flags().String("name", "Maintenance", "Label for the result")
	cmd.Flags().StringP("format", "f", "console", "Output format")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}
