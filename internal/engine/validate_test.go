package engine

import (
	"strings"
	"testing"
)

func validInput() ScenarioInput {
	return ScenarioInput{
		ProjectData: ProjectData{
			Name:                       "Residencial Horizonte",
			TotalUnits:                 100,
			TotalArea:                  4000,
			EfficiencyRatio:            2.5,
			AcquisitionType:            AcquisitionCash,
			SellablePrivateArea:        8000,
			ConstructionDurationMonths: 24,
			SalesDurationMonths:        30,
		},
		Indices: EconomicIndices{INCC: 4.5, IPCA: 4.0, CDI: 10.5, DiscountRate: 12},
		SalesPremises: SalesPremises{
			PricePerSqm:         8500,
			BrokerageFee:        4,
			Taxes:               6,
			DownPayment:         20,
			MonthlyInstallments: 60,
			Keys:                20,
		},
		Costs: []CostCategory{
			{ID: "c1", Name: "Terreno", TotalValue: 15000000, DistributionType: DistributionLinear, StartMonth: 0, DurationMonths: 6},
		},
	}
}

func findIssue(issues []ValidationIssue, substr string) *ValidationIssue {
	for i := range issues {
		if strings.Contains(issues[i].Message, substr) {
			return &issues[i]
		}
	}
	return nil
}

func TestValidateScenario(t *testing.T) {
	t.Run("valid_scenario_is_ok", func(t *testing.T) {
		result := ValidateScenario(validInput())
		if result.Status != GateOK {
			t.Fatalf("expected OK, got %s with issues %v", result.Status, result.Issues)
		}
		if len(result.Issues) != 0 {
			t.Errorf("expected no issues, got %d", len(result.Issues))
		}
		if result.EvaluatedAt.IsZero() {
			t.Error("expected evaluation timestamp to be set")
		}
	})

	t.Run("missing_name_blocks", func(t *testing.T) {
		input := validInput()
		input.ProjectData.Name = ""
		result := ValidateScenario(input)
		if result.Status != GateBlocker {
			t.Errorf("expected BLOCKER, got %s", result.Status)
		}
	})

	t.Run("payment_terms_must_sum_to_100", func(t *testing.T) {
		input := validInput()
		input.SalesPremises.MonthlyInstallments = 50 // 20+50+20 = 90
		result := ValidateScenario(input)
		if result.Status != GateBlocker {
			t.Fatalf("expected BLOCKER, got %s", result.Status)
		}
		issue := findIssue(result.Issues, "Fluxo de recebimento")
		if issue == nil {
			t.Fatal("expected a payment-term issue")
		}
		if !strings.Contains(issue.Message, "90") {
			t.Errorf("expected the off-by sum 90 in the message, got %q", issue.Message)
		}
	})

	t.Run("sales_schedule_matching_stock_passes", func(t *testing.T) {
		input := validInput()
		input.SalesPremises.MonthlySales = make([]float64, 20)
		for i := range input.SalesPremises.MonthlySales {
			input.SalesPremises.MonthlySales[i] = 5 // 100 units
		}
		result := ValidateScenario(input)
		if issue := findIssue(result.Issues, "Distribuição de vendas"); issue != nil {
			t.Errorf("expected no sales-schedule issue, got %q", issue.Message)
		}
	})

	t.Run("sales_schedule_mismatch_alerts", func(t *testing.T) {
		input := validInput()
		input.SalesPremises.MonthlySales = make([]float64, 19)
		for i := range input.SalesPremises.MonthlySales {
			input.SalesPremises.MonthlySales[i] = 5 // 95 units vs 100 sellable
		}
		result := ValidateScenario(input)
		if result.Status != GateAlerta {
			t.Fatalf("expected ALERTA, got %s", result.Status)
		}
		issue := findIssue(result.Issues, "Distribuição de vendas")
		if issue == nil {
			t.Fatal("expected a sales-schedule issue")
		}
		if !strings.Contains(issue.Message, "95.0") || !strings.Contains(issue.Message, "100") {
			t.Errorf("expected 95 vs 100 in the message, got %q", issue.Message)
		}
		if issue.Severity != SeverityAlerta {
			t.Errorf("expected ALERTA severity, got %s", issue.Severity)
		}
	})

	t.Run("barter_reduces_sellable_stock", func(t *testing.T) {
		input := validInput()
		input.ProjectData.AcquisitionType = AcquisitionBarter
		input.ProjectData.PhysicalBarterPercentage = 20
		input.SalesPremises.MonthlySales = []float64{80} // matches 80 sellable units
		result := ValidateScenario(input)
		if issue := findIssue(result.Issues, "Distribuição de vendas"); issue != nil {
			t.Errorf("expected schedule to match barter-reduced stock, got %q", issue.Message)
		}
	})

	t.Run("no_costs_alerts", func(t *testing.T) {
		input := validInput()
		input.Costs = nil
		result := ValidateScenario(input)
		if result.Status != GateAlerta {
			t.Errorf("expected ALERTA, got %s", result.Status)
		}
	})

	t.Run("zero_total_cost_with_items_blocks", func(t *testing.T) {
		input := validInput()
		input.Costs = []CostCategory{{ID: "c1", Name: "Terreno", TotalValue: 0, DistributionType: DistributionLinear, DurationMonths: 6}}
		result := ValidateScenario(input)
		if result.Status != GateBlocker {
			t.Errorf("expected BLOCKER, got %s", result.Status)
		}
	})

	t.Run("non_positive_discount_rate_blocks", func(t *testing.T) {
		input := validInput()
		input.Indices.DiscountRate = 0
		result := ValidateScenario(input)
		if result.Status != GateBlocker {
			t.Errorf("expected BLOCKER, got %s", result.Status)
		}
	})

	t.Run("blocker_wins_over_alerta", func(t *testing.T) {
		input := validInput()
		input.Costs = nil               // ALERTA
		input.SalesPremises.PricePerSqm = 0 // BLOCKER
		result := ValidateScenario(input)
		if result.Status != GateBlocker {
			t.Errorf("expected BLOCKER to dominate, got %s", result.Status)
		}
		if len(result.Issues) != 2 {
			t.Errorf("expected both issues reported, got %d", len(result.Issues))
		}
	})
}
