package validate

import (
	"testing"

	"github.com/slugline/slugline/internal/model"
)

func TestValidateEmptyInput(t *testing.T) {
	report := NewEngine(nil).Validate(nil)
	if !report.Passed {
		t.Error("empty input should pass")
	}
	if report.TotalIssues != 0 || len(report.Diagnostics) != 0 {
		t.Errorf("empty input produced %d diagnostics", len(report.Diagnostics))
	}
}

func TestPanickingRuleIsIsolated(t *testing.T) {
	rules := []Rule{
		{
			Code: model.E1InvalidSceneHeading,
			Name: "always-panics",
			Check: func([]model.ScreenplayElement) []model.Diagnostic {
				panic("boom")
			},
		},
		{
			Code: model.E9ProductionNote,
			Name: "always-fires",
			Check: func([]model.ScreenplayElement) []model.Diagnostic {
				return []model.Diagnostic{{Code: model.E9ProductionNote, Line: 1, Confidence: 0.95}}
			},
		},
	}
	engine := NewEngineWithRules(nil, rules)

	report := engine.Validate([]model.ScreenplayElement{{Type: model.Action, Text: "x", LineStart: 1, LineEnd: 1}})
	if len(report.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1 (panicking rule skipped)", len(report.Diagnostics))
	}
	if report.Diagnostics[0].Code != model.E9ProductionNote {
		t.Errorf("surviving diagnostic = %s, want E9", report.Diagnostics[0].Code)
	}
}

func TestDiagnosticOrdering(t *testing.T) {
	mk := func(code model.ErrorCode, line int) Rule {
		return Rule{
			Code: code,
			Name: string(code),
			Check: func([]model.ScreenplayElement) []model.Diagnostic {
				return []model.Diagnostic{{Code: code, Line: line}}
			},
		}
	}
	// Registered out of order on purpose; the report must not care.
	engine := NewEngineWithRules(nil, []Rule{
		mk(model.E12RedundantContent, 5),
		mk(model.E10CasualLanguage, 2),
		mk(model.E2CharacterFormat, 5),
		mk(model.E9ProductionNote, 2),
	})

	report := engine.Validate([]model.ScreenplayElement{{Type: model.Action, Text: "x", LineStart: 1, LineEnd: 1}})
	var got []string
	for _, d := range report.Diagnostics {
		got = append(got, string(d.Code))
	}
	want := []string{"E9", "E10", "E2", "E12"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestReportTotals(t *testing.T) {
	elements := []model.ScreenplayElement{
		{Type: model.SceneHeading, Text: "INT. CAFE - DAY", LineStart: 1, LineEnd: 2},
		{Type: model.Dialogue, Text: "idk what to say.", LineStart: 3, LineEnd: 3},
	}
	report := NewEngine(nil).Validate(elements)
	if report.TotalElements != 2 {
		t.Errorf("TotalElements = %d, want 2", report.TotalElements)
	}
	if report.TotalIssues != len(report.Diagnostics) {
		t.Errorf("TotalIssues = %d, diagnostics = %d", report.TotalIssues, len(report.Diagnostics))
	}
	if report.Passed {
		t.Error("report with diagnostics should not pass")
	}
	sum := 0
	for _, n := range report.ByCode {
		sum += n
	}
	if sum != report.TotalIssues {
		t.Errorf("ByCode sum = %d, want %d", sum, report.TotalIssues)
	}
}
