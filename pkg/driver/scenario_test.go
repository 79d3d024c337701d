package driver

import (
	"os"
	"path/filepath"
	"testing"

	"cxxdeduce/resolver-go/pkg/cppexpr"
	"cxxdeduce/resolver-go/pkg/deduction"
)

func TestGoldenScenariosPass(t *testing.T) {
	scenario, err := Load(filepath.Join("testdata", "deduction_scenarios.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scenario.Cases) == 0 {
		t.Fatalf("expected cases in the golden scenario file")
	}

	parser, err := cppexpr.NewParser()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer parser.Close()

	for _, result := range scenario.Run(parser) {
		if !result.Pass {
			t.Errorf("case %s: %s", result.Case.Name, result.Detail)
		}
	}
}

func TestLoadParsesPatternsAndContexts(t *testing.T) {
	scenario, err := Load(filepath.Join("testdata", "deduction_scenarios.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byName := make(map[string]*Case)
	for _, c := range scenario.Cases {
		byName[c.Name] = c
	}

	ref := byName["reference-binding-keeps-qualifiers"]
	if ref == nil || len(ref.Bindings) != 1 {
		t.Fatalf("expected a single-binding reference case")
	}
	if len(ref.Bindings[0].Pattern) != 1 || ref.Bindings[0].Pattern[0] != deduction.LvalueReference {
		t.Fatalf("expected an lvalue-reference pattern, got %v", ref.Bindings[0].Pattern)
	}

	arr := byName["array-element-context-rejected"]
	if arr == nil || arr.Context != deduction.BindArrayElement {
		t.Fatalf("expected the array-element context to be parsed")
	}
	if arr.ExpectError != deduction.ErrArrayDeduction {
		t.Fatalf("expected %s, got %s", deduction.ErrArrayDeduction, arr.ExpectError)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, "scope: {n: int}\ncases:\n  - name: x\n    policy: expression\n    expression: n\n    bogus: field\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown fields to be rejected")
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	path := writeScenario(t, "cases:\n  - name: x\n    policy: guess\n    expression: n\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an unknown policy to be rejected")
	}
}

func TestLoadRejectsUnknownDecoration(t *testing.T) {
	path := writeScenario(t, "scope: {n: int}\ncases:\n  - name: x\n    policy: value\n    expression: n\n    pattern: [ref]\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an unknown decoration to be rejected")
	}
}

func TestLoadRejectsUnknownErrorCode(t *testing.T) {
	path := writeScenario(t, "scope: {n: int}\ncases:\n  - name: x\n    policy: value\n    expression: n\n    error: NOT_A_CODE\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an unknown error code to be rejected")
	}
}

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}
