package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"entrematch/internal/domain"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	sheet := `{"entrepreneurial": {"SE-M1": 5}, "personality": {"OPE-3": 4}}`
	if err := os.WriteFile(path, []byte(sheet), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := runCmd(t, "", "score", path)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var set domain.RecommendationSet
	if err := json.Unmarshal([]byte(out), &set); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !set.Assessment.LowConfidence {
		t.Fatalf("partial answers should be flagged low confidence")
	}
	if set.Single.Method != domain.MethodSingle || set.Hybrid.Method != domain.MethodHybrid {
		t.Fatalf("unexpected methods %q/%q", set.Single.Method, set.Hybrid.Method)
	}
}

func TestScoreSingleMethodFromStdin(t *testing.T) {
	out, err := runCmd(t, `{"entrepreneurial": {}, "personality": {}}`, "score", "-", "--method", "hybrid")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var rec domain.Recommendation
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if rec.Method != domain.MethodHybrid {
		t.Fatalf("expected hybrid output, got %q", rec.Method)
	}
}

func TestScoreRejectsUnknownMethod(t *testing.T) {
	if _, err := runCmd(t, `{}`, "score", "-", "--method", "oracle"); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestSurveyRepromptsAndSkips(t *testing.T) {
	// First question gets an invalid value then 5; everything else is skipped.
	out, err := runCmd(t, "9\n5\n", "survey")
	if err != nil {
		t.Fatalf("survey: %v", err)
	}
	if !strings.Contains(out, "masukkan angka 1-5") {
		t.Fatalf("expected a re-prompt, got:\n%s", out)
	}
	if !strings.Contains(out, "== Metode single ==") || !strings.Contains(out, "== Metode hybrid ==") {
		t.Fatalf("expected both methods in the summary:\n%s", out)
	}
}

func TestPrintSummaryMarksEmptyMethod(t *testing.T) {
	set := domain.RecommendationSet{
		Single: domain.Recommendation{Method: domain.MethodSingle, TopSectors: []string{"Retail"}},
		Hybrid: domain.Recommendation{Method: domain.MethodHybrid},
	}
	var out bytes.Buffer
	printSummary(&out, set)

	text := out.String()
	single, hybrid, _ := strings.Cut(text, "== Metode hybrid ==")
	if !strings.Contains(single, "sektor: Retail") || !strings.Contains(single, "belum cukup untuk rekomendasi klaster") {
		t.Fatalf("single should list its sectors without clusters:\n%s", text)
	}
	if !strings.Contains(hybrid, "tidak ada rekomendasi untuk metode ini") {
		t.Fatalf("empty hybrid should be reported as such:\n%s", text)
	}
}
