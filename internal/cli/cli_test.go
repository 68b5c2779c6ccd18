package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"paycalc/internal/auth"
)

const batchJSON = `{
  "period": {"id":"PP2024-26","startDate":"2024-12-16","endDate":"2024-12-29","payDate":"2024-12-31","status":"processing"},
  "timesheets": [
    {"employee":{"id":"E1","name":"Ana Ortiz","payType":"hourly","payRate":45,"benefits":{"healthInsurance":254.73},"filingStatus":"single"},
     "timeEntries":[{"employeeId":"E1","date":"2024-12-16","regularHours":78,"overtimeHours":0,"approved":true}]},
    {"employee":{"id":"E2","name":"Bo Chen","payType":"salary","payRate":78000,"filingStatus":"married"},
     "timeEntries":[{"employeeId":"E2","date":"2024-12-16","regularHours":8,"approved":false}]}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidateCommand(t *testing.T) {
	good := writeFile(t, "good.json", `[{"date":"2024-12-16","regularHours":8,"approved":true}]`)
	out, _, err := execute("validate", "--input", good)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"valid": true`) {
		t.Fatalf("unexpected output %s", out)
	}

	bad := writeFile(t, "bad.json", `[{"date":"2024-12-16","clockIn":"17:00","clockOut":"09:00","regularHours":8,"approved":true}]`)
	out, _, err = execute("validate", "--input", bad)
	if !errors.Is(err, errEntriesInvalid) {
		t.Fatalf("expected errEntriesInvalid, got %v", err)
	}
	if !strings.Contains(out, "Time entry 1 has invalid clock out time") {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestCalculateCommand(t *testing.T) {
	input := writeFile(t, "batch.json", batchJSON)
	xlsx := filepath.Join(t.TempDir(), "register.xlsx")

	out, errOut, err := execute("calculate", "--input", input, "--format", "csv", "--xlsx", xlsx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "E1,PP2024-26,78,0,3510.00") {
		t.Fatalf("unexpected csv %q", out)
	}
	if !strings.Contains(errOut, "blocked E2") {
		t.Fatalf("expected blocked notice, got %q", errOut)
	}

	f, err := excelize.OpenFile(xlsx)
	if err != nil {
		t.Fatalf("open register: %v", err)
	}
	defer f.Close()
	value, err := f.GetCellValue("Register", "A2")
	if err != nil || value != "E1" {
		t.Fatalf("expected E1 in register, got %q (%v)", value, err)
	}
}

func TestCalculateCommandRules(t *testing.T) {
	input := writeFile(t, "batch.json", batchJSON)
	rules := writeFile(t, "rules.json", `{"stateTaxRate": 0}`)

	out, _, err := execute("calculate", "--input", input, "--rules", rules, "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"stateTax": 0`) {
		t.Fatalf("expected zero state tax, got %s", out)
	}

	_, _, err = execute("calculate", "--input", input, "--format", "yaml")
	if err == nil || !strings.Contains(err.Error(), "yaml") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestPayslipCommand(t *testing.T) {
	input := writeFile(t, "batch.json", batchJSON)
	dir := t.TempDir()

	out, _, err := execute("payslip", "--input", input, "--out", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := strings.TrimSpace(out)
	if filepath.Base(path) != "PP2024-26_E1.pdf" {
		t.Fatalf("unexpected payslip path %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF file, err=%v", err)
	}
}

func TestTokenCommand(t *testing.T) {
	out, _, err := execute("token", "--secret", "s3", "--subject", "clerk", "--role", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := auth.ParseToken("s3", strings.TrimSpace(out))
	if err != nil || claims.Subject != "clerk" || claims.Role != auth.RoleAdmin {
		t.Fatalf("unexpected token claims %+v (%v)", claims, err)
	}

	if _, _, err := execute("token", "--secret", "s3", "--subject", "clerk", "--role", "owner"); err == nil {
		t.Fatal("expected unknown role to fail")
	}
}
