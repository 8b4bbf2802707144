package migrator

import "testing"

func TestSplitStatements(t *testing.T) {
	got := SplitStatements("CREATE TABLE t(x int); INSERT INTO t VALUES (1);")
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %#v", len(got), got)
	}
	if got[0] != "CREATE TABLE t(x int)" || got[1] != "INSERT INTO t VALUES (1)" {
		t.Fatalf("unexpected statements: %#v", got)
	}
}

func TestSplitStatementsSkipsEmpty(t *testing.T) {
	got := SplitStatements("\n\n;  ;\nALTER TABLE t ADD COLUMN c INT;\n;")
	if len(got) != 1 || got[0] != "ALTER TABLE t ADD COLUMN c INT" {
		t.Fatalf("unexpected statements: %#v", got)
	}
	if n := len(SplitStatements("  \n\t ")); n != 0 {
		t.Fatalf("expected no statements, got %d", n)
	}
}
