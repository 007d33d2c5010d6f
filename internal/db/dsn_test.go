package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/wills":  "postgres://u:p@localhost:5432/wills",
		`"postgres://u:p@localhost/wills"`:     "postgres://u:p@localhost/wills",
		"host=localhost user=u dbname=wills":   "host=localhost user=u dbname=wills sslmode=disable",
		"host=localhost   user=u dbname=wills sslmode=require": "host=localhost user=u dbname=wills sslmode=require",
		"file:wills.db":                        "file:wills.db",
		"wills.db":                             "wills.db",
		"":                                     "",
	}
	for in, want := range cases {
		if got := NormalizeDSN(in); got != want {
			t.Fatalf("NormalizeDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsPostgres(t *testing.T) {
	if !IsPostgres("postgres://u@h/d") {
		t.Fatal("url dsn should be postgres")
	}
	if !IsPostgres("host=localhost dbname=wills") {
		t.Fatal("key=value dsn should be postgres")
	}
	if IsPostgres("file:wills.db") {
		t.Fatal("sqlite uri misclassified")
	}
	if IsPostgres("wills.db") {
		t.Fatal("sqlite path misclassified")
	}
}
