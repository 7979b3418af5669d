package models

import "testing"

func intp(n int) *int { return &n }

func TestFormatSalary(t *testing.T) {
	cases := []struct {
		name string
		min  *int
		max  *int
		want string
	}{
		{"both bounds", intp(500000), intp(800000), "500,000 - 800,000 FCFA"},
		{"lower bound only", intp(500000), nil, "À partir de 500,000 FCFA"},
		{"no bounds", nil, nil, "Salaire non spécifié"},
		{"small amount", intp(900), intp(1200), "900 - 1,200 FCFA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatSalary(tc.min, tc.max); got != tc.want {
				t.Fatalf("FormatSalary(%v, %v) = %q, want %q", tc.min, tc.max, got, tc.want)
			}
		})
	}
}
