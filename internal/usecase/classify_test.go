package usecase

import "testing"

func TestIsFinancialQuery(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"What was AWS revenue growth?", true},
		{"How did operating margin change?", true},
		{"Tell me about shareholder returns", true},
		{"what was amazon's 2023 NET INCOME?", true},
		{"What is the weather today in Seattle?", false},
		{"Summarize the document", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsFinancialQuery(tc.query); got != tc.want {
			t.Errorf("IsFinancialQuery(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestWantsWebSearch(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"latest stock price", true},
		{"What are analysts saying?", true},
		{"Q3 guidance update", true},
		{"any news from TODAY", true},
		{"Summarize the document", false},
		{"Explain the cash flow statement", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := WantsWebSearch(tc.query); got != tc.want {
			t.Errorf("WantsWebSearch(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}
