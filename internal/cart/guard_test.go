package cart

import "testing"

func TestCheckStock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		requested int
		ceiling   int
		want      StockDecision
	}{
		{"under ceiling", 2, 3, StockAllow},
		{"at ceiling", 3, 3, StockAllow},
		{"over ceiling", 4, 3, StockReject},
		{"zero ceiling", 1, 0, StockReject},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CheckStock(tc.requested, tc.ceiling); got != tc.want {
				t.Fatalf("CheckStock(%d, %d) = %v, want %v", tc.requested, tc.ceiling, got, tc.want)
			}
		})
	}
}
