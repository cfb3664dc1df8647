package customer

import "testing"

func TestApprovedLimitFor(t *testing.T) {
	for _, tc := range []struct {
		income float64
		want   float64
	}{
		{150_000, 5_400_000},
		{20_000, 700_000},
		{50_000, 1_800_000},
		{1_000, 0},
		{12_500, 400_000},   // 4.5 rounds to even
		{37_500, 1_400_000}, // 13.5 rounds to even
		{12_501, 500_000},
	} {
		if got := ApprovedLimitFor(tc.income); got != tc.want {
			t.Errorf("ApprovedLimitFor(%v) = %v, want %v", tc.income, got, tc.want)
		}
	}
}

func TestFullName(t *testing.T) {
	c := Customer{FirstName: "Asha", LastName: "Rao"}
	if got := c.FullName(); got != "Asha Rao" {
		t.Fatalf("FullName = %q", got)
	}
}
