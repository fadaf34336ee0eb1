package textutil

import "testing"

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected *float64
	}{
		{"Formatted currency", "$ 12,345.67", f(12345.67)},
		{"Plain integer", "50000", f(50000)},
		{"Negative amount", "-$1,500.00", f(-1500)},
		{"Trailing noise", "3000 (est.)", f(3000)},
		{"No digits", "N/A", nil},
		{"Empty string", "", nil},
		{"Only symbols", "$,.", nil},
		{"Multiple dots unparseable", "1.2.3", nil},
		{"Range unparseable", "1,500-2,000", nil},
		{"Zip-like fragment unparseable", "77002-1234", nil},
		{"Negative with noise", "- $450", f(-450)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseMoney(tc.input)
			if (got == nil) != (tc.expected == nil) {
				t.Fatalf("ParseMoney(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
			if got != nil && *got != *tc.expected {
				t.Errorf("ParseMoney(%q) = %f, expected %f", tc.input, *got, *tc.expected)
			}
		})
	}
}

func TestNormalizeZip(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Zip with extension", "Houston, TX 77002-1234", "77002"},
		{"Bare zip", "77002", "77002"},
		{"Zip inside text", "situs 1801 Main St 77002 Harris", "77002"},
		{"No zip", "Houston, Texas", ""},
		{"Too few digits", "7700", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeZip(tc.input); got != tc.expected {
				t.Errorf("NormalizeZip(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestSplitCityStateZip(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		city  string
		state string
		zip   string
	}{
		{"Full pattern", "Houston, TX 77002", "Houston", "TX", "77002"},
		{"Full pattern with extension", "Houston, TX 77002-1234", "Houston", "TX", "77002"},
		{"Leading whitespace", "  Pasadena, TX 77506", "Pasadena", "TX", "77506"},
		{"No state, zip recovered", "Houston 77002", "", "", "77002"},
		{"Lowercase state not matched", "Houston, tx 77002", "", "", "77002"},
		{"Nothing usable", "unknown", "", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			city, state, zip := SplitCityStateZip(tc.input)
			if city != tc.city || state != tc.state || zip != tc.zip {
				t.Errorf("SplitCityStateZip(%q) = (%q, %q, %q), expected (%q, %q, %q)",
					tc.input, city, state, zip, tc.city, tc.state, tc.zip)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(95.8000001); got != 95.8 {
		t.Errorf("Round2(95.8000001) = %v, expected 95.8", got)
	}
	if got := Round2(12345.678); got != 12345.68 {
		t.Errorf("Round2(12345.678) = %v, expected 12345.68", got)
	}
}

func f(v float64) *float64 { return &v }
