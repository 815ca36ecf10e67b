package taxid

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "27aapfu0939f1zv", want: "27AAPFU0939F1ZV"},
		{name: "spaces", input: "AA 12 34 56 C", want: "AA123456C"},
		{name: "hyphens_and_dots", input: "12.345.678-Z", want: "12345678Z"},
		{name: "tabs_and_newlines", input: "12\t345678\nZ\r", want: "12345678Z"},
		{name: "slash_preserved", input: "123/ab456", want: "123/AB456"},
		{name: "empty", input: "", want: ""},
		{name: "separators_only", input: " -.\t", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := Normalize(got); again != got {
				t.Errorf("Normalize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFormatGroups(t *testing.T) {
	tests := []struct {
		value     string
		groups    []int
		separator string
		want      string
	}{
		{value: "AA123456C", groups: []int{2, 2, 2, 2, 1}, separator: " ", want: "AA 12 34 56 C"},
		{value: "12345678Z", groups: []int{8, 1}, separator: "-", want: "12345678-Z"},
		{value: "8471", groups: []int{4}, separator: "-", want: "8471"},
	}
	for _, tt := range tests {
		if got := formatGroups(tt.value, tt.groups, tt.separator); got != tt.want {
			t.Errorf("formatGroups(%q, %v, %q) = %q, want %q", tt.value, tt.groups, tt.separator, got, tt.want)
		}
	}
}

// Every kind must produce a valid identifier from its default components, and
// formatting must never change the normalized value.
func TestGenerateValidateRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			value, err := Generate(kind, nil)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			result, err := Validate(kind, value)
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if !result.Valid {
				t.Fatalf("generated %q is invalid: %+v", value, result.Err)
			}

			formatted, err := Format(kind, value, "")
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			if Normalize(formatted) != result.Normalized {
				t.Errorf("Format(%q) = %q does not normalize back to %q", value, formatted, result.Normalized)
			}

			parsed, err := Parse(kind, value)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if parsed.Normalized != result.Normalized {
				t.Errorf("Parse normalized %q, Validate normalized %q", parsed.Normalized, result.Normalized)
			}
		})
	}
}

// Validation of already-normalized input must agree with validation of the
// raw form it came from.
func TestValidateNormalizationInvariance(t *testing.T) {
	tests := []struct {
		kind Kind
		raw  string
	}{
		{kind: KindGSTIN, raw: "27-aapfu0939f-1-z-v"},
		{kind: KindNIF, raw: "12.345.678-z"},
		{kind: KindJPInvoiceNumber, raw: "t-2000012345678"},
		{kind: KindUKNINO, raw: "aa 12 34 56 c"},
		{kind: KindUKVAT, raw: "gb 123 4567 89"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			first, err := Validate(tt.kind, tt.raw)
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			second, err := Validate(tt.kind, first.Normalized)
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if first.Valid != second.Valid || first.Normalized != second.Normalized {
				t.Errorf("raw and normalized forms disagree: %+v vs %+v", first, second)
			}
		})
	}
}

// Corrupting the check character of a checksummed identifier must flip the
// result to an invalid_check_digit failure.
func TestCheckDigitSensitivity(t *testing.T) {
	tests := []struct {
		kind     Kind
		value    string
		position int
	}{
		{kind: KindGSTIN, value: "27AAPFU0939F1ZV", position: 14},
		{kind: KindNIF, value: "12345678Z", position: 8},
		{kind: KindNIE, value: "X1234567L", position: 8},
		{kind: KindCIF, value: "B12345674", position: 8},
		{kind: KindJPCorporateNumber, value: "2000012345678", position: 0},
		{kind: KindJPInvoiceNumber, value: "T2000012345678", position: 1},
		{kind: KindUKUTR, value: "1234567891", position: 9},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if !IsValid(tt.kind, tt.value) {
				t.Fatalf("baseline %q is not valid", tt.value)
			}
			mutated := []byte(tt.value)
			if mutated[tt.position] == '9' {
				mutated[tt.position] = '0'
			} else if mutated[tt.position] >= '0' && mutated[tt.position] <= '8' {
				mutated[tt.position]++
			} else if mutated[tt.position] == 'Z' {
				mutated[tt.position] = 'A'
			} else {
				mutated[tt.position]++
			}
			result, err := Validate(tt.kind, string(mutated))
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if result.Valid {
				t.Fatalf("mutated %q still validates", string(mutated))
			}
			if result.Err.Kind != ErrInvalidCheck {
				t.Errorf("mutated %q error kind = %s, want %s", string(mutated), result.Err.Kind, ErrInvalidCheck)
			}
		})
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	inputs := []struct {
		kind Kind
		raw  string
	}{
		{kind: KindGSTIN, raw: "27AAPFU0939F1ZV"},
		{kind: KindGSTIN, raw: "garbage"},
		{kind: KindCIF, raw: "B12345678"},
		{kind: KindUKPAYE, raw: "123/AB456"},
	}
	for _, tt := range inputs {
		first, err := Validate(tt.kind, tt.raw)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		for i := 0; i < 3; i++ {
			again, err := Validate(tt.kind, tt.raw)
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if again.Valid != first.Valid || again.Normalized != first.Normalized {
				t.Fatalf("Validate(%s, %q) is not deterministic", tt.kind, tt.raw)
			}
		}
	}
}
