package domain

import "testing"

func TestIsPascalCase(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Customer", true},
		{"TCustomer", true},
		{"T", true},
		{"HTTPServer", true},
		{"customer", false},
		{"Get_Name", false},
		{"", false},
		{"2Fast", false},
	}
	for _, c := range cases {
		if got := IsPascalCase(c.in); got != c.want {
			t.Fatalf("IsPascalCase(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestHasTypePrefix(t *testing.T) {
	cases := []struct {
		prefix byte
		in     string
		want   bool
	}{
		{'T', "TCustomer", true},
		{'I', "IPaymentGateway", true},
		{'E', "EInvalidOperation", true},
		{'P', "PCustomer", true},
		{'T', "Tcustomer", false},
		{'T', "Customer", false},
		{'T', "T", false},
		{'T', "TX_", false},
		{'F', "FCount", true},
	}
	for _, c := range cases {
		if got := HasTypePrefix(c.prefix, c.in); got != c.want {
			t.Fatalf("HasTypePrefix(%q, %q) = %v, want %v", c.prefix, c.in, got, c.want)
		}
	}
}

func TestIsAllCaps(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"MAX_RETRIES", true},
		{"HTTP2", true},
		{"MaxRetries", false},
		{"_", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsAllCaps(c.in); got != c.want {
			t.Fatalf("IsAllCaps(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
