package cgt

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{USD(1234.5), "$1,234.50"},
		{USD(0.125), "$0.12"}, // half to even
		{USD(0.135), "$0.14"},
		{M(-3, "USD"), "-$3.00"},
		{M(12.345, ""), "12.34"},
		{M(7, "XYZ"), "7.00"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("%v %s String() = %q, want %q", tc.m.Decimal(), tc.m.Currency(), got, tc.want)
		}
	}
}

func TestMoney_Prorate(t *testing.T) {
	m := USD(100)
	if got := m.Prorate(Q(1), Q(3)); !got.Round().Equal(USD(33.33)) {
		t.Errorf("Prorate(1, 3) = %v, want 33.33", got)
	}
	if got := m.Prorate(Q(3), Q(3)); !got.Equal(m) {
		t.Errorf("Prorate(3, 3) = %v, want the whole amount", got)
	}
	if got := USD(2).Prorate(Q(3), Q(6)); !got.Equal(USD(1)) {
		t.Errorf("Prorate(3, 6) = %v, want exactly 1", got.Decimal())
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	if got := USD(10).Add(M(5, "")); !got.Equal(USD(15)) {
		t.Errorf("Add() = %v, want $15.00 with the currency of the first operand", got)
	}
	if got := MaxMoney(USD(-1), M(0, "")); !got.Equal(USD(0)) {
		t.Errorf("MaxMoney() = %v, want $0.00", got)
	}
	if got := MinMoney(USD(3), USD(2)); !got.Equal(USD(2)) {
		t.Errorf("MinMoney() = %v, want $2.00", got)
	}
	if got := USD(10).Convert(decimal.NewFromFloat(0.9), "EUR"); !got.Equal(EUR(9)) {
		t.Errorf("Convert() = %v, want €9.00", got)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Add() of different currencies did not panic")
		}
	}()
	USD(1).Add(EUR(1))
}

func TestMoney_SignedString(t *testing.T) {
	if got := USD(0.001).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want -", got)
	}
	if got := USD(5).SignedString(); got != "+$5.00" {
		t.Errorf("SignedString() = %q, want +$5.00", got)
	}
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("1270", "EUR")
	if err != nil {
		t.Fatalf("ParseMoney() error = %v", err)
	}
	if !m.Equal(EUR(1270)) {
		t.Errorf("ParseMoney() = %v, want 1270 EUR", m)
	}
	if _, err := ParseMoney("twelve", "EUR"); err == nil {
		t.Errorf("ParseMoney(twelve) expected an error")
	}
}

func TestRate(t *testing.T) {
	testCases := []struct {
		in     string
		want   Rate
		string string
	}{
		{"0.33", R(0.33), "33.00%"},
		{"33%", R(0.33), "33.00%"},
		{"12.5%", R(0.125), "12.50%"},
	}
	for _, tc := range testCases {
		got, err := ParseRate(tc.in)
		if err != nil {
			t.Errorf("ParseRate(%q) error = %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseRate(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if got.String() != tc.string {
			t.Errorf("ParseRate(%q).String() = %q, want %q", tc.in, got.String(), tc.string)
		}
	}
	if _, err := ParseRate("x%"); err == nil {
		t.Errorf("ParseRate(x%%) expected an error")
	}
	if got := R(0.33).Apply(EUR(1000)); !got.Equal(EUR(330)) {
		t.Errorf("Apply() = %v, want €330.00", got)
	}
}

func TestQuantity(t *testing.T) {
	q, err := ParseQuantity("12.5")
	if err != nil {
		t.Fatalf("ParseQuantity() error = %v", err)
	}
	if !q.Equal(Q(12.5)) {
		t.Errorf("ParseQuantity() = %v, want 12.5", q)
	}
	if got := MinQuantity(Q(3), Q(2)); !got.Equal(Q(2)) {
		t.Errorf("MinQuantity() = %v, want 2", got)
	}
	if got := Q(3).Sub(Q(5)); !got.IsNegative() {
		t.Errorf("Sub() = %v, want a negative quantity", got)
	}
}
