package arith

import (
	"math"
	"testing"
)

func TestAdd(t *testing.T) {
	for _, testcase := range []struct {
		a, b, want int64
	}{
		{4, 2, 6},
		{10, 5, 15},
		{0, 0, 0},
		{-3, 3, 0},
		{-5, -7, -12},
		{math.MaxInt64, 1, math.MinInt64}, // wraps around
	} {
		if want, have := testcase.want, Add(testcase.a, testcase.b); want != have {
			t.Errorf("Add(%d, %d): want %d, have %d", testcase.a, testcase.b, want, have)
		}
	}
}

func TestSubtract(t *testing.T) {
	for _, testcase := range []struct {
		a, b, want int64
	}{
		{4, 2, 2},
		{10, 5, 5},
		{0, 0, 0},
		{2, 5, -3},
		{-5, -7, 2},
		{math.MinInt64, 1, math.MaxInt64}, // wraps around
	} {
		if want, have := testcase.want, Subtract(testcase.a, testcase.b); want != have {
			t.Errorf("Subtract(%d, %d): want %d, have %d", testcase.a, testcase.b, want, have)
		}
	}
}

func TestAddCommutes(t *testing.T) {
	pairs := []struct{ a, b int64 }{{4, 2}, {0, 9}, {-13, 42}, {math.MaxInt64, math.MaxInt64}}
	for _, p := range pairs {
		if want, have := Add(p.a, p.b), Add(p.b, p.a); want != have {
			t.Errorf("Add(%d, %d) = %d, but Add(%d, %d) = %d", p.a, p.b, want, p.b, p.a, have)
		}
	}
}

func TestSubtractInvertsAdd(t *testing.T) {
	pairs := []struct{ a, b int64 }{{4, 2}, {10, 5}, {0, 0}, {-100, 37}, {math.MaxInt64, 1}}
	for _, p := range pairs {
		if want, have := p.a, Subtract(Add(p.a, p.b), p.b); want != have {
			t.Errorf("Subtract(Add(%d, %d), %d): want %d, have %d", p.a, p.b, p.b, want, have)
		}
	}
}
