package sat

import "testing"

func TestLiteralEncoding(t *testing.T) {
	for x := 0; x < 4; x++ {
		pos := PositiveLiteral(x)
		neg := NegativeLiteral(x)

		if pos.VarID() != x || neg.VarID() != x {
			t.Errorf("VarID of literals of %d: got %d and %d", x, pos.VarID(), neg.VarID())
		}
		if !pos.IsPositive() || neg.IsPositive() {
			t.Errorf("IsPositive of literals of %d: got %v and %v", x, pos.IsPositive(), neg.IsPositive())
		}
		if pos.Opposite() != neg || neg.Opposite() != pos {
			t.Errorf("Opposite of literals of %d not symmetric", x)
		}
	}
}

func TestLiteralString(t *testing.T) {
	if got := PositiveLiteral(3).String(); got != "3" {
		t.Errorf("String(): want %q, got %q", "3", got)
	}
	if got := NegativeLiteral(3).String(); got != "!3" {
		t.Errorf("String(): want %q, got %q", "!3", got)
	}
}

func TestLBoolOpposite(t *testing.T) {
	if True.Opposite() != False || False.Opposite() != True || Unknown.Opposite() != Unknown {
		t.Error("LBool.Opposite is not an involution on {True, False, Unknown}")
	}
	if Lift(true) != True || Lift(false) != False {
		t.Error("Lift does not map bools to the expected LBool values")
	}
}

func TestEMA(t *testing.T) {
	ema := NewEMA(0.5)
	ema.Add(4) // first sample initializes the average
	if got := ema.Val(); got != 4 {
		t.Fatalf("Val() after init: want 4, got %f", got)
	}
	ema.Add(8)
	if got := ema.Val(); got != 6 {
		t.Errorf("Val(): want 6, got %f", got)
	}
}
