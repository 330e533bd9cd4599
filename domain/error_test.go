package domain

import (
	"errors"
	"testing"
)

func TestProductNotFoundError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewProductNotFoundError(42)
		expected := "product not found: id=42"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.Is detection", func(t *testing.T) {
		err := NewProductNotFoundError(7)
		target := &ProductNotFoundError{}
		if !errors.Is(err, target) {
			t.Error("errors.Is should detect ProductNotFoundError")
		}
	})

	t.Run("errors.As conversion", func(t *testing.T) {
		err := NewProductNotFoundError(9)
		var pnf *ProductNotFoundError
		if !errors.As(err, &pnf) {
			t.Fatal("errors.As should convert to ProductNotFoundError")
		}
		if pnf.ProductID != 9 {
			t.Errorf("expected ProductID 9, got %d", pnf.ProductID)
		}
	})

	t.Run("IsProductNotFoundError helper", func(t *testing.T) {
		err := NewProductNotFoundError(11)
		if !IsProductNotFoundError(err) {
			t.Error("IsProductNotFoundError should return true")
		}
	})
}

func TestInvalidQuantityError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewInvalidQuantityError(-3)
		expected := "invalid quantity: must be positive, got -3"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.Is detection", func(t *testing.T) {
		err := NewInvalidQuantityError(0)
		target := &InvalidQuantityError{}
		if !errors.Is(err, target) {
			t.Error("errors.Is should detect InvalidQuantityError")
		}
	})

	t.Run("errors.As conversion", func(t *testing.T) {
		err := NewInvalidQuantityError(-1)
		var iqe *InvalidQuantityError
		if !errors.As(err, &iqe) {
			t.Fatal("errors.As should convert to InvalidQuantityError")
		}
		if iqe.Quantity != -1 {
			t.Errorf("expected Quantity -1, got %d", iqe.Quantity)
		}
	})

	t.Run("IsInvalidQuantityError helper", func(t *testing.T) {
		err := NewInvalidQuantityError(0)
		if !IsInvalidQuantityError(err) {
			t.Error("IsInvalidQuantityError should return true")
		}
	})
}

func TestInvalidConfigError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewInvalidConfigError("catalog", "duplicate product id 3")
		expected := "invalid config: section=catalog, reason=duplicate product id 3"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.Is detection", func(t *testing.T) {
		err := NewInvalidConfigError("tiers", "thresholds must be strictly descending")
		target := &InvalidConfigError{}
		if !errors.Is(err, target) {
			t.Error("errors.Is should detect InvalidConfigError")
		}
	})

	t.Run("errors.As conversion", func(t *testing.T) {
		err := NewInvalidConfigError("flash_sales", "window ends before it starts")
		var ice *InvalidConfigError
		if !errors.As(err, &ice) {
			t.Fatal("errors.As should convert to InvalidConfigError")
		}
		if ice.Section != "flash_sales" {
			t.Errorf("expected Section flash_sales, got %s", ice.Section)
		}
	})

	t.Run("IsInvalidConfigError helper", func(t *testing.T) {
		err := NewInvalidConfigError("bogo", "product id must be positive")
		if !IsInvalidConfigError(err) {
			t.Error("IsInvalidConfigError should return true")
		}
	})
}

func TestErrorTypeDiscrimination(t *testing.T) {
	t.Run("Different error types are not confused", func(t *testing.T) {
		pnfErr := NewProductNotFoundError(1)
		iqeErr := NewInvalidQuantityError(-5)
		iceErr := NewInvalidConfigError("catalog", "duplicate")

		if !IsProductNotFoundError(pnfErr) {
			t.Error("should identify ProductNotFoundError")
		}
		if IsInvalidQuantityError(pnfErr) {
			t.Error("ProductNotFoundError should not be InvalidQuantityError")
		}
		if IsInvalidConfigError(pnfErr) {
			t.Error("ProductNotFoundError should not be InvalidConfigError")
		}

		if !IsInvalidQuantityError(iqeErr) {
			t.Error("should identify InvalidQuantityError")
		}
		if IsProductNotFoundError(iqeErr) {
			t.Error("InvalidQuantityError should not be ProductNotFoundError")
		}
		if IsInvalidConfigError(iqeErr) {
			t.Error("InvalidQuantityError should not be InvalidConfigError")
		}

		if !IsInvalidConfigError(iceErr) {
			t.Error("should identify InvalidConfigError")
		}
		if IsProductNotFoundError(iceErr) {
			t.Error("InvalidConfigError should not be ProductNotFoundError")
		}
		if IsInvalidQuantityError(iceErr) {
			t.Error("InvalidConfigError should not be InvalidQuantityError")
		}
	})
}
