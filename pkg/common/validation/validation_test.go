package validation

import (
	"errors"
	"testing"

	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive", 4, false},
		{"one", 1, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("pool", "WorkerCount", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, tperrors.ErrInvalidConfiguration) {
				t.Error("validation errors should match ErrInvalidConfiguration")
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("pool", "QueueCapacity", 0); err != nil {
		t.Errorf("zero should be valid, got %v", err)
	}
	if err := ValidateNonNegative("pool", "QueueCapacity", -1); err == nil {
		t.Error("negative should be invalid")
	}
}

func TestValidateNotNil(t *testing.T) {
	if err := ValidateNotNil("pool", "task", struct{}{}); err != nil {
		t.Errorf("non-nil should be valid, got %v", err)
	}
	if err := ValidateNotNil("pool", "task", nil); err == nil {
		t.Error("nil should be invalid")
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("metrics", "name", "workers"); err != nil {
		t.Errorf("non-empty should be valid, got %v", err)
	}
	if err := ValidateNotEmpty("metrics", "name", ""); err == nil {
		t.Error("empty should be invalid")
	}
}
