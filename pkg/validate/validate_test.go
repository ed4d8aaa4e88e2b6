package validate_test

import (
	"testing"

	"github.com/bistrohq/bistro/pkg/validate"
)

type cartInput struct {
	Email      string  `json:"email" validate:"required,email"`
	MenuItemID string  `json:"menuItemId" validate:"required,objectid"`
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price" validate:"required,gt=0"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(cartInput{
		Email:      "jane@example.com",
		MenuItemID: "64f1c0ffee64f1c0ffee64f1",
		Name:       "margherita",
		Price:      12.5,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(cartInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestObjectIDRule(t *testing.T) {
	type in struct {
		ID string `json:"id" validate:"required,objectid"`
	}
	if errs := validate.Struct(in{ID: "nope"}); !validate.HasErrors(errs) {
		t.Error("expected short id to fail")
	}
	if errs := validate.Struct(in{ID: "zzzzzzzzzzzzzzzzzzzzzzzz"}); !validate.HasErrors(errs) {
		t.Error("expected non-hex id to fail")
	}
	if errs := validate.Struct(in{ID: "507f1f77bcf86cd799439011"}); validate.HasErrors(errs) {
		t.Errorf("expected hex id to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gt=0,lte=10000"`
	}
	if errs := validate.Struct(in{Price: -1}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 19.99}); validate.HasErrors(errs) {
		t.Errorf("expected 19.99 to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Price: 10001}); !validate.HasErrors(errs) {
		t.Error("expected price above cap to fail")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"nullable,min=6"`
	}
	if errs := validate.Struct(in{Password: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Password: "abc"}); !validate.HasErrors(errs) {
		t.Error("expected short password to fail")
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=none|admin"`
	}
	if errs := validate.Struct(in{Role: "superadmin"}); !validate.HasErrors(errs) {
		t.Error("expected invalid role to fail")
	}
	if errs := validate.Struct(in{Role: "admin"}); validate.HasErrors(errs) {
		t.Errorf("expected admin to pass: %v", errs)
	}
}
