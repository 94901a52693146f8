package validate_test

import (
	"testing"

	"github.com/766ms/Glam-rent-v1/pkg/validate"
)

type productInput struct {
	Name     string   `json:"name"      validate:"required,min=2,max=50"`
	ImageURL string   `json:"image_url" validate:"nullable,url"`
	Price    *float64 `json:"price"     validate:"required,gte=0"`
	Stock    *int     `json:"stock"     validate:"required,gte=0"`
	Status   string   `json:"status"    validate:"nullable,in=pending,paid,cancelled"`
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:     "Dama Carmesí",
		ImageURL: "", // nullable — allowed to be empty
		Price:    floatPtr(189999),
		Stock:    intPtr(10),
		Status:   "paid",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["price"]; !ok {
		t.Error("expected price to be required")
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
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestMinMaxOnStrings(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	if errs := validate.Struct(in{Name: "x"}); errs["name"] == "" {
		t.Error("expected min violation")
	}
	if errs := validate.Struct(in{Name: "toolongname"}); errs["name"] == "" {
		t.Error("expected max violation")
	}
	if errs := validate.Struct(in{Name: "okay"}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
	}
	if errs := validate.Struct(in{Quantity: 100}); errs["quantity"] == "" {
		t.Error("expected lte violation")
	}
	if errs := validate.Struct(in{Quantity: 3}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestGteOnPointerFields(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:  "Perla Encantada",
		Price: floatPtr(-1),
		Stock: intPtr(0),
	})
	if errs["price"] == "" {
		t.Error("expected gte violation on negative price")
	}
	if _, ok := errs["stock"]; ok {
		t.Errorf("zero stock should pass gte=0, got: %v", errs["stock"])
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=pending,paid,cancelled"`
	}
	if errs := validate.Struct(in{Status: "misplaced"}); errs["status"] == "" {
		t.Error("expected in violation")
	}
	if errs := validate.Struct(in{Status: "paid"}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestInRuleKeepsFollowingRules(t *testing.T) {
	// The in= parameter list contains commas; rules after it must still
	// apply.
	type in struct {
		Status string `json:"status" validate:"nullable,in=pending,paid,min=3"`
	}
	if errs := validate.Struct(in{Status: "paid"}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
	if errs := validate.Struct(in{Status: "no"}); errs["status"] == "" {
		t.Error("expected a violation for value outside the list")
	}
}
