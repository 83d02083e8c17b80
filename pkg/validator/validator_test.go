package validator

import (
	"testing"

	"github.com/google/uuid"
)

type samplePayload struct {
	SupplierID uuid.UUID    `validate:"uuid_required"`
	Quantity   int          `validate:"required,min=1"`
	Items      []sampleItem `validate:"required,min=1,dive"`
}

type sampleItem struct {
	ProductID uuid.UUID `validate:"uuid_required"`
}

func TestValidateStructPasses(t *testing.T) {
	payload := samplePayload{
		SupplierID: uuid.New(),
		Quantity:   3,
		Items:      []sampleItem{{ProductID: uuid.New()}},
	}
	if errs := ValidateStruct(&payload); len(errs) != 0 {
		t.Errorf("unexpected errors: %+v", errs)
	}
}

func TestValidateStructReportsEachFailure(t *testing.T) {
	payload := samplePayload{
		Items: []sampleItem{{}},
	}
	errs := ValidateStruct(&payload)
	if len(errs) != 3 {
		t.Fatalf("errors = %d, want 3: %+v", len(errs), errs)
	}

	messages := map[string]bool{}
	for _, e := range errs {
		if e.Message == "" {
			t.Errorf("empty message for %s", e.FailedField)
		}
		messages[e.Message] = true
	}
	if !messages["SupplierID is required."] {
		t.Errorf("missing supplier message, got %v", messages)
	}
	if !messages["Items[0].ProductID is required."] {
		t.Errorf("missing nested item message, got %v", messages)
	}
}

type quantityPayload struct {
	Quantity int `validate:"min=1"`
}

func TestValidateStructMinMessage(t *testing.T) {
	errs := ValidateStruct(&quantityPayload{Quantity: 0})
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1", len(errs))
	}
	if errs[0].Message != "Quantity must be at least 1." {
		t.Errorf("message = %q", errs[0].Message)
	}
}
