package sister

import "testing"

func TestValidateEmptyCandidate(t *testing.T) {
	result := Validate(Sister{})

	if result.Valid {
		t.Fatal("expected invalid result")
	}
	want := []string{"Name is required", "Greeting is required", "Message is required"}
	if len(result.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(result.Errors), result.Errors)
	}
	for i, msg := range want {
		if result.Errors[i] != msg {
			t.Fatalf("error %d: expected %q, got %q", i, msg, result.Errors[i])
		}
	}
}

func TestValidateBlankFieldsAfterTrim(t *testing.T) {
	result := Validate(Sister{Name: "  ", Greeting: "\t", Message: "\n"})

	if result.Valid {
		t.Fatal("expected invalid result for whitespace-only fields")
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %v", result.Errors)
	}
}

func TestValidateBadImageURL(t *testing.T) {
	result := Validate(Sister{
		Name:     "A",
		Greeting: "G",
		Message:  "M",
		Images:   []string{"not a url", "https://example.com/x.jpg"},
	})

	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if result.Errors[0] != "Image URL 1 is not valid" {
		t.Fatalf("unexpected error message: %q", result.Errors[0])
	}
}

func TestValidateRelativeImageURL(t *testing.T) {
	result := Validate(Sister{
		Name:     "A",
		Greeting: "G",
		Message:  "M",
		Images:   []string{"/photos/x.jpg"},
	})

	if result.Valid {
		t.Fatal("expected relative URL to be rejected")
	}
	if result.Errors[0] != "Image URL 1 is not valid" {
		t.Fatalf("unexpected error message: %q", result.Errors[0])
	}
}

func TestValidateNoImages(t *testing.T) {
	result := Validate(Sister{Name: "A", Greeting: "G", Message: "M"})

	if !result.Valid {
		t.Fatalf("expected valid result, got errors %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected empty error list, got %v", result.Errors)
	}
}

func TestValidateSkipsBlankImageEntries(t *testing.T) {
	result := Validate(Sister{
		Name:     "A",
		Greeting: "G",
		Message:  "M",
		Images:   []string{"", "  ", "https://example.com/x.jpg"},
	})

	if !result.Valid {
		t.Fatalf("expected blank entries to be skipped, got errors %v", result.Errors)
	}
}

func TestValidateImageIndexIsOneBased(t *testing.T) {
	result := Validate(Sister{
		Name:     "A",
		Greeting: "G",
		Message:  "M",
		Images:   []string{"https://example.com/x.jpg", "::broken::"},
	})

	if len(result.Errors) != 1 || result.Errors[0] != "Image URL 2 is not valid" {
		t.Fatalf("expected second image flagged, got %v", result.Errors)
	}
}
