// internal/extractor/validate_test.go
package extractor

import (
	"errors"
	"testing"
)

func TestValidatePostURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid post URL", "https://www.linkedin.com/posts/someone_activity-7123456789", false},
		{"valid with whitespace", "  https://www.linkedin.com/feed/update/urn:li:activity:7123456789/ \n", false},
		{"subdomain", "https://in.linkedin.com/posts/someone_activity-1", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"relative", "/posts/someone_activity-7123456789", true},
		{"wrong domain", "https://www.example.com/posts/abc", true},
		{"lookalike path only", "https://evil.example.com/linkedin.com/posts", true},
		{"ftp scheme", "ftp://www.linkedin.com/posts/abc", true},
		{"garbage", "not a url at all", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePostURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("error should wrap ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == "" {
				t.Error("expected trimmed URL back")
			}
		})
	}
}

func TestValidatePostURLTrims(t *testing.T) {
	got, err := ValidatePostURL("  https://www.linkedin.com/posts/abc  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://www.linkedin.com/posts/abc" {
		t.Errorf("got %q, want trimmed URL", got)
	}
}

func TestExtractedContentValidate(t *testing.T) {
	content := NewExtractedContent()
	content.Text = PlaceholderText
	content.Images = append(content.Images, ImageItem{
		URL:      "https://media.licdn.com/dms/image/abc/feedshare-shrink_800/0",
		Alt:      "a",
		Filename: "image-1.jpg",
	})
	if err := content.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content.Images[0].URL = "/relative/path.jpg"
	if err := content.Validate(); err == nil {
		t.Error("expected error for relative item URL")
	}

	content.Images[0].URL = "https://media.licdn.com/dms/image/abc/feedshare-shrink_800/0"
	content.Images[0].Filename = ""
	if err := content.Validate(); err == nil {
		t.Error("expected error for missing filename")
	}
}
