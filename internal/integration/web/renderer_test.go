package web

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRenderer_RegisterPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	tests := []struct {
		name     string
		data     RegisterPageData
		contains []string
		absent   []string
	}{
		{
			name: "empty form",
			data: RegisterPageData{MinLength: 8},
			contains: []string{
				`id="password"`,
				`id="password-strength"`,
				`data-bs-toggle="tooltip"`,
				`/static/js/script.js`,
				"At least 8 characters",
			},
			absent: []string{`id="register-error"`, `id="register-success"`},
		},
		{
			name: "re-render with strength and error",
			data: RegisterPageData{
				Name:          "Jane",
				Email:         "jane@example.com",
				MinLength:     8,
				StrengthLabel: "Weak",
				StrengthClass: "text-danger",
				Error:         "password strength is Weak, at least Moderate is required",
			},
			contains: []string{
				`class="form-text text-danger">Weak</div>`,
				`value="jane@example.com"`,
				`id="register-error"`,
			},
		},
		{
			name:     "success panel",
			data:     RegisterPageData{Name: "Jane", Registered: true},
			contains: []string{`id="register-success"`, "Welcome, Jane!"},
			absent:   []string{`<form`},
		},
		{
			name:     "user input is escaped",
			data:     RegisterPageData{Name: `<script>alert(1)</script>`},
			contains: []string{"&lt;script&gt;alert(1)&lt;/script&gt;"},
			absent:   []string{"<script>alert(1)</script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := r.Render(RegisterPage, tt.data)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(html, want) {
					t.Errorf("expected page to contain %q", want)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(html, unwanted) {
					t.Errorf("expected page not to contain %q", unwanted)
				}
			}
		})
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if _, err := r.Render("missing.html", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}

func TestStaticFS_ServesScript(t *testing.T) {
	script, err := fs.ReadFile(StaticFS(), "js/script.js")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"calculatePasswordStrength", "password-strength", "'form-text '", "text-danger", "text-warning", "text-success"} {
		if !strings.Contains(string(script), want) {
			t.Errorf("expected script to contain %q", want)
		}
	}
}

func TestRenderer_ResetPasswordPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	form, err := r.Render(ResetPasswordPage, ResetPasswordPageData{Token: "abc123", MinLength: 8, StrengthLabel: "Weak", StrengthClass: "text-danger", Error: "too weak"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{`name="token" value="abc123"`, `id="password"`, `class="form-text text-danger">Weak</div>`, `id="reset-error"`} {
		if !strings.Contains(form, want) {
			t.Errorf("expected form to contain %q", want)
		}
	}

	missing, _ := r.Render(ResetPasswordPage, ResetPasswordPageData{MinLength: 8})
	if strings.Contains(missing, "<form") || !strings.Contains(missing, "missing its token") {
		t.Error("expected an error panel instead of the form without a token")
	}

	done, _ := r.Render(ResetPasswordPage, ResetPasswordPageData{Token: "abc123", Done: true})
	if !strings.Contains(done, `id="reset-success"`) || strings.Contains(done, "<form") {
		t.Error("expected the success panel after a reset")
	}
}
