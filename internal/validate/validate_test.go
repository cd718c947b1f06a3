package validate_test

import (
	"strings"
	"testing"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/validate"
)

func TestEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.io", "x_1@host.co"}
	for _, e := range valid {
		if !validate.Email(e) {
			t.Errorf("Email(%q) = false, want true", e)
		}
	}
	invalid := []string{"", "plain", "@example.com", "user@", "user@.com", "user@host"}
	for _, e := range invalid {
		if validate.Email(e) {
			t.Errorf("Email(%q) = true, want false", e)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := validate.NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestPassword(t *testing.T) {
	valid := []string{"Abcdefg1", "LongerPassw0rd"}
	for _, p := range valid {
		if !validate.Password(p) {
			t.Errorf("Password(%q) = false, want true", p)
		}
	}
	invalid := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"}
	for _, p := range invalid {
		if validate.Password(p) {
			t.Errorf("Password(%q) = true, want false", p)
		}
	}
}

func TestName(t *testing.T) {
	if validate.Name("A") {
		t.Error("single character accepted")
	}
	if !validate.Name("Jo") {
		t.Error("two characters rejected")
	}
	if validate.Name(strings.Repeat("x", 51)) {
		t.Error("51 characters accepted")
	}
}

func TestSanitize(t *testing.T) {
	if got := validate.Sanitize(" <script>hi</script> "); got != "&lt;script&gt;hi&lt;/script&gt;" {
		t.Errorf("Sanitize = %q", got)
	}
}

func TestDesignData(t *testing.T) {
	good := map[string]interface{}{
		"selectedTemplate": "tshirt",
		"logos":            []interface{}{},
		"canvasSize":       map[string]interface{}{"width": 800.0, "height": 600.0},
	}
	if !validate.DesignData(good) {
		t.Error("well-formed data rejected")
	}

	bad := []map[string]interface{}{
		nil,
		{},
		{"selectedTemplate": "", "logos": []interface{}{}, "canvasSize": map[string]interface{}{"width": 1.0, "height": 1.0}},
		{"selectedTemplate": "t", "logos": "not-array", "canvasSize": map[string]interface{}{"width": 1.0, "height": 1.0}},
		{"selectedTemplate": "t", "logos": []interface{}{}, "canvasSize": map[string]interface{}{"width": "800", "height": 600.0}},
	}
	for i, d := range bad {
		if validate.DesignData(d) {
			t.Errorf("case %d: malformed data accepted", i)
		}
	}
}

func TestImageTypeAndData(t *testing.T) {
	if !validate.ImageType("logo") || !validate.ImageType("mockup") {
		t.Error("known types rejected")
	}
	if validate.ImageType("avatar") || validate.ImageType("") {
		t.Error("unknown type accepted")
	}
	if !validate.ImageData("data:image/png;base64,AAAA") {
		t.Error("data URL rejected")
	}
	if validate.ImageData("https://example.com/x.png") {
		t.Error("plain URL accepted")
	}
}
