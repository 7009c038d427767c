package ui

import (
	"strings"
	"testing"
)

func TestSplashScreenVisibility(t *testing.T) {
	splash := NewSplashScreen()

	if splash.IsVisible() {
		t.Error("Splash screen should be hidden initially")
	}

	splash.Show()
	if !splash.IsVisible() {
		t.Error("Splash screen should be visible after Show()")
	}

	splash.Hide()
	if splash.IsVisible() {
		t.Error("Splash screen should be hidden after Hide()")
	}
}

func TestSplashScreenContent(t *testing.T) {
	splash := NewSplashScreen()
	content := splash.GetContent()

	if len(content) == 0 {
		t.Fatal("Splash screen content should not be empty")
	}

	contentStr := strings.Join(content, "\n")

	requiredStrings := []string{"tdiff", "Version", ":open", ":q", "?"}
	for _, required := range requiredStrings {
		if !strings.Contains(contentStr, required) {
			t.Errorf("Splash screen content should contain %q", required)
		}
	}
}
