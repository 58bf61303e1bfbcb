package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderHeader(t *testing.T) {
	h := ansi.Strip(RenderHeader("Quick Quiz", "4 questions", 80))
	if !strings.Contains(h, "quizbox") || !strings.Contains(h, "Quick Quiz") || !strings.Contains(h, "4 questions") {
		t.Fatalf("header missing parts:\n%s", h)
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("t", "", 70)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 70)
	frame := RenderFrame(header, "body", footer, 70, 20)
	if got := lipgloss.Height(frame); got != 20 {
		t.Fatalf("frame height = %d, want 20", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(40, 30) || !IsTooSmall(80, 10) || IsTooSmall(80, 24) {
		t.Fatal("unexpected size check")
	}
}
