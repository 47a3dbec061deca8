package storage

import (
	"testing"

	"github.com/brandmap/brandmap/pkg/types"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		entity string
		kind   types.MediaKind
		ext    string
		want   string
	}{
		{"simple", "Accenture", types.MediaKindLogo, ".png", "accenture/logo.png"},
		{"punctuation folded", "Atos (Former Syntel)", types.MediaKindLogo, ".jpg", "atos_former_syntel/logo.jpg"},
		{"extension without dot", "Wipro", types.MediaKindLogo, "png", "wipro/logo.png"},
		{"uppercase extension", "Wipro", types.MediaKindLogo, ".PNG", "wipro/logo.png"},
		{"spaces", "Omega Healthcare", types.MediaKindLogo, ".svg", "omega_healthcare/logo.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectKey(tt.entity, tt.kind, tt.ext); got != tt.want {
				t.Errorf("ObjectKey(%q, %q, %q) = %q, want %q",
					tt.entity, tt.kind, tt.ext, got, tt.want)
			}
		})
	}
}

func TestObjectKeyDeterministic(t *testing.T) {
	first := ObjectKey("AWS Philippines Inc", types.MediaKindLogo, ".png")
	for range 5 {
		if again := ObjectKey("AWS Philippines Inc", types.MediaKindLogo, ".png"); again != first {
			t.Fatalf("key changed across calls: %q != %q", again, first)
		}
	}
}
