package catalog

import (
	"regexp"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Vestido Florê Midi", "vestido-flore-midi"},
		{"Calça Jeans Skinny", "calca-jeans-skinny"},
		{"Blusa Tricô Gola Alta", "blusa-trico-gola-alta"},
		{"  Saia   Plissada  ", "saia-plissada"},
		{"Conjunto 2 Peças", "conjunto-2-pecas"},
		{"Bolsa (Edição Limitada)", "bolsa-edicao-limitada"},
		{"ÀÉÎÕÜ", "aeiou"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.name); got != tt.want {
			t.Errorf("Slugify(%q): got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	slug := Slugify("Vestido Longo Estampado")
	if again := Slugify(slug); again != slug {
		t.Errorf("Slugify not idempotent: %q -> %q", slug, again)
	}
}

var skuPattern = regexp.MustCompile(`^[A-Z0-9]{1,3}-[0-9A-Z]{6}$`)

func TestGenerateSKU(t *testing.T) {
	for _, cat := range Categories() {
		sku := GenerateSKU(cat)
		if !skuPattern.MatchString(sku) {
			t.Errorf("GenerateSKU(%q): %q does not match expected shape", cat, sku)
		}
		want := strings.ToUpper(stripDiacritics(string(cat)))
		if len(want) > 3 {
			want = want[:3]
		}
		if prefix, _, _ := strings.Cut(sku, "-"); prefix != want {
			t.Errorf("GenerateSKU(%q): prefix %q, want %q", cat, prefix, want)
		}
	}
}

func TestGenerateSKUUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sku := GenerateSKU(CategoryDresses)
		if seen[sku] {
			t.Fatalf("duplicate sku %q after %d generations", sku, i)
		}
		seen[sku] = true
	}
}

func TestCategoryIsKnown(t *testing.T) {
	if !CategoryDresses.IsKnown() {
		t.Error("vestidos should be known")
	}
	if Category("eletronicos").IsKnown() {
		t.Error("eletronicos should not be known")
	}
}
