package tag

import (
	"errors"
	"testing"
)

func TestGenerate(t *testing.T) {
	cases := []struct {
		name        string
		category    string
		subcategory string
		seq         int
		want        string
		wantErr     error
	}{
		{name: "casual shirt", category: "shirt", subcategory: "casual", seq: 7, want: "SC0007"},
		{name: "official shirt", category: "shirt", subcategory: "official", seq: 12, want: "SO0012"},
		{name: "simple category", category: "tie", subcategory: "", seq: 3, want: "TIE0003"},
		{name: "belt", category: "belt", subcategory: "", seq: 42, want: "BLT0042"},
		{name: "zero sequence pads", category: "vest", subcategory: "", seq: 0, want: "VST0000"},
		{name: "large sequence widens", category: "boxers", subcategory: "", seq: 12345, want: "BX12345"},
		{name: "upper-cased input normalizes", category: "SHIRT", subcategory: "Casual", seq: 1, want: "SC0001"},
		{name: "padded input normalizes", category: " shoes ", subcategory: "official", seq: 9, want: "SHO0009"},
		{name: "unknown category", category: "unknown", subcategory: "", seq: 1, wantErr: ErrInvalidCategory},
		{name: "unknown subcategory", category: "shirt", subcategory: "invalid", seq: 1, wantErr: ErrInvalidSubcategory},
		{name: "missing subcategory", category: "shirt", subcategory: "", seq: 1, wantErr: ErrInvalidSubcategory},
		{name: "subcategory on simple category", category: "tie", subcategory: "casual", seq: 1, wantErr: ErrInvalidSubcategory},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Generate(tc.category, tc.subcategory, tc.seq)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Generate(%q, %q, %d) error = %v, want %v", tc.category, tc.subcategory, tc.seq, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate(%q, %q, %d) unexpected error: %v", tc.category, tc.subcategory, tc.seq, err)
			}
			if got != tc.want {
				t.Fatalf("Generate(%q, %q, %d) = %q, want %q", tc.category, tc.subcategory, tc.seq, got, tc.want)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := Generate("sweater", "official", 88)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Generate("sweater", "official", 88)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("Generate is not deterministic: %q then %q", first, again)
		}
	}
}

func TestHasSubcategories(t *testing.T) {
	if ok, err := HasSubcategories("shirt"); err != nil || !ok {
		t.Fatalf("shirt should require a subcategory, got %v, %v", ok, err)
	}
	if ok, err := HasSubcategories("tie"); err != nil || ok {
		t.Fatalf("tie should not require a subcategory, got %v, %v", ok, err)
	}
	if _, err := HasSubcategories("nope"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("unknown category should fail, got %v", err)
	}
}
