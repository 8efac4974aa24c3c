package yamlutil_test

// Notes:
// - The strict/lenient split is the interesting behavior: config files use
//   UnmarshalStrict so typos fail loudly, everything else tolerates unknown
//   fields.

import (
	"errors"
	"strings"
	"testing"

	"github.com/docsign-io/docsign/internal/yamlutil"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("decodes known fields", func(t *testing.T) {
		t.Parallel()
		var s sample
		if err := yamlutil.Unmarshal([]byte("name: doc\ncount: 3\n"), &s); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if s.Name != "doc" || s.Count != 3 {
			t.Errorf("decoded %+v", s)
		}
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		t.Parallel()
		var s sample
		if err := yamlutil.Unmarshal([]byte("name: doc\nmystery: true\n"), &s); err != nil {
			t.Errorf("Unmarshal() error = %v, want nil for unknown field", err)
		}
	})

	t.Run("nil data", func(t *testing.T) {
		t.Parallel()
		var s sample
		if err := yamlutil.Unmarshal(nil, &s); !errors.Is(err, yamlutil.ErrNilData) {
			t.Errorf("error = %v, want ErrNilData", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()
		if err := yamlutil.Unmarshal([]byte("a: 1"), nil); !errors.Is(err, yamlutil.ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		t.Parallel()
		var s sample
		big := []byte(strings.Repeat("x", yamlutil.MaxInputSize+1))
		if err := yamlutil.Unmarshal(big, &s); !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		var s sample
		if err := yamlutil.Unmarshal([]byte("name: [unclosed"), &s); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Unknown fields rejected
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("decodes known fields", func(t *testing.T) {
		t.Parallel()
		var s sample
		if err := yamlutil.UnmarshalStrict([]byte("name: doc\ncount: 7\n"), &s); err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if s.Count != 7 {
			t.Errorf("Count = %d, want 7", s.Count)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		var s sample
		if err := yamlutil.UnmarshalStrict([]byte("name: doc\ntypo: 1\n"), &s); err == nil {
			t.Error("expected error for unknown field in strict mode")
		}
	})
}
