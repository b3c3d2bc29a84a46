package registry

import (
	"testing"

	"github.com/vovakirdan/brick-breaker/internal/config"
)

func TestRegisterAndCreate(t *testing.T) {
	Register("test-two-rows", "Two Rows", func() config.Level {
		return config.Level{RowCounts: []int{2, 1}}
	})

	if !Exists("test-two-rows") {
		t.Fatal("Exists() = false after Register")
	}

	l, err := Create("test-two-rows")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if l.Name != "test-two-rows" {
		t.Errorf("Name = %q, expected ID as fallback name", l.Name)
	}
	if l.Bricks() != 3 {
		t.Errorf("Bricks() = %d, expected 3", l.Bricks())
	}

	// Mutating a created layout must not affect later ones.
	l.RowCounts[0] = 99
	again, _ := Create("test-two-rows")
	if again.RowCounts[0] != 2 {
		t.Errorf("RowCounts[0] = %d after mutation of an earlier copy", again.RowCounts[0])
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); err == nil {
		t.Error("Create() of unknown layout returned nil error")
	}
	if Exists("does-not-exist") {
		t.Error("Exists() = true for unknown layout")
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		reg  func()
	}{
		{
			name: "duplicate",
			reg: func() {
				f := func() config.Level { return config.Level{RowCounts: []int{1}} }
				Register("test-dup", "Dup", f)
				Register("test-dup", "Dup", f)
			},
		},
		{
			name: "invalid layout",
			reg: func() {
				Register("test-invalid", "Invalid", func() config.Level {
					return config.Level{RowCounts: []int{1, 2}, Colors: []string{"#ffffff"}}
				})
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register() did not panic")
				}
			}()
			tc.reg()
		})
	}
}

func TestListSorted(t *testing.T) {
	Register("test-zz", "ZZ", func() config.Level { return config.Level{RowCounts: []int{4}} })
	Register("test-aa", "AA", func() config.Level { return config.Level{RowCounts: []int{1, 1}} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() not sorted at %d: %q >= %q", i, list[i-1].ID, list[i].ID)
		}
	}

	var found bool
	for _, info := range list {
		if info.ID == "test-aa" {
			found = true
			if info.Title != "AA" || info.Rows != 2 || info.Bricks != 2 {
				t.Errorf("info = %+v, expected title AA with 2 rows and 2 bricks", info)
			}
		}
	}
	if !found {
		t.Error("List() missing test-aa")
	}
}
