package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"hg", []string{"hget", "hgetall"}},
		{"HM", []string{"hmget"}},
		{"ex", []string{"exit"}},
		{"xyz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_CommandsSorted(t *testing.T) {
	cmds := NewCompleter().Commands()
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1] > cmds[i] {
			t.Fatalf("Commands() not sorted: %v", cmds)
		}
	}
	if len(cmds) != 11 {
		t.Errorf("Commands() = %v, want 7 server and 4 local commands", cmds)
	}
}
