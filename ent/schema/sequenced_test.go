package schema

import (
	"testing"
	"time"
)

func TestSequencedMixin_Fields(t *testing.T) {
	fields := SequencedMixin{}.Fields()
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}

	seq := fields[0].Descriptor()
	if seq.Name != "sequence" || !seq.Unique || !seq.Immutable {
		t.Errorf("sequence = %+v", seq)
	}

	ts := fields[1].Descriptor()
	if ts.Name != "timestamp" || !ts.Immutable {
		t.Errorf("timestamp = %+v", ts)
	}
	def, ok := ts.Default.(func() time.Time)
	if !ok {
		t.Fatalf("timestamp default is %T", ts.Default)
	}
	if loc := def().Location(); loc != time.UTC {
		t.Errorf("timestamp default in %v, want UTC", loc)
	}
}

func TestLLMRequestEvent_UsesSequencedMixin(t *testing.T) {
	mixins := LLMRequestEvent{}.Mixin()
	if len(mixins) != 1 {
		t.Fatalf("got %d mixins", len(mixins))
	}
	if _, ok := mixins[0].(SequencedMixin); !ok {
		t.Errorf("mixin = %T", mixins[0])
	}
}
