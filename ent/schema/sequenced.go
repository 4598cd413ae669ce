package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// SequencedMixin gives an append-only table a global ordering and a UTC
// timestamp. `mastermind llm` lists and filters request events by these.
type SequencedMixin struct {
	mixin.Schema
}

func (SequencedMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Position in the append order, from the sequence counter"),
		field.Time("timestamp").
			Default(nowUTC).
			Immutable().
			Comment("When the row was appended, in UTC"),
	}
}

// Indexes covers the --from/--to range filters. sequence is already
// indexed by its unique constraint.
func (SequencedMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}

func nowUTC() time.Time { return time.Now().UTC() }
