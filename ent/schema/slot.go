package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Slot is a named JSON document. The app keeps exactly three of them:
// settings, curriculum and plan. Writes always replace the whole value.
type Slot struct {
	ent.Schema
}

func (Slot) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			NotEmpty().
			Comment("Slot name: settings, curriculum, plan"),
		field.Text("value").
			Comment("Serialized JSON document"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last time the slot was written"),
	}
}
