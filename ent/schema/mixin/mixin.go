package mixin

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
	"github.com/clientdesk/clientdesk/internal/types"
)

// BaseMixin implements the common columns shared by every entity.
type BaseMixin struct {
	mixin.Schema
}

// Fields of the BaseMixin.
func (BaseMixin) Fields() []ent.Field {
	return []ent.Field{
		field.String("tenant_id").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			NotEmpty().
			Immutable(),
		field.String("status").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			Default(string(types.StatusPublished)),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
		field.String("created_by").
			Optional(),
		field.String("updated_by").
			Optional(),
	}
}

// Indexes of the BaseMixin.
func (BaseMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("tenant_id", "status"),
	}
}

// EnvironmentMixin adds the environment scoping column.
type EnvironmentMixin struct {
	mixin.Schema
}

// Fields of the EnvironmentMixin.
func (EnvironmentMixin) Fields() []ent.Field {
	return []ent.Field{
		field.String("environment_id").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			Optional().
			Immutable(),
	}
}

// Indexes of the EnvironmentMixin.
func (EnvironmentMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("environment_id"),
	}
}
