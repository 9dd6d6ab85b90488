package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	baseMixin "github.com/clientdesk/clientdesk/ent/schema/mixin"
	"github.com/shopspring/decimal"
)

// Employee holds the schema definition for the Employee entity.
type Employee struct {
	ent.Schema
}

// Mixin of the Employee.
func (Employee) Mixin() []ent.Mixin {
	return []ent.Mixin{
		baseMixin.BaseMixin{},
		baseMixin.EnvironmentMixin{},
	}
}

// Fields of the Employee.
func (Employee) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			Unique().
			Immutable(),
		field.String("name").
			NotEmpty(),
		field.String("email").
			SchemaType(map[string]string{
				"postgres": "varchar(255)",
			}).
			NotEmpty(),
		field.Other("hourly_rate", decimal.Decimal{}).
			Default(decimal.Zero).
			SchemaType(map[string]string{
				"postgres": "decimal(20,6)",
			}),
		field.Int("version").
			Default(1),
	}
}

// Indexes of the Employee.
func (Employee) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("tenant_id", "email").
			Unique(),
	}
}
