package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	baseMixin "github.com/clientdesk/clientdesk/ent/schema/mixin"
	"github.com/shopspring/decimal"
)

// CompensationForecast holds the schema definition for the
// CompensationForecast entity. One row per employee per calendar month.
type CompensationForecast struct {
	ent.Schema
}

// Mixin of the CompensationForecast.
func (CompensationForecast) Mixin() []ent.Mixin {
	return []ent.Mixin{
		baseMixin.BaseMixin{},
		baseMixin.EnvironmentMixin{},
	}
}

// Fields of the CompensationForecast.
func (CompensationForecast) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			Unique().
			Immutable(),
		field.String("employee_id").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			NotEmpty().
			Immutable(),
		field.Int("month").
			Min(1).
			Max(12).
			Immutable(),
		field.Int("year").
			Immutable(),
		field.Other("forecasted_amount", decimal.Decimal{}).
			Default(decimal.Zero).
			SchemaType(map[string]string{
				"postgres": "decimal(20,6)",
			}),
		field.Other("notified_amount", decimal.Decimal{}).
			Optional().
			Nillable().
			SchemaType(map[string]string{
				"postgres": "decimal(20,6)",
			}),
		field.Time("notification_date").
			Optional().
			Nillable(),
		field.Int("version").
			Default(1),
	}
}

// Indexes of the CompensationForecast.
func (CompensationForecast) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("tenant_id", "employee_id", "year", "month").
			Unique(),
		index.Fields("tenant_id", "year", "month"),
	}
}
