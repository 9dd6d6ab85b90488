package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	baseMixin "github.com/clientdesk/clientdesk/ent/schema/mixin"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Subscription holds the schema definition for the Subscription entity.
type Subscription struct {
	ent.Schema
}

// Mixin of the Subscription.
func (Subscription) Mixin() []ent.Mixin {
	return []ent.Mixin{
		baseMixin.BaseMixin{},
		baseMixin.EnvironmentMixin{},
	}
}

// Fields of the Subscription.
func (Subscription) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			Unique().
			Immutable(),
		field.String("client_id").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			NotEmpty().
			Immutable(),
		field.String("project_id").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			Optional().
			Nillable(),
		field.Other("amount", decimal.Decimal{}).
			SchemaType(map[string]string{
				"postgres": "decimal(20,6)",
			}),
		field.Other("external_cost_amount", decimal.Decimal{}).
			Default(decimal.Zero).
			SchemaType(map[string]string{
				"postgres": "decimal(20,6)",
			}),
		field.String("billing_period").
			SchemaType(map[string]string{
				"postgres": "varchar(20)",
			}).
			NotEmpty().
			GoType(types.BillingPeriod("")),
		field.String("subscription_status").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			Default(string(types.SubscriptionStatusActive)).
			GoType(types.SubscriptionStatus("")),
		field.Time("start_date"),
		field.Time("next_due_date"),
		field.Time("end_date").
			Optional().
			Nillable(),
		field.Int("payments_issued_count").
			Default(0),
		field.Int("version").
			Default(1),
	}
}

// Indexes of the Subscription.
func (Subscription) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("tenant_id", "subscription_status", "next_due_date"),
		index.Fields("tenant_id", "client_id"),
	}
}
