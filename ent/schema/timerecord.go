package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	baseMixin "github.com/clientdesk/clientdesk/ent/schema/mixin"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// TimeRecord holds the schema definition for the TimeRecord entity.
type TimeRecord struct {
	ent.Schema
}

// Mixin of the TimeRecord.
func (TimeRecord) Mixin() []ent.Mixin {
	return []ent.Mixin{
		baseMixin.BaseMixin{},
		baseMixin.EnvironmentMixin{},
	}
}

// Fields of the TimeRecord.
func (TimeRecord) Fields() []ent.Field {
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
		field.String("project_id").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			Optional().
			Nillable(),
		field.Time("work_date"),
		field.Other("regular_hours", decimal.Decimal{}).
			SchemaType(map[string]string{
				"postgres": "decimal(10,2)",
			}),
		field.Other("overtime_hours", decimal.Decimal{}).
			Default(decimal.Zero).
			SchemaType(map[string]string{
				"postgres": "decimal(10,2)",
			}),
		field.String("time_record_status").
			SchemaType(map[string]string{
				"postgres": "varchar(50)",
			}).
			Default(string(types.TimeRecordStatusPending)).
			GoType(types.TimeRecordStatus("")),
		field.Int("version").
			Default(1),
	}
}

// Indexes of the TimeRecord.
func (TimeRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("tenant_id", "employee_id", "work_date"),
		index.Fields("tenant_id", "time_record_status"),
	}
}
