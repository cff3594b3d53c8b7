package entity

// Variant describes one lookup table. Table and LabelColumn come from this
// fixed set only and are safe to interpolate into SQL.
type Variant struct {
	Table       string
	LabelColumn string
	// Field is the request key that references this table.
	Field string
}

var (
	ReserveCycle        = Variant{Table: "reserve_cycles", LabelColumn: "reserve_cycle", Field: "reserve_cycle_id"}
	ServiceDuration     = Variant{Table: "service_durations", LabelColumn: "service_duration", Field: "service_duration_id"}
	ServiceStartingTime = Variant{Table: "service_starting_times", LabelColumn: "starting_time", Field: "starting_time_id"}
	ServiceDayOfWeek    = Variant{Table: "service_day_of_weeks", LabelColumn: "day_of_week", Field: "day_of_week_id"}
	MoveCategory        = Variant{Table: "move_categories", LabelColumn: "name", Field: "move_category_id"}
	Status              = Variant{Table: "statuses", LabelColumn: "status", Field: "status_id"}
)

// Variants lists every lookup table in creation order.
var Variants = []Variant{ReserveCycle, ServiceDuration, ServiceStartingTime, ServiceDayOfWeek, MoveCategory, Status}

// Option is one immutable lookup row.
type Option struct {
	ID    int64  `db:"id"`
	Label string `db:"label"`
}

// Row renders the option with its stored column names, e.g. {"id":1,"reserve_cycle":"1회"}.
func (o Option) Row(v Variant) map[string]any {
	return map[string]any{"id": o.ID, v.LabelColumn: o.Label}
}
