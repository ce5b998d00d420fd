package analytics

// Field is one named scalar of a result record.
type Field struct {
	Name  string
	Value any // string, int64, float64, bool or nil
}

// Record is a flat, ordered result row. Every operation result implements it
// so reports can be rendered without knowing the concrete type.
type Record interface {
	Fields() []Field
}

// FieldMap flattens a record into a name -> value map.
func FieldMap(r Record) map[string]any {
	fields := r.Fields()
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Value
	}
	return m
}

func toRecords[T Record](items []T) []Record {
	records := make([]Record, len(items))
	for i, item := range items {
		records[i] = item
	}
	return records
}

// optional unwraps a sentinel pointer so that a missing value is a bare nil.
func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptr[T any](v T) *T {
	return &v
}

// trendFields are the identifying columns shared by per-trend records.
func trendFields(name, location, date string) []Field {
	return []Field{
		{Name: "name", Value: name},
		{Name: "location", Value: location},
		{Name: "date", Value: date},
	}
}
