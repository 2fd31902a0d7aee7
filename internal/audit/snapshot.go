package audit

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"

	"gorm.io/gorm/schema"
)

// Values is a schema-less snapshot keyed by column name.
type Values map[string]any

var (
	ErrNilEntity       = errors.New("audit: nil entity")
	ErrNotSnapshotable = errors.New("audit: entity is not a struct")
)

var (
	schemaCache sync.Map
	namer       = schema.NamingStrategy{}
)

// Snapshot captures every persisted column of entity (per its gorm schema).
// Values that cannot be encoded as JSON are left out and their column names
// returned in dropped; the rest of the snapshot is still usable.
func Snapshot(entity any) (values Values, dropped []string, err error) {
	rv, s, err := parse(entity)
	if err != nil {
		return nil, nil, err
	}

	ctx := context.Background()
	values = make(Values, len(s.Fields))
	for _, f := range s.Fields {
		//リレーションや gorm:"-" はカラムを持たない
		if f.DBName == "" {
			continue
		}
		v, _ := f.ValueOf(ctx, rv)
		if _, err := json.Marshal(v); err != nil {
			dropped = append(dropped, f.DBName)
			continue
		}
		values[f.DBName] = v
	}
	return values, dropped, nil
}

// PrimaryKey returns the integer primary key of entity, if it has one set.
func PrimaryKey(entity any) (int64, bool) {
	rv, s, err := parse(entity)
	if err != nil || s.PrioritizedPrimaryField == nil {
		return 0, false
	}

	v, zero := s.PrioritizedPrimaryField.ValueOf(context.Background(), rv)
	if zero {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	case int32:
		return int64(id), true
	case uint:
		return int64(id), true
	case uint32:
		return int64(id), true
	case uint64:
		return int64(id), true
	}
	return 0, false
}

func parse(entity any) (reflect.Value, *schema.Schema, error) {
	if entity == nil {
		return reflect.Value{}, nil, ErrNilEntity
	}
	rv := reflect.ValueOf(entity)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, nil, ErrNilEntity
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, nil, ErrNotSnapshotable
	}

	s, err := schema.Parse(rv.Interface(), &schemaCache, namer)
	if err != nil {
		return reflect.Value{}, nil, err
	}
	return rv, s, nil
}
