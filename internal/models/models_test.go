package models

import (
	"reflect"
	"strings"
	"testing"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

// assertFieldType checks that a struct field has the expected Go type.
func assertFieldType(t *testing.T, typ reflect.Type, fieldName, expectedType string) {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	got := f.Type.String()
	if got != expectedType {
		t.Errorf("%s.%s type = %q, want %q", typ.Name(), fieldName, got, expectedType)
	}
}

func TestStoredRecord_Fields(t *testing.T) {
	typ := reflect.TypeOf(StoredRecord{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "size:36")
	assertGormTag(t, typ, "StoreKey", "not null")
	assertGormTag(t, typ, "StoreKey", "index:idx_store_position,priority:1")
	assertGormTag(t, typ, "Position", "index:idx_store_position,priority:2")
	assertGormTag(t, typ, "RecordKey", "size:32")
	assertGormTag(t, typ, "RecordKey", "index")
	assertGormTag(t, typ, "Team", "index")
	assertGormTag(t, typ, "Payload", "type:text")

	assertFieldType(t, typ, "Position", "int")
	assertFieldType(t, typ, "RecordKey", "string")
	assertFieldType(t, typ, "SavedAt", "time.Time")
}

func TestStoreInfo_Fields(t *testing.T) {
	typ := reflect.TypeOf(StoreInfo{})

	assertGormTag(t, typ, "Key", "primaryKey")
	assertGormTag(t, typ, "Key", "size:64")
	assertGormTag(t, typ, "Layout", "default:folded")
	assertGormTag(t, typ, "Comparison", "default:mine_opponent")

	assertFieldType(t, typ, "CreatedAt", "time.Time")
}
