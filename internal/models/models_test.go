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

func TestSession_Fields(t *testing.T) {
	typ := reflect.TypeOf(Session{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "autoIncrement")
	assertGormTag(t, typ, "Title", "size:256")
	assertGormTag(t, typ, "StartTime", "size:5")
	assertGormTag(t, typ, "StartTime", "not null")
	assertGormTag(t, typ, "EndTime", "size:5")
	assertGormTag(t, typ, "EndTime", "not null")
	assertGormTag(t, typ, "Active", "default:false")
	assertGormTag(t, typ, "Active", "index")

	assertFieldType(t, typ, "ID", "uint")
	assertFieldType(t, typ, "StartTime", "string")
	assertFieldType(t, typ, "EndTime", "string")
	assertFieldType(t, typ, "Active", "bool")
	assertFieldType(t, typ, "CreatedAt", "time.Time")
	assertFieldType(t, typ, "UpdatedAt", "time.Time")
}

func TestMessage_Fields(t *testing.T) {
	typ := reflect.TypeOf(Message{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "autoIncrement")
	assertGormTag(t, typ, "Content", "type:text")
	assertGormTag(t, typ, "Content", "not null")
	assertGormTag(t, typ, "IsVisible", "default:true")
	assertGormTag(t, typ, "IsVisible", "index")

	assertFieldType(t, typ, "ID", "uint")
	assertFieldType(t, typ, "Content", "string")
	assertFieldType(t, typ, "IsVisible", "bool")
	assertFieldType(t, typ, "CreatedAt", "time.Time")
}
