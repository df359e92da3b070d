package model

import (
	"reflect"
	"strings"
	"testing"
)

func TestQuestionMaxIterationsDefault(t *testing.T) {
	field, ok := reflect.TypeOf(Question{}).FieldByName("MaxIterations")
	if !ok {
		t.Fatal("Question must have a MaxIterations column")
	}
	if tag := field.Tag.Get("gorm"); !strings.Contains(tag, "default:2") {
		t.Errorf("MaxIterations gorm tag = %q, want default:2 so unseeded questions allow one follow-up", tag)
	}
}
