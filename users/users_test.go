package users

import (
	"context"
	"reflect"
	"testing"
)

func TestStatic(t *testing.T) {
	ids, err := NewStatic().UserIDs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0}; !reflect.DeepEqual(ids, want) {
		t.Errorf("default users: have %v, want %v", ids, want)
	}

	ids, err = NewStatic(0, 10).UserIDs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 10}; !reflect.DeepEqual(ids, want) {
		t.Errorf("users: have %v, want %v", ids, want)
	}
}

func TestParseList(t *testing.T) {
	for _, test := range []struct {
		list string
		want []int
	}{
		{"0", []int{0}},
		{"0,10", []int{0, 10}},
		{" 0, 10 ", []int{0, 10}},
		{"", nil},
	} {
		have, err := ParseList(test.list)
		if err != nil {
			t.Fatalf("%q: %v", test.list, err)
		}
		if !reflect.DeepEqual(have, test.want) {
			t.Errorf("%q: have %v, want %v", test.list, have, test.want)
		}
	}

	if _, err := ParseList("0,x"); err == nil {
		t.Error("expected error for non-numeric ID")
	}
}
