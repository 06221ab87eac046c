package api

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"array", `["a","b"]`, []string{"a", "b"}},
		{"comma separated", `"penicillin, nuts"`, []string{"penicillin", "nuts"}},
		{"single value", `"latex"`, []string{"latex"}},
		{"empty string", `""`, []string{}},
		{"empty array", `[]`, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var l StringList
			if err := json.Unmarshal([]byte(tc.input), &l); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual([]string(l), tc.want) {
				t.Errorf("got %v, want %v", l, tc.want)
			}
		})
	}

	var l StringList
	if err := json.Unmarshal([]byte(`42`), &l); err == nil {
		t.Error("expected error for non-string input")
	}
}
