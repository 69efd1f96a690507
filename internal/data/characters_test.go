package data

import (
	"reflect"
	"testing"
)

func TestParseDelimitedCharacters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "empty field", input: "", want: []string{}},
		{name: "single character", input: `["Neo"]`, want: []string{"Neo"}},
		{name: "two characters", input: `["Alice","Bob"]`, want: []string{"Alice", "Bob"}},
		{name: "three characters", input: `["Self","Host","Narrator"]`, want: []string{"Self", "Host", "Narrator"}},
		{name: "missing opening delimiter", input: `Alice","Bob"]`, wantErr: true},
		{name: "missing closing delimiter", input: `["Alice","Bob`, wantErr: true},
		{name: "unquoted array", input: `[Alice]`, wantErr: true},
		{name: "plain text", input: `Alice`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDelimitedCharacters(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("got %v; want error", got)
				}
				return
			}

			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v; want %v", got, tt.want)
			}
		})
	}
}

func TestParseStrictCharacters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "empty field", input: "", want: []string{}},
		{name: "empty array", input: `[]`, want: []string{}},
		{name: "single character", input: `["Neo"]`, want: []string{"Neo"}},
		{name: "two characters", input: `["Alice","Bob"]`, want: []string{"Alice", "Bob"}},
		{name: "escaped quote", input: `["O\"Brien"]`, want: []string{`O"Brien`}},
		{name: "truncated array", input: `["Alice`, wantErr: true},
		{name: "not an array", input: `{"name":"Alice"}`, wantErr: true},
		{name: "plain text", input: `Alice`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrictCharacters(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("got %v; want error", got)
				}
				return
			}

			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v; want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v; want %v", got, tt.want)
				}
			}
		})
	}
}
