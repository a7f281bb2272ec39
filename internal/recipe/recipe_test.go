package recipe

import (
	"reflect"
	"strings"
	"testing"
)

func TestRegistry_Validates(t *testing.T) {
	if err := Validate(Registry()); err != nil {
		t.Fatalf("registry should be valid: %v", err)
	}
}

func TestRegistry_EndpointsAndFieldOrder(t *testing.T) {
	tests := []struct {
		key      string
		endpoint string
		fields   []string
	}{
		{SFT, "/generate/sft", []string{"topic", "model", "style", "num_pairs", "language", "temperature", "output_name"}},
		{NLSQL, "/generate/nl_sql", []string{"schema_file", "model", "num_samples", "output_name"}},
		{RAGQA, "/generate/rag_qa", []string{"context_file", "model", "difficulty", "num_pairs", "output_name"}},
		{Classification, "/generate/classification", []string{"task_description", "model", "num_samples", "output_name"}},
		{TextToCode, "/generate/text_to_code", []string{"domain", "programming_language", "model", "num_samples", "temperature", "output_name"}},
		{Multilingual, "/generate/multilingual", []string{"topic", "source_language", "destination_language", "model", "num_samples", "temperature", "output_name"}},
	}

	if got := Keys(); len(got) != len(tests) {
		t.Fatalf("Keys() = %v, want %d recipes", got, len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			r, ok := Lookup(tt.key)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.key)
			}
			if r.Endpoint != tt.endpoint {
				t.Fatalf("endpoint = %q, want %q", r.Endpoint, tt.endpoint)
			}
			if got := r.FieldNames(); !reflect.DeepEqual(got, tt.fields) {
				t.Fatalf("fields = %v, want %v", got, tt.fields)
			}
		})
	}
}

func TestRegistry_FieldKinds(t *testing.T) {
	kinds := map[string]map[string]Kind{
		SFT:            {"style": KindSelect, "num_pairs": KindNumber, "temperature": KindNumber},
		NLSQL:          {"schema_file": KindFile, "num_samples": KindNumber},
		RAGQA:          {"context_file": KindFile, "difficulty": KindSelect, "num_pairs": KindNumber},
		Classification: {"task_description": KindTextArea, "num_samples": KindNumber},
		TextToCode:     {"num_samples": KindNumber, "temperature": KindNumber},
		Multilingual:   {"source_language": KindSelect, "destination_language": KindSelect},
	}
	for key, want := range kinds {
		r := MustLookup(key)
		for name, kind := range want {
			f, ok := r.Field(name)
			if !ok {
				t.Fatalf("%s: missing field %s", key, name)
			}
			if f.Kind != kind {
				t.Fatalf("%s.%s kind = %s, want %s", key, name, f.Kind, kind)
			}
		}
	}
}

func TestRegistry_MultilingualLanguageOptions(t *testing.T) {
	r := MustLookup(Multilingual)
	src, _ := r.Field("source_language")
	dst, _ := r.Field("destination_language")
	if len(src.Options) != 35 {
		t.Fatalf("source options = %d, want 35", len(src.Options))
	}
	if !reflect.DeepEqual(src.Options, dst.Options) {
		t.Fatalf("source and destination option sets differ")
	}
}

func TestRegistry_ReturnsFreshCopies(t *testing.T) {
	r := MustLookup(SFT)
	r.Fields[0].Label = "mutated"
	style, _ := r.Field("style")
	style.Options[0] = "mutated"

	again := MustLookup(SFT)
	if again.Fields[0].Label == "mutated" {
		t.Fatalf("registry label was mutated through a returned copy")
	}
	if s, _ := again.Field("style"); s.Options[0] == "mutated" {
		t.Fatalf("registry options were mutated through a returned copy")
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, ok := Lookup("nope"); ok {
		t.Fatalf("expected unknown key to miss")
	}
	if _, ok := Lookup(" sft "); !ok {
		t.Fatalf("expected key to be trimmed")
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name    string
		recipes []Recipe
		want    string
	}{
		{
			name: "missing label",
			recipes: []Recipe{{Key: "x", Label: "X", Endpoint: "/x", Fields: []FieldDescriptor{
				{Name: "a", Kind: KindText},
			}}},
			want: "Label",
		},
		{
			name: "select without options",
			recipes: []Recipe{{Key: "x", Label: "X", Endpoint: "/x", Fields: []FieldDescriptor{
				{Name: "a", Label: "A", Kind: KindSelect},
			}}},
			want: "Options",
		},
		{
			name: "unknown kind",
			recipes: []Recipe{{Key: "x", Label: "X", Endpoint: "/x", Fields: []FieldDescriptor{
				{Name: "a", Label: "A", Kind: Kind("date")},
			}}},
			want: "oneof",
		},
		{
			name: "endpoint without slash",
			recipes: []Recipe{{Key: "x", Label: "X", Endpoint: "x", Fields: []FieldDescriptor{
				{Name: "a", Label: "A", Kind: KindText},
			}}},
			want: "startswith",
		},
		{
			name: "duplicate key",
			recipes: []Recipe{
				{Key: "x", Label: "X", Endpoint: "/x", Fields: []FieldDescriptor{{Name: "a", Label: "A", Kind: KindText}}},
				{Key: "x", Label: "X", Endpoint: "/x", Fields: []FieldDescriptor{{Name: "a", Label: "A", Kind: KindText}}},
			},
			want: "duplicate recipe key",
		},
		{
			name: "step on text field",
			recipes: []Recipe{{Key: "x", Label: "X", Endpoint: "/x", Fields: []FieldDescriptor{
				{Name: "a", Label: "A", Kind: KindText, Step: "0.1"},
			}}},
			want: "has a step",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.recipes)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}
