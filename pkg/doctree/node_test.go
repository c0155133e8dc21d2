package doctree

import (
	"encoding/json"
	"testing"
)

func TestMarshal_EmptyRoot(t *testing.T) {
	out, err := json.Marshal(NewRoot())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"type":"root","children":[]}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestMarshal_TextFlags(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "plain run omits all flags",
			node: NewText("Hello"),
			want: `{"type":"text","value":"Hello"}`,
		},
		{
			name: "single flag present as true",
			node: NewTextFlags("world", Flags{Italic: true}),
			want: `{"type":"text","value":"world","italic":true}`,
		},
		{
			name: "composed flags both present",
			node: NewTextFlags("x", Flags{Italic: true, Bold: true}),
			want: `{"type":"text","value":"x","italic":true,"bold":true}`,
		},
		{
			name: "empty value still serialized",
			node: NewText(" "),
			want: `{"type":"text","value":" "}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.node)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("got %s, want %s", out, tt.want)
			}
		})
	}
}

func TestMarshal_Heading(t *testing.T) {
	h := NewHeading(2, []*Node{NewText("Title")})
	out, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"type":"heading","level":2,"children":[{"type":"text","value":"Title"}]}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestMarshal_List(t *testing.T) {
	l := NewList(ListUnordered, []*Node{
		NewListItem([]*Node{NewText("One")}),
		NewListItem([]*Node{NewText("Two")}),
	})
	out, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"type":"list","listType":"unordered","children":[` +
		`{"type":"listItem","children":[{"type":"text","value":"One"}]},` +
		`{"type":"listItem","children":[{"type":"text","value":"Two"}]}]}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestMarshal_FullDocument(t *testing.T) {
	root := NewRoot().Append(
		NewParagraph([]*Node{
			NewText("Hello "),
			NewTextFlags("world", Flags{Italic: true}),
		}),
	)
	out, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"type":"root","children":[{"type":"paragraph","children":[` +
		`{"type":"text","value":"Hello "},` +
		`{"type":"text","value":"world","italic":true}]}]}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestFlagsNone(t *testing.T) {
	if !(Flags{}).None() {
		t.Error("zero Flags should report None")
	}
	if (Flags{Bold: true}).None() {
		t.Error("set flag should not report None")
	}
}
