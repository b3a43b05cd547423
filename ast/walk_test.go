package ast

import "testing"

func TestWalkCountsNodes(t *testing.T) {
	file := &FileNode{
		Syntax: "proto3",
		Messages: []*MessageNode{
			{
				Name: "Foo",
				Body: &MessageBody{
					Fields: []*FieldNode{
						{Name: "bar", TypeName: "string", Number: 1},
					},
				},
			},
		},
	}

	count := 0
	Walk(VisitorFunc(func(n Node) bool {
		count++
		return true
	}), file)

	// file, message, field == 3
	if count != 3 {
		t.Fatalf("expected 3 nodes visited, got %d", count)
	}
}

func TestWalkPrune(t *testing.T) {
	file := &FileNode{
		Messages: []*MessageNode{{Name: "A", Body: &MessageBody{}}},
	}
	count := 0
	Walk(VisitorFunc(func(n Node) bool {
		count++
		if _, ok := n.(*FileNode); ok {
			return false
		}
		return true
	}), file)
	if count != 1 {
		t.Fatalf("expected pruning to stop at file node, got %d visits", count)
	}
}
