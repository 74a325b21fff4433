package vkr

import "testing"

func TestQueueFamilyIndicesComplete(t *testing.T) {
	i := QueueFamilyIndices{Graphics: noFamily, Present: noFamily}
	if i.Complete() {
		t.Error("empty indices should not be complete")
	}

	i.Graphics = 0
	if i.Complete() {
		t.Error("graphics alone should not be complete")
	}

	i.Present = 1
	if !i.Complete() {
		t.Error("both families set should be complete")
	}
}

func TestQueueFamilyIndicesDistinct(t *testing.T) {
	shared := QueueFamilyIndices{Graphics: 0, Present: 0}
	d := shared.Distinct()
	if len(d) != 1 || d[0] != 0 {
		t.Errorf("shared family should dedupe to one entry, got %v", d)
	}

	split := QueueFamilyIndices{Graphics: 0, Present: 2}
	d = split.Distinct()
	if len(d) != 2 || d[0] != 0 || d[1] != 2 {
		t.Errorf("split families should keep both entries, got %v", d)
	}
}
