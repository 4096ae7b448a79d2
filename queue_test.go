package vkbase

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func testFamilies() []vk.QueueFamilyProperties {
	graphicsAll := vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit)
	return []vk.QueueFamilyProperties{
		{QueueFlags: graphicsAll, QueueCount: 2},
		{QueueFlags: vk.QueueFlags(vk.QueueTransferBit), QueueCount: 1},
		{QueueFlags: vk.QueueFlags(vk.QueueComputeBit | vk.QueueTransferBit), QueueCount: 1},
	}
}

func requesterOver(families []vk.QueueFamilyProperties) *QueueRequester {
	return NewQueueRequester(&PhysicalDevice{QueueFamilies: families}, nil)
}

func TestRequestPrefersDedicatedFamily(t *testing.T) {
	r := requesterOver(testFamilies())

	q, err := r.Request(vk.QueueFlags(vk.QueueTransferBit), 1.0)
	if err != nil {
		t.Fatalf("transfer request failed: %v", err)
	}
	if q.FamilyIndex != 1 {
		t.Errorf("transfer queue landed in family %d, want dedicated family 1", q.FamilyIndex)
	}
}

func TestRequestFallsBackWhenDedicatedFull(t *testing.T) {
	r := requesterOver(testFamilies())

	if _, err := r.Request(vk.QueueFlags(vk.QueueTransferBit), 1.0); err != nil {
		t.Fatalf("first transfer request failed: %v", err)
	}
	q, err := r.Request(vk.QueueFlags(vk.QueueTransferBit), 0.5)
	if err != nil {
		t.Fatalf("second transfer request failed: %v", err)
	}
	if q.FamilyIndex != 2 {
		t.Errorf("overflow transfer queue landed in family %d, want next most specialized family 2", q.FamilyIndex)
	}
}

func TestRequestGraphicsUsesCapableFamily(t *testing.T) {
	r := requesterOver(testFamilies())

	q, err := r.Request(vk.QueueFlags(vk.QueueGraphicsBit), 1.0)
	if err != nil {
		t.Fatalf("graphics request failed: %v", err)
	}
	if q.FamilyIndex != 0 {
		t.Errorf("graphics queue landed in family %d, want family 0", q.FamilyIndex)
	}
}

func TestRequestErrorsWhenExhausted(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit), QueueCount: 1},
	}
	r := requesterOver(families)

	if _, err := r.Request(vk.QueueFlags(vk.QueueGraphicsBit), 1.0); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	_, err := r.Request(vk.QueueFlags(vk.QueueGraphicsBit), 1.0)
	if err == nil {
		t.Fatal("expected error once the only family is exhausted")
	}
	if KindOf(err) != KindUnsupported {
		t.Errorf("exhaustion error kind = %v, want KindUnsupported", KindOf(err))
	}
}

func TestRequestErrorsOnMissingCapability(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit), QueueCount: 4},
	}
	r := requesterOver(families)

	if _, err := r.Request(vk.QueueFlags(vk.QueueSparseBindingBit), 1.0); err == nil {
		t.Fatal("expected error for a capability no family has")
	}
}

func TestQueueCIsGroupByFamily(t *testing.T) {
	r := requesterOver(testFamilies())

	mustRequest := func(flags vk.QueueFlagBits, priority float32) *Queue {
		t.Helper()
		q, err := r.Request(vk.QueueFlags(flags), priority)
		if err != nil {
			t.Fatalf("request %v failed: %v", flags, err)
		}
		return q
	}

	g := mustRequest(vk.QueueGraphicsBit, 1.0)
	c := mustRequest(vk.QueueComputeBit, 0.8)
	g2 := mustRequest(vk.QueueGraphicsBit, 0.5)

	cis := r.QueueCIs()
	if len(cis) != 2 {
		t.Fatalf("got %d queue create infos, want 2", len(cis))
	}
	total := uint32(0)
	for _, ci := range cis {
		total += ci.QueueCount
		if ci.QueueFamilyIndex == g.FamilyIndex && ci.QueueCount != 2 {
			t.Errorf("graphics family requests %d queues, want 2", ci.QueueCount)
		}
		if len(ci.PQueuePriorities) != int(ci.QueueCount) {
			t.Errorf("family %d has %d priorities for %d queues",
				ci.QueueFamilyIndex, len(ci.PQueuePriorities), ci.QueueCount)
		}
	}
	if total != 3 {
		t.Errorf("requested %d queues in total, want 3", total)
	}
	if c.FamilyIndex != 2 {
		t.Errorf("compute queue landed in family %d, want dedicated family 2", c.FamilyIndex)
	}
	if g.FamilyIndex != g2.FamilyIndex || g.queueIndex == g2.queueIndex {
		t.Error("two graphics queues must share a family under distinct indices")
	}
}
