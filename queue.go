package vkbase

import (
	"math/bits"

	vk "github.com/vulkan-go/vulkan"
)

// Queue is a dispatched device queue with the family it came from.
type Queue struct {
	Handle      vk.Queue
	FamilyIndex uint32
	queueIndex  uint32
}

// familyRequest accumulates the queues requested from one family.
type familyRequest struct {
	family     uint32
	priorities []float32
}

// QueueStrategy picks the family a queue request lands in. It exists so the
// selection policy can change without touching device creation.
type QueueStrategy interface {
	// SelectFamily returns the family index for a queue with the given
	// capability flags, or an error when no family can take it. used maps
	// family index to the number of queues already claimed from it.
	SelectFamily(families []vk.QueueFamilyProperties, flags vk.QueueFlags, used map[uint32]uint32) (uint32, error)
}

// DedicatedFirstStrategy prefers a family whose flags exactly match the
// request; among the remaining capable families it takes the most specialized
// one (fewest capability bits) that still has capacity. Dedicated transfer or
// compute families stay free of graphics work that way.
type DedicatedFirstStrategy struct{}

func (DedicatedFirstStrategy) SelectFamily(families []vk.QueueFamilyProperties, flags vk.QueueFlags, used map[uint32]uint32) (uint32, error) {
	hasRoom := func(i uint32) bool {
		return used[i] < families[i].QueueCount
	}

	for i := range families {
		idx := uint32(i)
		if families[i].QueueFlags == flags && hasRoom(idx) {
			return idx, nil
		}
	}

	best, bestBits := -1, -1
	for i := range families {
		idx := uint32(i)
		if families[i].QueueFlags&flags != flags || !hasRoom(idx) {
			continue
		}
		if n := bits.OnesCount32(uint32(families[i].QueueFlags)); best < 0 || n < bestBits {
			best, bestBits = i, n
		}
	}
	if best < 0 {
		return 0, ErrUnsupported("a queue family with the requested capabilities")
	}
	return uint32(best), nil
}

// QueueRequester collects queue requests before logical device creation and
// dispatches the resulting vk.Queue handles afterwards.
type QueueRequester struct {
	families []vk.QueueFamilyProperties
	strategy QueueStrategy

	requests []*familyRequest
	used     map[uint32]uint32
}

// NewQueueRequester builds a requester over the device's queue families.
// A nil strategy means DedicatedFirstStrategy.
func NewQueueRequester(phy *PhysicalDevice, strategy QueueStrategy) *QueueRequester {
	if strategy == nil {
		strategy = DedicatedFirstStrategy{}
	}
	return &QueueRequester{
		families: phy.QueueFamilies,
		strategy: strategy,
		used:     make(map[uint32]uint32),
	}
}

// Request reserves one queue with the given capabilities and priority. The
// returned Queue has no handle until Dispatch runs after device creation.
func (r *QueueRequester) Request(flags vk.QueueFlags, priority float32) (*Queue, error) {
	family, err := r.strategy.SelectFamily(r.families, flags, r.used)
	if err != nil {
		return nil, err
	}

	req := r.requestFor(family)
	queue := &Queue{
		FamilyIndex: family,
		queueIndex:  uint32(len(req.priorities)),
	}
	req.priorities = append(req.priorities, priority)
	r.used[family]++
	return queue, nil
}

func (r *QueueRequester) requestFor(family uint32) *familyRequest {
	for _, req := range r.requests {
		if req.family == family {
			return req
		}
	}
	req := &familyRequest{family: family}
	r.requests = append(r.requests, req)
	return req
}

// QueueCIs emits one DeviceQueueCreateInfo per family in use.
func (r *QueueRequester) QueueCIs() []vk.DeviceQueueCreateInfo {
	cis := make([]vk.DeviceQueueCreateInfo, 0, len(r.requests))
	for _, req := range r.requests {
		cis = append(cis, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: req.family,
			QueueCount:       uint32(len(req.priorities)),
			PQueuePriorities: req.priorities,
		})
	}
	return cis
}

// Dispatch fetches the vk.Queue handle for a previously requested queue.
func (r *QueueRequester) Dispatch(device vk.Device, queue *Queue) {
	vk.GetDeviceQueue(device, queue.FamilyIndex, queue.queueIndex, &queue.Handle)
}
