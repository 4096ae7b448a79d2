package vkbase

import (
	vk "github.com/vulkan-go/vulkan"
)

// LogicConfig controls logical device creation.
type LogicConfig struct {
	// RequestQueues lists the queue capabilities to request, one queue per
	// entry, each with its priority.
	RequestQueues []QueueRequest

	// Strategy decides family placement. Nil means DedicatedFirstStrategy.
	Strategy QueueStrategy
}

// QueueRequest is one queue capability request with its priority.
type QueueRequest struct {
	Flags    vk.QueueFlags
	Priority float32
}

// DefaultLogicConfig requests one graphics and one transfer queue.
func DefaultLogicConfig() LogicConfig {
	return LogicConfig{
		RequestQueues: []QueueRequest{
			{Flags: vk.QueueFlags(vk.QueueGraphicsBit), Priority: 1.0},
			{Flags: vk.QueueFlags(vk.QueueTransferBit), Priority: 1.0},
		},
	}
}

// WithComputeQueue appends a compute queue request.
func (c LogicConfig) WithComputeQueue(priority float32) LogicConfig {
	c.RequestQueues = append(c.RequestQueues, QueueRequest{
		Flags:    vk.QueueFlags(vk.QueueComputeBit),
		Priority: priority,
	})
	return c
}

// Device bundles the logical device with the physical device it was created
// from and the queues dispatched at creation.
type Device struct {
	Handle vk.Device
	Phy    *PhysicalDevice

	// Queues in request order. GraphicsQueue/ComputeQueue/TransferQueue
	// point at the first queue of each capability, falling back to the
	// graphics queue when a capability was never requested.
	Queues        []*Queue
	GraphicsQueue *Queue
	ComputeQueue  *Queue
	TransferQueue *Queue
}

// NewDevice creates the logical device, enabling the physical selection's
// extensions and features, and dispatches the requested queues.
func NewDevice(instance *Instance, phy *PhysicalDevice, config LogicConfig) (*Device, error) {
	if len(config.RequestQueues) == 0 {
		config = DefaultLogicConfig()
	}

	requester := NewQueueRequester(phy, config.Strategy)
	queues := make([]*Queue, 0, len(config.RequestQueues))
	for _, req := range config.RequestQueues {
		q, err := requester.Request(req.Flags, req.Priority)
		if err != nil {
			return nil, err
		}
		queues = append(queues, q)
	}

	queueCIs := requester.QueueCIs()
	features := []vk.PhysicalDeviceFeatures{phy.EnabledFeatures}

	createInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueCIs)),
		PQueueCreateInfos:       queueCIs,
		EnabledExtensionCount:   uint32(len(phy.Extensions)),
		PpEnabledExtensionNames: safeStrings(phy.Extensions),
		EnabledLayerCount:       uint32(len(instance.Layers)),
		PpEnabledLayerNames:     safeStrings(instance.Layers),
		PEnabledFeatures:        features,
	}

	var handle vk.Device
	if ret := vk.CreateDevice(phy.Handle, &createInfo, nil, &handle); ret != vk.Success {
		return nil, ErrCreate("logical device", ret)
	}

	dev := &Device{Handle: handle, Phy: phy, Queues: queues}
	for i, q := range queues {
		requester.Dispatch(handle, q)
		flags := config.RequestQueues[i].Flags
		switch {
		case dev.GraphicsQueue == nil && flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0:
			dev.GraphicsQueue = q
		case dev.ComputeQueue == nil && flags&vk.QueueFlags(vk.QueueComputeBit) != 0:
			dev.ComputeQueue = q
		case dev.TransferQueue == nil && flags&vk.QueueFlags(vk.QueueTransferBit) != 0:
			dev.TransferQueue = q
		}
	}
	if dev.TransferQueue == nil {
		dev.TransferQueue = dev.GraphicsQueue
	}
	if dev.ComputeQueue == nil {
		dev.ComputeQueue = dev.GraphicsQueue
	}
	return dev, nil
}

// Wait blocks until the device is idle.
func (d *Device) Wait() error {
	if ret := vk.DeviceWaitIdle(d.Handle); ret != vk.Success {
		return ErrDevice("wait idle", ret)
	}
	return nil
}

// Destroy releases the logical device. Every object created from it must be
// destroyed first.
func (d *Device) Destroy() {
	vk.DestroyDevice(d.Handle, nil)
}
