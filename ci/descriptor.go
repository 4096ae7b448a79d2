package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// DescriptorPoolCI builds a vk.DescriptorPool.
type DescriptorPoolCI struct {
	info  vk.DescriptorPoolCreateInfo
	sizes []vk.DescriptorPoolSize
}

// DescriptorPool starts a pool create info for at most maxSets sets.
func DescriptorPool(maxSets uint32) *DescriptorPoolCI {
	return &DescriptorPoolCI{
		info: vk.DescriptorPoolCreateInfo{
			SType:   vk.StructureTypeDescriptorPoolCreateInfo,
			MaxSets: maxSets,
		},
	}
}

// AddSize reserves count descriptors of the given type.
func (d *DescriptorPoolCI) AddSize(descriptorType vk.DescriptorType, count uint32) *DescriptorPoolCI {
	d.sizes = append(d.sizes, vk.DescriptorPoolSize{
		Type:            descriptorType,
		DescriptorCount: count,
	})
	return d
}

// FreeIndividualSets allows vk.FreeDescriptorSets on this pool.
func (d *DescriptorPoolCI) FreeIndividualSets() *DescriptorPoolCI {
	d.info.Flags = vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit)
	return d
}

// Build creates the descriptor pool.
func (d *DescriptorPoolCI) Build(dev vk.Device) (vk.DescriptorPool, error) {
	d.info.PoolSizeCount = uint32(len(d.sizes))
	d.info.PPoolSizes = d.sizes
	var handle vk.DescriptorPool
	if ret := vk.CreateDescriptorPool(dev, &d.info, nil, &handle); ret != vk.Success {
		return vk.NullDescriptorPool, vkbase.ErrCreate("descriptor pool", ret)
	}
	return handle, nil
}

// DescriptorSetLayoutCI builds a vk.DescriptorSetLayout.
type DescriptorSetLayoutCI struct {
	bindings []vk.DescriptorSetLayoutBinding
}

// DescriptorSetLayout starts an empty layout create info.
func DescriptorSetLayout() *DescriptorSetLayoutCI {
	return &DescriptorSetLayoutCI{}
}

// AddBinding appends one descriptor binding visible to stages.
func (d *DescriptorSetLayoutCI) AddBinding(binding uint32, descriptorType vk.DescriptorType, count uint32, stages vk.ShaderStageFlags) *DescriptorSetLayoutCI {
	d.bindings = append(d.bindings, vk.DescriptorSetLayoutBinding{
		Binding:         binding,
		DescriptorType:  descriptorType,
		DescriptorCount: count,
		StageFlags:      stages,
	})
	return d
}

// Build creates the set layout.
func (d *DescriptorSetLayoutCI) Build(dev vk.Device) (vk.DescriptorSetLayout, error) {
	info := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(d.bindings)),
		PBindings:    d.bindings,
	}
	var handle vk.DescriptorSetLayout
	if ret := vk.CreateDescriptorSetLayout(dev, &info, nil, &handle); ret != vk.Success {
		return vk.NullDescriptorSetLayout, vkbase.ErrCreate("descriptor set layout", ret)
	}
	return handle, nil
}

// DescriptorSetAI builds a descriptor set allocation.
type DescriptorSetAI struct {
	pool    vk.DescriptorPool
	layouts []vk.DescriptorSetLayout
}

// DescriptorSets starts an allocate info from pool.
func DescriptorSets(pool vk.DescriptorPool) *DescriptorSetAI {
	return &DescriptorSetAI{pool: pool}
}

// AddLayout appends a layout; one set is allocated per layout entry.
func (d *DescriptorSetAI) AddLayout(layout vk.DescriptorSetLayout) *DescriptorSetAI {
	d.layouts = append(d.layouts, layout)
	return d
}

// Build allocates the descriptor sets.
func (d *DescriptorSetAI) Build(dev vk.Device) ([]vk.DescriptorSet, error) {
	info := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     d.pool,
		DescriptorSetCount: uint32(len(d.layouts)),
		PSetLayouts:        d.layouts,
	}
	sets := make([]vk.DescriptorSet, len(d.layouts))
	if ret := vk.AllocateDescriptorSets(dev, &info, &sets[0]); ret != vk.Success {
		return nil, vkbase.ErrCreate("descriptor sets", ret)
	}
	return sets, nil
}

// DescriptorUpdate collects write operations against descriptor sets and
// applies them in one vkUpdateDescriptorSets call.
type DescriptorUpdate struct {
	writes []vk.WriteDescriptorSet
}

// UpdateDescriptors starts an empty update batch.
func UpdateDescriptors() *DescriptorUpdate {
	return &DescriptorUpdate{}
}

// WriteBuffer records a buffer descriptor write.
func (u *DescriptorUpdate) WriteBuffer(set vk.DescriptorSet, binding uint32, descriptorType vk.DescriptorType, info vk.DescriptorBufferInfo) *DescriptorUpdate {
	u.writes = append(u.writes, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          set,
		DstBinding:      binding,
		DescriptorCount: 1,
		DescriptorType:  descriptorType,
		PBufferInfo:     []vk.DescriptorBufferInfo{info},
	})
	return u
}

// WriteImage records a combined image sampler (or other image) descriptor
// write.
func (u *DescriptorUpdate) WriteImage(set vk.DescriptorSet, binding uint32, descriptorType vk.DescriptorType, info vk.DescriptorImageInfo) *DescriptorUpdate {
	u.writes = append(u.writes, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          set,
		DstBinding:      binding,
		DescriptorCount: 1,
		DescriptorType:  descriptorType,
		PImageInfo:      []vk.DescriptorImageInfo{info},
	})
	return u
}

// Apply performs the batched update.
func (u *DescriptorUpdate) Apply(dev vk.Device) {
	if len(u.writes) == 0 {
		return
	}
	vk.UpdateDescriptorSets(dev, uint32(len(u.writes)), u.writes, 0, nil)
}
