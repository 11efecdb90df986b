package dwc2

// RegisterBlock is volatile access to one controller's memory-mapped
// global register block. Read and Write must hit the hardware on every
// call, in program order, with no caching or combining; several bring-up
// steps communicate with the core purely through register side effects.
//
// The block is exclusively owned by the initializing goroutine. Nothing
// else, including interrupt handlers, may touch the same controller's
// registers until InitCore returns.
type RegisterBlock interface {
	Read(off uint32) uint32
	Write(off uint32, val uint32)
}

// IDBlock is the six-word identification/configuration block starting at
// GUID: guid, gsnpsid, ghwcfg1..ghwcfg4.
type IDBlock [6]uint32

// ReadIDBlock reads the identification block from the controller.
func ReadIDBlock(r RegisterBlock) IDBlock {
	var b IDBlock
	for i := range b {
		b[i] = r.Read(RegGUID + uint32(i)*4)
	}
	return b
}
