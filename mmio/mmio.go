//go:build linux

// Package mmio provides dwc2.RegisterBlock access to a memory-mapped
// controller register block. On real hardware the block is mapped out of
// /dev/mem; tests and register dumps can map any file.
//
// Register words are accessed through sync/atomic, which gives the
// volatile-equivalent contract the bring-up sequence needs: every access
// hits memory, aligned, whole-word, in program order.
package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const devMem = "/dev/mem"

// Region is a mapped register block.
type Region struct {
	mem  []byte
	off  int // offset of the block within the mapping (page alignment)
	size int
}

// MapFile maps size bytes of the named file starting at offset. The
// offset must be page-aligned.
func MapFile(path string, offset int64, size int) (*Region, error) {
	f, err := os.OpenFile(path, os.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: %w", err)
	}
	defer f.Close()

	mem, err := unix.Mmap(int(f.Fd()), offset, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmio: mmap %s: %w", path, err)
	}
	return &Region{mem: mem, size: size}, nil
}

// MapDevMem maps a controller register block at the given physical base
// address out of /dev/mem. The base does not need to be page-aligned.
func MapDevMem(base uint64, size int) (*Region, error) {
	page := uint64(os.Getpagesize())
	aligned := base &^ (page - 1)
	slack := int(base - aligned)

	r, err := MapFile(devMem, int64(aligned), size+slack)
	if err != nil {
		return nil, err
	}
	r.off = slack
	r.size = size
	return r, nil
}

// Read implements dwc2.RegisterBlock.
func (r *Region) Read(off uint32) uint32 {
	return atomic.LoadUint32(r.word(off))
}

// Write implements dwc2.RegisterBlock.
func (r *Region) Write(off, val uint32) {
	atomic.StoreUint32(r.word(off), val)
}

func (r *Region) word(off uint32) *uint32 {
	if int(off)+4 > r.size || off%4 != 0 {
		panic(fmt.Sprintf("mmio: bad register offset 0x%X", off))
	}
	return (*uint32)(unsafe.Pointer(&r.mem[r.off+int(off)]))
}

// Close unmaps the region. The Region must not be used afterwards.
func (r *Region) Close() error {
	mem := r.mem
	r.mem = nil
	if mem == nil {
		return nil
	}
	return unix.Munmap(mem)
}
