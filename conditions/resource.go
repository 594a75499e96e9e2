package conditions

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

type cpuCoreAtLeast struct {
	n       int
	logical bool
}

// CPUCoreAtLeast gates on the host exposing at least n logical cores.
func CPUCoreAtLeast(n int) Condition {
	return cpuCoreAtLeast{n: n, logical: true}
}

// PhysicalCoreAtLeast gates on the host exposing at least n physical
// cores.
func PhysicalCoreAtLeast(n int) Condition {
	return cpuCoreAtLeast{n: n, logical: false}
}

func (c cpuCoreAtLeast) Check(_ context.Context) (bool, string, error) {
	count, err := cpu.Counts(c.logical)
	if err != nil {
		return false, fmt.Sprintf("because cpu core count can not be measured: %v", err), err
	}
	if count >= c.n {
		return true, "", nil
	}
	if c.logical {
		return false, fmt.Sprintf("because the cpu core less than %d", c.n), nil
	}
	return false, fmt.Sprintf("because the physical cpu core less than %d", c.n), nil
}

type memAtLeast struct {
	size    string
	bytes   uint64
	useSwap bool
}

// MemAtLeast gates on the host carrying at least the given amount of
// memory. The size accepts human-readable strings such as "999GB" or
// "2GiB"; an unparsable size is a configuration error.
func MemAtLeast(size string) (Condition, error) {
	bytes, err := humanize.ParseBytes(size)
	if err != nil {
		return nil, fmt.Errorf("invalid memory size %q: %w", size, err)
	}
	return memAtLeast{size: size, bytes: bytes}, nil
}

// SwapAtLeast is MemAtLeast for swap space.
func SwapAtLeast(size string) (Condition, error) {
	bytes, err := humanize.ParseBytes(size)
	if err != nil {
		return nil, fmt.Errorf("invalid swap size %q: %w", size, err)
	}
	return memAtLeast{size: size, bytes: bytes, useSwap: true}, nil
}

func (c memAtLeast) Check(_ context.Context) (bool, string, error) {
	if c.useSwap {
		swap, err := mem.SwapMemory()
		if err != nil {
			return false, fmt.Sprintf("because swap size can not be measured: %v", err), err
		}
		if swap.Total >= c.bytes {
			return true, "", nil
		}
		return false, fmt.Sprintf("because the swap less than %s", c.size), nil
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return false, fmt.Sprintf("because memory size can not be measured: %v", err), err
	}
	if vm.Total >= c.bytes {
		return true, "", nil
	}
	return false, fmt.Sprintf("because the memory less than %s", c.size), nil
}
