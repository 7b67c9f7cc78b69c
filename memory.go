// memory.go - Bounded ROM/RAM memory for the Intel 8080 core

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Invader8080
License: GPLv3 or later
*/

package main

import (
	"errors"
	"fmt"
	"os"
)

// Bounds and ROM write checks can be compiled out for speed once a ROM is
// known good. The checks are assumed on everywhere in the test suite.
const checkMemoryBounds = true

const maxMemorySize = 0x10000

var (
	ErrAddressOutOfRange = errors.New("memory address out of range")
	ErrWriteToROM        = errors.New("memory address in ROM cannot be written")
)

// Memory is a contiguous byte array split into a read-only ROM region at the
// bottom and a RAM region above it. Words are little-endian: the low byte
// sits at the lower address.
type Memory struct {
	romSize   int
	ramSize   int
	totalSize int
	data      []byte
}

func NewMemory(romSize, ramSize int) (*Memory, error) {
	total := romSize + ramSize
	if total > maxMemorySize {
		return nil, fmt.Errorf("requested memory size (%d + %d) exceeds maximum possible size (%d)",
			romSize, ramSize, maxMemorySize)
	}
	return &Memory{
		romSize:   romSize,
		ramSize:   ramSize,
		totalSize: total,
		data:      make([]byte, total),
	}, nil
}

func (m *Memory) ROMSize() int { return m.romSize }

func (m *Memory) RAMSize() int { return m.ramSize }

func (m *Memory) TotalSize() int { return m.totalSize }

func (m *Memory) Read(addr uint16) (byte, error) {
	if checkMemoryBounds && int(addr) >= m.totalSize {
		return 0, fmt.Errorf("%w: read at 0x%04X (size 0x%04X)", ErrAddressOutOfRange, addr, m.totalSize)
	}
	return m.data[addr], nil
}

func (m *Memory) ReadWord(addr uint16) (uint16, error) {
	// Check addr+1 in int space: at 0xFFFF the uint16 increment would wrap
	// to 0x0000 and silently read the bottom of memory.
	if checkMemoryBounds && int(addr)+1 >= m.totalSize {
		return 0, fmt.Errorf("%w: word read at 0x%04X (size 0x%04X)", ErrAddressOutOfRange, addr, m.totalSize)
	}
	lo, err := m.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := m.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (m *Memory) Write(addr uint16, value byte) error {
	if checkMemoryBounds {
		if int(addr) >= m.totalSize {
			return fmt.Errorf("%w: write at 0x%04X (size 0x%04X)", ErrAddressOutOfRange, addr, m.totalSize)
		}
		if int(addr) < m.romSize {
			return fmt.Errorf("%w: write at 0x%04X (ROM ends at 0x%04X)", ErrWriteToROM, addr, m.romSize)
		}
	}
	m.data[addr] = value
	return nil
}

func (m *Memory) WriteWord(addr uint16, value uint16) error {
	if checkMemoryBounds && int(addr)+1 >= m.totalSize {
		return fmt.Errorf("%w: word write at 0x%04X (size 0x%04X)", ErrAddressOutOfRange, addr, m.totalSize)
	}
	if err := m.Write(addr, byte(value)); err != nil {
		return err
	}
	return m.Write(addr+1, byte(value>>8))
}

// Load copies bytes straight into the underlying array, ignoring ROM write
// protection. This is how ROM images are installed.
func (m *Memory) Load(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > m.totalSize {
		return fmt.Errorf("%w: load of %d bytes at 0x%04X (size 0x%04X)",
			ErrAddressOutOfRange, len(data), offset, m.totalSize)
	}
	copy(m.data[offset:], data)
	return nil
}

// LoadFile installs the contents of a ROM or .COM image at offset.
func (m *Memory) LoadFile(filename string, offset int) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return m.Load(offset, data)
}

func (m *Memory) Clear() {
	for i := range m.data {
		m.data[i] = 0
	}
}
