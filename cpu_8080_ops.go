// cpu_8080_ops.go - Intel 8080 instruction dispatch table and handlers

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Invader8080
License: GPLv3 or later
*/

package main

import "fmt"

type aluOp byte

const (
	aluAdd aluOp = iota
	aluAdc
	aluSub
	aluSbb
	aluAna
	aluXra
	aluOra
	aluCmp
)

func (c *CPU_8080) invalidOpcode(opcode byte) error {
	return fmt.Errorf("%w: 0x%02X", ErrInvalidOpcode, opcode)
}

// alias executes an undocumented opcode as its canonical sibling, or faults
// when strict checking is on.
func (c *CPU_8080) alias(opcode byte, canonical func(*CPU_8080) error) error {
	if c.Strict {
		return c.invalidOpcode(opcode)
	}
	return canonical(c)
}

func (c *CPU_8080) initBaseOps() {
	for i := range c.baseOps {
		op := byte(i)
		c.baseOps[i] = func(cpu *CPU_8080) error { return cpu.invalidOpcode(op) }
	}

	c.baseOps[0x00] = (*CPU_8080).opNOP
	for _, opcode := range []byte{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		op := opcode
		c.baseOps[op] = func(cpu *CPU_8080) error { return cpu.alias(op, (*CPU_8080).opNOP) }
	}

	// LXI rp, d16
	c.baseOps[0x01] = (*CPU_8080).opLXIB
	c.baseOps[0x11] = (*CPU_8080).opLXID
	c.baseOps[0x21] = (*CPU_8080).opLXIH
	c.baseOps[0x31] = (*CPU_8080).opLXISP

	// STAX / SHLD / STA and their load mirrors
	c.baseOps[0x02] = (*CPU_8080).opSTAXB
	c.baseOps[0x12] = (*CPU_8080).opSTAXD
	c.baseOps[0x22] = (*CPU_8080).opSHLD
	c.baseOps[0x32] = (*CPU_8080).opSTA
	c.baseOps[0x0A] = (*CPU_8080).opLDAXB
	c.baseOps[0x1A] = (*CPU_8080).opLDAXD
	c.baseOps[0x2A] = (*CPU_8080).opLHLD
	c.baseOps[0x3A] = (*CPU_8080).opLDA

	// INX / DCX: 16-bit inc/dec, no flags touched
	c.baseOps[0x03] = (*CPU_8080).opINXB
	c.baseOps[0x13] = (*CPU_8080).opINXD
	c.baseOps[0x23] = (*CPU_8080).opINXH
	c.baseOps[0x33] = (*CPU_8080).opINXSP
	c.baseOps[0x0B] = (*CPU_8080).opDCXB
	c.baseOps[0x1B] = (*CPU_8080).opDCXD
	c.baseOps[0x2B] = (*CPU_8080).opDCXH
	c.baseOps[0x3B] = (*CPU_8080).opDCXSP

	// INR r / DCR r
	for _, opcode := range []byte{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C} {
		reg := (opcode >> 3) & 0x07
		c.baseOps[opcode] = func(cpu *CPU_8080) error { return cpu.opINR(reg) }
	}
	for _, opcode := range []byte{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D} {
		reg := (opcode >> 3) & 0x07
		c.baseOps[opcode] = func(cpu *CPU_8080) error { return cpu.opDCR(reg) }
	}

	// MVI r, d8
	for _, opcode := range []byte{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E} {
		reg := (opcode >> 3) & 0x07
		c.baseOps[opcode] = func(cpu *CPU_8080) error { return cpu.opMVI(reg) }
	}

	// Rotates and accumulator specials
	c.baseOps[0x07] = (*CPU_8080).opRLC
	c.baseOps[0x0F] = (*CPU_8080).opRRC
	c.baseOps[0x17] = (*CPU_8080).opRAL
	c.baseOps[0x1F] = (*CPU_8080).opRAR
	c.baseOps[0x27] = (*CPU_8080).opDAA
	c.baseOps[0x2F] = (*CPU_8080).opCMA
	c.baseOps[0x37] = (*CPU_8080).opSTC
	c.baseOps[0x3F] = (*CPU_8080).opCMC

	// DAD rp
	c.baseOps[0x09] = (*CPU_8080).opDADB
	c.baseOps[0x19] = (*CPU_8080).opDADD
	c.baseOps[0x29] = (*CPU_8080).opDADH
	c.baseOps[0x39] = (*CPU_8080).opDADSP

	// MOV r, r'
	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		if opcode == 0x76 {
			continue
		}
		dest := byte(opcode>>3) & 0x07
		src := byte(opcode) & 0x07
		c.baseOps[opcode] = func(cpu *CPU_8080) error { return cpu.opMOV(dest, src) }
	}
	c.baseOps[0x76] = (*CPU_8080).opHLT

	// ALU register block
	for opcode := 0x80; opcode <= 0xBF; opcode++ {
		kind := aluOp(opcode>>3) & 0x07
		src := byte(opcode) & 0x07
		c.baseOps[opcode] = func(cpu *CPU_8080) error { return cpu.opALUReg(kind, src) }
	}

	// ALU immediate block
	for _, opcode := range []byte{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE} {
		kind := aluOp(opcode>>3) & 0x07
		c.baseOps[opcode] = func(cpu *CPU_8080) error { return cpu.opALUImm(kind) }
	}

	// Conditional and unconditional returns
	c.baseOps[0xC0] = func(cpu *CPU_8080) error { return cpu.opRetIf(!cpu.Z) }
	c.baseOps[0xC8] = func(cpu *CPU_8080) error { return cpu.opRetIf(cpu.Z) }
	c.baseOps[0xD0] = func(cpu *CPU_8080) error { return cpu.opRetIf(!cpu.CY) }
	c.baseOps[0xD8] = func(cpu *CPU_8080) error { return cpu.opRetIf(cpu.CY) }
	c.baseOps[0xE0] = func(cpu *CPU_8080) error { return cpu.opRetIf(!cpu.P) }
	c.baseOps[0xE8] = func(cpu *CPU_8080) error { return cpu.opRetIf(cpu.P) }
	c.baseOps[0xF0] = func(cpu *CPU_8080) error { return cpu.opRetIf(!cpu.S) }
	c.baseOps[0xF8] = func(cpu *CPU_8080) error { return cpu.opRetIf(cpu.S) }
	c.baseOps[0xC9] = (*CPU_8080).opRET
	c.baseOps[0xD9] = func(cpu *CPU_8080) error { return cpu.alias(0xD9, (*CPU_8080).opRET) }

	// POP / PUSH
	c.baseOps[0xC1] = (*CPU_8080).opPOPB
	c.baseOps[0xD1] = (*CPU_8080).opPOPD
	c.baseOps[0xE1] = (*CPU_8080).opPOPH
	c.baseOps[0xF1] = (*CPU_8080).opPOPPSW
	c.baseOps[0xC5] = (*CPU_8080).opPUSHB
	c.baseOps[0xD5] = (*CPU_8080).opPUSHD
	c.baseOps[0xE5] = (*CPU_8080).opPUSHH
	c.baseOps[0xF5] = (*CPU_8080).opPUSHPSW

	// Conditional and unconditional jumps
	c.baseOps[0xC2] = func(cpu *CPU_8080) error { return cpu.opJumpIf(!cpu.Z) }
	c.baseOps[0xCA] = func(cpu *CPU_8080) error { return cpu.opJumpIf(cpu.Z) }
	c.baseOps[0xD2] = func(cpu *CPU_8080) error { return cpu.opJumpIf(!cpu.CY) }
	c.baseOps[0xDA] = func(cpu *CPU_8080) error { return cpu.opJumpIf(cpu.CY) }
	c.baseOps[0xE2] = func(cpu *CPU_8080) error { return cpu.opJumpIf(!cpu.P) }
	c.baseOps[0xEA] = func(cpu *CPU_8080) error { return cpu.opJumpIf(cpu.P) }
	c.baseOps[0xF2] = func(cpu *CPU_8080) error { return cpu.opJumpIf(!cpu.S) }
	c.baseOps[0xFA] = func(cpu *CPU_8080) error { return cpu.opJumpIf(cpu.S) }
	c.baseOps[0xC3] = (*CPU_8080).opJMP
	c.baseOps[0xCB] = func(cpu *CPU_8080) error { return cpu.alias(0xCB, (*CPU_8080).opJMP) }

	// Conditional and unconditional calls
	c.baseOps[0xC4] = func(cpu *CPU_8080) error { return cpu.opCallIf(!cpu.Z) }
	c.baseOps[0xCC] = func(cpu *CPU_8080) error { return cpu.opCallIf(cpu.Z) }
	c.baseOps[0xD4] = func(cpu *CPU_8080) error { return cpu.opCallIf(!cpu.CY) }
	c.baseOps[0xDC] = func(cpu *CPU_8080) error { return cpu.opCallIf(cpu.CY) }
	c.baseOps[0xE4] = func(cpu *CPU_8080) error { return cpu.opCallIf(!cpu.P) }
	c.baseOps[0xEC] = func(cpu *CPU_8080) error { return cpu.opCallIf(cpu.P) }
	c.baseOps[0xF4] = func(cpu *CPU_8080) error { return cpu.opCallIf(!cpu.S) }
	c.baseOps[0xFC] = func(cpu *CPU_8080) error { return cpu.opCallIf(cpu.S) }
	c.baseOps[0xCD] = (*CPU_8080).opCALL
	for _, opcode := range []byte{0xDD, 0xED, 0xFD} {
		op := opcode
		c.baseOps[op] = func(cpu *CPU_8080) error { return cpu.alias(op, (*CPU_8080).opCALL) }
	}

	// RST n
	for _, opcode := range []byte{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF} {
		vector := uint16(opcode & 0x38)
		c.baseOps[opcode] = func(cpu *CPU_8080) error { return cpu.opRST(vector) }
	}

	// I/O, exchanges, pointer moves, interrupt enable
	c.baseOps[0xD3] = (*CPU_8080).opOUT
	c.baseOps[0xDB] = (*CPU_8080).opIN
	c.baseOps[0xE3] = (*CPU_8080).opXTHL
	c.baseOps[0xEB] = (*CPU_8080).opXCHG
	c.baseOps[0xE9] = (*CPU_8080).opPCHL
	c.baseOps[0xF9] = (*CPU_8080).opSPHL
	c.baseOps[0xF3] = (*CPU_8080).opDI
	c.baseOps[0xFB] = (*CPU_8080).opEI
}

func (c *CPU_8080) opNOP() error {
	c.tick(4)
	return nil
}

func (c *CPU_8080) opLXIB() error {
	value, err := c.fetchWord()
	if err != nil {
		return err
	}
	c.SetBC(value)
	c.tick(10)
	return nil
}

func (c *CPU_8080) opLXID() error {
	value, err := c.fetchWord()
	if err != nil {
		return err
	}
	c.SetDE(value)
	c.tick(10)
	return nil
}

func (c *CPU_8080) opLXIH() error {
	value, err := c.fetchWord()
	if err != nil {
		return err
	}
	c.SetHL(value)
	c.tick(10)
	return nil
}

func (c *CPU_8080) opLXISP() error {
	value, err := c.fetchWord()
	if err != nil {
		return err
	}
	c.SP = value
	c.tick(10)
	return nil
}

func (c *CPU_8080) opSTAXB() error {
	if err := c.mem.Write(c.BC(), c.A); err != nil {
		return err
	}
	c.tick(7)
	return nil
}

func (c *CPU_8080) opSTAXD() error {
	if err := c.mem.Write(c.DE(), c.A); err != nil {
		return err
	}
	c.tick(7)
	return nil
}

func (c *CPU_8080) opSHLD() error {
	addr, err := c.fetchWord()
	if err != nil {
		return err
	}
	if err := c.mem.WriteWord(addr, c.HL()); err != nil {
		return err
	}
	c.tick(16)
	return nil
}

func (c *CPU_8080) opSTA() error {
	addr, err := c.fetchWord()
	if err != nil {
		return err
	}
	if err := c.mem.Write(addr, c.A); err != nil {
		return err
	}
	c.tick(13)
	return nil
}

func (c *CPU_8080) opLDAXB() error {
	value, err := c.mem.Read(c.BC())
	if err != nil {
		return err
	}
	c.A = value
	c.tick(7)
	return nil
}

func (c *CPU_8080) opLDAXD() error {
	value, err := c.mem.Read(c.DE())
	if err != nil {
		return err
	}
	c.A = value
	c.tick(7)
	return nil
}

func (c *CPU_8080) opLHLD() error {
	addr, err := c.fetchWord()
	if err != nil {
		return err
	}
	value, err := c.mem.ReadWord(addr)
	if err != nil {
		return err
	}
	c.SetHL(value)
	c.tick(16)
	return nil
}

func (c *CPU_8080) opLDA() error {
	addr, err := c.fetchWord()
	if err != nil {
		return err
	}
	value, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.A = value
	c.tick(13)
	return nil
}

func (c *CPU_8080) opINXB() error {
	c.SetBC(c.BC() + 1)
	c.tick(5)
	return nil
}

func (c *CPU_8080) opINXD() error {
	c.SetDE(c.DE() + 1)
	c.tick(5)
	return nil
}

func (c *CPU_8080) opINXH() error {
	c.SetHL(c.HL() + 1)
	c.tick(5)
	return nil
}

func (c *CPU_8080) opINXSP() error {
	c.SP++
	c.tick(5)
	return nil
}

func (c *CPU_8080) opDCXB() error {
	c.SetBC(c.BC() - 1)
	c.tick(5)
	return nil
}

func (c *CPU_8080) opDCXD() error {
	c.SetDE(c.DE() - 1)
	c.tick(5)
	return nil
}

func (c *CPU_8080) opDCXH() error {
	c.SetHL(c.HL() - 1)
	c.tick(5)
	return nil
}

func (c *CPU_8080) opDCXSP() error {
	c.SP--
	c.tick(5)
	return nil
}

func (c *CPU_8080) opINR(reg byte) error {
	value, err := c.readReg(reg)
	if err != nil {
		return err
	}
	if err := c.writeReg(reg, c.inr(value)); err != nil {
		return err
	}
	if reg == 6 {
		c.tick(10)
	} else {
		c.tick(5)
	}
	return nil
}

func (c *CPU_8080) opDCR(reg byte) error {
	value, err := c.readReg(reg)
	if err != nil {
		return err
	}
	if err := c.writeReg(reg, c.dcr(value)); err != nil {
		return err
	}
	if reg == 6 {
		c.tick(10)
	} else {
		c.tick(5)
	}
	return nil
}

func (c *CPU_8080) opMVI(reg byte) error {
	value, err := c.fetchByte()
	if err != nil {
		return err
	}
	if err := c.writeReg(reg, value); err != nil {
		return err
	}
	if reg == 6 {
		c.tick(10)
	} else {
		c.tick(7)
	}
	return nil
}

func (c *CPU_8080) opRLC() error {
	carry := c.A >> 7
	c.A = c.A<<1 | carry
	c.CY = carry != 0
	c.tick(4)
	return nil
}

func (c *CPU_8080) opRRC() error {
	carry := c.A & 1
	c.A = c.A>>1 | carry<<7
	c.CY = carry != 0
	c.tick(4)
	return nil
}

func (c *CPU_8080) opRAL() error {
	carry := c.A >> 7
	c.A = c.A<<1 | c.carryIn()
	c.CY = carry != 0
	c.tick(4)
	return nil
}

func (c *CPU_8080) opRAR() error {
	carry := c.A & 1
	c.A = c.A>>1 | c.carryIn()<<7
	c.CY = carry != 0
	c.tick(4)
	return nil
}

// opDAA adjusts the accumulator to packed BCD after an arithmetic op. The
// correction is applied as a normal ADD so all five flags come out of the
// adder; DAA may set the carry but never clears it.
func (c *CPU_8080) opDAA() error {
	correction := byte(0)
	carryOut := false
	if c.A&0x0F >= 0x0A || c.CA {
		correction += 0x06
	}
	if c.A&0xF0 >= 0xA0 || (c.A&0xF0 == 0x90 && c.A&0x0F >= 0x0A) || c.CY {
		correction += 0x60
		carryOut = true
	}
	c.addA(correction, 0)
	if carryOut {
		c.CY = true
	}
	c.tick(4)
	return nil
}

func (c *CPU_8080) opCMA() error {
	c.A = ^c.A
	c.tick(4)
	return nil
}

func (c *CPU_8080) opSTC() error {
	c.CY = true
	c.tick(4)
	return nil
}

func (c *CPU_8080) opCMC() error {
	c.CY = !c.CY
	c.tick(4)
	return nil
}

// dad adds a register pair into HL. Only the carry flag is affected.
func (c *CPU_8080) dad(value uint16) {
	hl := c.HL()
	c.CY = value > 0xFFFF-hl
	c.SetHL(hl + value)
	c.tick(10)
}

func (c *CPU_8080) opDADB() error {
	c.dad(c.BC())
	return nil
}

func (c *CPU_8080) opDADD() error {
	c.dad(c.DE())
	return nil
}

func (c *CPU_8080) opDADH() error {
	c.dad(c.HL())
	return nil
}

func (c *CPU_8080) opDADSP() error {
	c.dad(c.SP)
	return nil
}

func (c *CPU_8080) opMOV(dest, src byte) error {
	value, err := c.readReg(src)
	if err != nil {
		return err
	}
	if err := c.writeReg(dest, value); err != nil {
		return err
	}
	if dest == 6 || src == 6 {
		c.tick(7)
	} else {
		c.tick(5)
	}
	return nil
}

func (c *CPU_8080) opHLT() error {
	c.Halted = true
	c.tick(7)
	return nil
}

func (c *CPU_8080) performALU(kind aluOp, value byte) {
	switch kind {
	case aluAdd:
		c.addA(value, 0)
	case aluAdc:
		c.addA(value, c.carryIn())
	case aluSub:
		c.subA(value, 0, true)
	case aluSbb:
		c.subA(value, c.carryIn(), true)
	case aluAna:
		c.anaA(value)
	case aluXra:
		c.xraA(value)
	case aluOra:
		c.oraA(value)
	case aluCmp:
		c.subA(value, 0, false)
	}
}

func (c *CPU_8080) opALUReg(kind aluOp, src byte) error {
	value, err := c.readReg(src)
	if err != nil {
		return err
	}
	c.performALU(kind, value)
	if src == 6 {
		c.tick(7)
	} else {
		c.tick(4)
	}
	return nil
}

func (c *CPU_8080) opALUImm(kind aluOp) error {
	value, err := c.fetchByte()
	if err != nil {
		return err
	}
	c.performALU(kind, value)
	c.tick(7)
	return nil
}

func (c *CPU_8080) opRET() error {
	addr, err := c.popWord()
	if err != nil {
		return err
	}
	c.PC = addr
	c.tick(10)
	return nil
}

func (c *CPU_8080) opRetIf(condition bool) error {
	if !condition {
		c.tick(5)
		return nil
	}
	addr, err := c.popWord()
	if err != nil {
		return err
	}
	c.PC = addr
	c.tick(11)
	return nil
}

func (c *CPU_8080) opJMP() error {
	return c.opJumpIf(true)
}

// opJumpIf always consumes the two address bytes, taken or not.
func (c *CPU_8080) opJumpIf(condition bool) error {
	addr, err := c.fetchWord()
	if err != nil {
		return err
	}
	if condition {
		c.PC = addr
	}
	c.tick(10)
	return nil
}

func (c *CPU_8080) opCALL() error {
	return c.opCallIf(true)
}

func (c *CPU_8080) opCallIf(condition bool) error {
	addr, err := c.fetchWord()
	if err != nil {
		return err
	}
	if !condition {
		c.tick(11)
		return nil
	}
	if err := c.pushWord(c.PC); err != nil {
		return err
	}
	c.PC = addr
	c.tick(17)
	return nil
}

func (c *CPU_8080) opRST(vector uint16) error {
	if err := c.pushWord(c.PC); err != nil {
		return err
	}
	c.PC = vector
	c.tick(11)
	return nil
}

func (c *CPU_8080) opPOPB() error {
	value, err := c.popWord()
	if err != nil {
		return err
	}
	c.SetBC(value)
	c.tick(10)
	return nil
}

func (c *CPU_8080) opPOPD() error {
	value, err := c.popWord()
	if err != nil {
		return err
	}
	c.SetDE(value)
	c.tick(10)
	return nil
}

func (c *CPU_8080) opPOPH() error {
	value, err := c.popWord()
	if err != nil {
		return err
	}
	c.SetHL(value)
	c.tick(10)
	return nil
}

// opPOPPSW unpacks the flag byte from the low half of the popped word and
// the accumulator from the high half.
func (c *CPU_8080) opPOPPSW() error {
	value, err := c.popWord()
	if err != nil {
		return err
	}
	c.UnpackFlags(byte(value))
	c.A = byte(value >> 8)
	c.tick(10)
	return nil
}

func (c *CPU_8080) opPUSHB() error {
	if err := c.pushWord(c.BC()); err != nil {
		return err
	}
	c.tick(11)
	return nil
}

func (c *CPU_8080) opPUSHD() error {
	if err := c.pushWord(c.DE()); err != nil {
		return err
	}
	c.tick(11)
	return nil
}

func (c *CPU_8080) opPUSHH() error {
	if err := c.pushWord(c.HL()); err != nil {
		return err
	}
	c.tick(11)
	return nil
}

func (c *CPU_8080) opPUSHPSW() error {
	if err := c.pushWord(uint16(c.A)<<8 | uint16(c.PackFlags())); err != nil {
		return err
	}
	c.tick(11)
	return nil
}

func (c *CPU_8080) opOUT() error {
	port, err := c.fetchByte()
	if err != nil {
		return err
	}
	if err := c.io.Out(port, c.A); err != nil {
		return err
	}
	c.tick(10)
	return nil
}

func (c *CPU_8080) opIN() error {
	port, err := c.fetchByte()
	if err != nil {
		return err
	}
	value, err := c.io.In(port)
	if err != nil {
		return err
	}
	c.A = value
	c.tick(10)
	return nil
}

func (c *CPU_8080) opXTHL() error {
	lo, err := c.mem.Read(c.SP)
	if err != nil {
		return err
	}
	hi, err := c.mem.Read(c.SP + 1)
	if err != nil {
		return err
	}
	if err := c.mem.Write(c.SP, c.L); err != nil {
		return err
	}
	if err := c.mem.Write(c.SP+1, c.H); err != nil {
		return err
	}
	c.L = lo
	c.H = hi
	c.tick(18)
	return nil
}

func (c *CPU_8080) opXCHG() error {
	c.H, c.D = c.D, c.H
	c.L, c.E = c.E, c.L
	c.tick(4)
	return nil
}

func (c *CPU_8080) opPCHL() error {
	c.PC = c.HL()
	c.tick(5)
	return nil
}

func (c *CPU_8080) opSPHL() error {
	c.SP = c.HL()
	c.tick(5)
	return nil
}

func (c *CPU_8080) opDI() error {
	c.InterruptsEnabled = false
	c.tick(4)
	return nil
}

func (c *CPU_8080) opEI() error {
	c.InterruptsEnabled = true
	c.tick(4)
	return nil
}
