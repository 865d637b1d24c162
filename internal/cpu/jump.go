package cpu

// This file implements control flow (JP/JR/CALL/RET/RST), the stack
// ops (PUSH/POP), 16-bit INC/DEC/ADD HL, and the four single-opcode
// state changes (HALT/STOP/EI/DI) that don't fit any other file.
// Every extra cycle beyond what fetch/read/write already accounts for
// is spent with an explicit delay() call, matching the machine-cycle
// breakdown in spec §4.4.

func opIncR(r uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.setR(r, c.inc8(c.getR(r)))
	}
}

func opDecR(r uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.setR(r, c.dec8(c.getR(r)))
	}
}

func opIncRP(rp uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.setRP(rp, c.getRP(rp)+1)
		c.delay()
	}
}

func opDecRP(rp uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.setRP(rp, c.getRP(rp)-1)
		c.delay()
	}
}

func opAddHLRP(rp uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.reg.SetHL(c.addHL16(c.reg.HL(), c.getRP(rp)))
		c.delay()
	}
}

func opAluR(op, r uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.alu8(op, c.getR(r))
	}
}

func opAluImmediate(op uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.alu8(op, c.fetch8())
	}
}

func opAddSPImmediate(c *Cpu) {
	operand := c.fetch8()
	c.reg.SP = c.addSPSigned(c.reg.SP, operand)
	c.delay()
	c.delay()
}

func opHalt(c *Cpu) {
	c.mode = ModeHalt
}

// opStop reads and discards the mandatory second byte (real hardware
// decodes STOP as a two-byte opcode whose low byte is conventionally
// 0x00) and parks the Cpu in ModeStop, which Step never leaves.
func opStop(c *Cpu) {
	c.fetch8()
	c.mode = ModeStop
}

func opEI(c *Cpu) {
	c.eiDelay = 2
}

func opDI(c *Cpu) {
	c.ime = false
	c.eiDelay = 0
}

func opJR(c *Cpu) {
	offset := int8(c.fetch8())
	c.delay()
	c.reg.PC = uint16(int32(c.reg.PC) + int32(offset))
}

func opJRCond(cc uint8) func(c *Cpu) {
	return func(c *Cpu) {
		offset := int8(c.fetch8())
		if c.condition(cc) {
			c.delay()
			c.reg.PC = uint16(int32(c.reg.PC) + int32(offset))
		}
	}
}

func opJP(c *Cpu) {
	addr := c.fetch16()
	c.delay()
	c.reg.PC = addr
}

func opJPCond(cc uint8) func(c *Cpu) {
	return func(c *Cpu) {
		addr := c.fetch16()
		if c.condition(cc) {
			c.delay()
			c.reg.PC = addr
		}
	}
}

func opJPHL(c *Cpu) {
	c.reg.PC = c.reg.HL()
}

func opCall(c *Cpu) {
	addr := c.fetch16()
	c.delay()
	c.push16(c.reg.PC)
	c.reg.PC = addr
}

func opCallCond(cc uint8) func(c *Cpu) {
	return func(c *Cpu) {
		addr := c.fetch16()
		if c.condition(cc) {
			c.delay()
			c.push16(c.reg.PC)
			c.reg.PC = addr
		}
	}
}

func opRet(c *Cpu) {
	c.reg.PC = c.pop16()
	c.delay()
}

func opRetI(c *Cpu) {
	c.reg.PC = c.pop16()
	c.delay()
	c.ime = true
	c.eiDelay = 0
}

func opRetCond(cc uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.delay()
		if c.condition(cc) {
			c.reg.PC = c.pop16()
			c.delay()
		}
	}
}

func opRst(y uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.delay()
		c.push16(c.reg.PC)
		c.reg.PC = uint16(y) * 8
	}
}

func opPushRP2(p uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.delay()
		c.push16(c.getRP2(p))
	}
}

func opPopRP2(p uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.setRP2(p, c.pop16())
	}
}
