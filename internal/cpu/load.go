package cpu

// This file implements the load-group opcodes: 8-bit register-to-
// register and immediate loads, the indirect forms through BC/DE/HL(+-),
// and the 16-bit loads that aren't control-flow related (LD (nn),SP,
// LD HL,SP+d and LD SP,HL; LD HL,SP+d shares the addSPSigned helper
// with ADD SP,d in jump.go).

func opLoadRR(dst, src uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.setR(dst, c.getR(src))
	}
}

func opLoadRImmediate(dst uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.setR(dst, c.fetch8())
	}
}

func opLoadRPImmediate(rp uint8) func(c *Cpu) {
	return func(c *Cpu) {
		c.setRP(rp, c.fetch16())
	}
}

// opIndirectAccumulator implements the four LD (BC)/(DE)/(HL+)/(HL-),A
// and LD A,(BC)/(DE)/(HL+)/(HL-) forms, keyed by the same p/q fields as
// their base-table slot.
func opIndirectAccumulator(p, q uint8) func(c *Cpu) {
	return func(c *Cpu) {
		var addr uint16
		switch p {
		case 0:
			addr = c.reg.BC()
		case 1:
			addr = c.reg.DE()
		case 2:
			addr = c.reg.HL()
			c.reg.SetHL(addr + 1)
		case 3:
			addr = c.reg.HL()
			c.reg.SetHL(addr - 1)
		}
		if q == 0 {
			c.writeByte(addr, c.reg.A)
		} else {
			c.reg.A = c.readByte(addr)
		}
	}
}

func opLoadIndirectSP(c *Cpu) {
	addr := c.fetch16()
	c.writeByte(addr, uint8(c.reg.SP))
	c.writeByte(addr+1, uint8(c.reg.SP>>8))
}

func opLoadIndirectA(c *Cpu) {
	addr := c.fetch16()
	c.writeByte(addr, c.reg.A)
}

func opLoadAIndirect(c *Cpu) {
	addr := c.fetch16()
	c.reg.A = c.readByte(addr)
}

func opLoadHighImmediateA(c *Cpu) {
	offset := c.fetch8()
	c.writeByte(0xFF00+uint16(offset), c.reg.A)
}

func opLoadAHighImmediate(c *Cpu) {
	offset := c.fetch8()
	c.reg.A = c.readByte(0xFF00 + uint16(offset))
}

func opLoadHighCA(c *Cpu) {
	c.writeByte(0xFF00+uint16(c.reg.C), c.reg.A)
}

func opLoadAHighC(c *Cpu) {
	c.reg.A = c.readByte(0xFF00 + uint16(c.reg.C))
}

func opLoadHLSPImmediate(c *Cpu) {
	operand := c.fetch8()
	c.reg.SetHL(c.addSPSigned(c.reg.SP, operand))
	c.delay()
}

func opLoadSPHL(c *Cpu) {
	c.reg.SP = c.reg.HL()
	c.delay()
}
