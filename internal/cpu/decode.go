package cpu

import "strconv"

// instruction pairs a mnemonic (for diagnostics/tests) with the closure
// that performs it. Tables are built once in init() below, following the
// regular x/y/z/p/q bit-field decomposition of the opcode byte that the
// LR35902's instruction encoding shares with the Z80 it derives from -
// see spec §4.3's opcode table. Irregular opcodes (control flow,
// 16-bit loads, the accumulator-only rotates) are assigned individually;
// the regular blocks (8-bit loads, ALU-reg, INC/DEC, and the entire
// CB-prefixed table) are generated by iterating the encoding directly,
// rather than transcribed one literal entry at a time.
type instruction struct {
	name string
	exec func(c *Cpu)
}

var baseTable [256]instruction
var cbTable [256]instruction

// regNames gives the canonical r[z] ordering: B,C,D,E,H,L,(HL),A.
var regNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var rpNames = [4]string{"BC", "DE", "HL", "SP"}
var rp2Names = [4]string{"BC", "DE", "HL", "AF"}
var ccNames = [4]string{"NZ", "Z", "NC", "C"}
var aluNames = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// indirectAccName names the x==0,z==2 block: (BC)/(DE) take a plain A,
// (HL) takes the post-increment/post-decrement form instead.
func indirectAccName(p, q uint8) string {
	var target string
	switch p {
	case 0:
		target = "(BC)"
	case 1:
		target = "(DE)"
	case 2:
		target = "(HL+)"
	default:
		target = "(HL-)"
	}
	if q == 0 {
		return "LD " + target + ",A"
	}
	return "LD A," + target
}

func (c *Cpu) getR(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.reg.B
	case 1:
		return c.reg.C
	case 2:
		return c.reg.D
	case 3:
		return c.reg.E
	case 4:
		return c.reg.H
	case 5:
		return c.reg.L
	case 6:
		return c.readByte(c.reg.HL())
	default:
		return c.reg.A
	}
}

func (c *Cpu) setR(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.reg.B = v
	case 1:
		c.reg.C = v
	case 2:
		c.reg.D = v
	case 3:
		c.reg.E = v
	case 4:
		c.reg.H = v
	case 5:
		c.reg.L = v
	case 6:
		c.writeByte(c.reg.HL(), v)
	default:
		c.reg.A = v
	}
}

func (c *Cpu) getRP(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.reg.BC()
	case 1:
		return c.reg.DE()
	case 2:
		return c.reg.HL()
	default:
		return c.reg.SP
	}
}

func (c *Cpu) setRP(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.reg.SetBC(v)
	case 1:
		c.reg.SetDE(v)
	case 2:
		c.reg.SetHL(v)
	default:
		c.reg.SP = v
	}
}

func (c *Cpu) getRP2(idx uint8) uint16 {
	if idx == 3 {
		return c.reg.AF()
	}
	return c.getRP(idx)
}

func (c *Cpu) setRP2(idx uint8, v uint16) {
	if idx == 3 {
		c.reg.SetAF(v)
		return
	}
	c.setRP(idx, v)
}

// alu8 dispatches the eight A,r8 arithmetic/logic ops sharing the same
// y-field encoding in both the 0x80-0xBF block and the 0xC6-0xFE
// A,n block.
func (c *Cpu) alu8(op uint8, operand uint8) {
	switch op {
	case 0:
		c.reg.A = c.add8(c.reg.A, operand, false)
	case 1:
		c.reg.A = c.add8(c.reg.A, operand, true)
	case 2:
		c.reg.A = c.sub8(c.reg.A, operand, false)
	case 3:
		c.reg.A = c.sub8(c.reg.A, operand, true)
	case 4:
		c.reg.A = c.and8(c.reg.A, operand)
	case 5:
		c.reg.A = c.xor8(c.reg.A, operand)
	case 6:
		c.reg.A = c.or8(c.reg.A, operand)
	case 7:
		c.sub8(c.reg.A, operand, false) // CP: flags only, result discarded
	}
}

// rot8 dispatches the eight CB-prefixed rotate/shift ops sharing the
// y-field encoding in the 0x00-0x3F CB block.
func (c *Cpu) rot8(op uint8, v uint8) uint8 {
	switch op {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.swap(v)
	default:
		return c.srl(v)
	}
}

func illegal(opcode uint8) instruction {
	return instruction{
		name: "ILLEGAL",
		exec: func(c *Cpu) {
			c.log.Warnf("cpu: illegal opcode 0x%02X at 0x%04X", opcode, c.reg.PC-1)
		},
	}
}

func init() {
	buildBaseTable()
	buildCBTable()
}

func buildBaseTable() {
	for i := range baseTable {
		baseTable[i] = illegal(uint8(i))
	}

	for opcode := 0; opcode < 256; opcode++ {
		op := uint8(opcode)
		x := op >> 6
		y := (op >> 3) & 0x07
		z := op & 0x07
		p := y >> 1
		q := y & 0x01

		switch x {
		case 0:
			switch z {
			case 0:
				switch {
				case y == 0:
					baseTable[op] = instruction{"NOP", func(c *Cpu) {}}
				case y == 1:
					baseTable[op] = instruction{"LD (nn),SP", opLoadIndirectSP}
				case y == 2:
					baseTable[op] = instruction{"STOP", opStop}
				case y == 3:
					baseTable[op] = instruction{"JR d", opJR}
				default:
					cc := y - 4
					baseTable[op] = instruction{"JR cc,d", opJRCond(cc)}
				}
			case 1:
				if q == 0 {
					baseTable[op] = instruction{"LD " + rpNames[p] + ",nn", opLoadRPImmediate(p)}
				} else {
					baseTable[op] = instruction{"ADD HL," + rpNames[p], opAddHLRP(p)}
				}
			case 2:
				baseTable[op] = instruction{indirectAccName(p, q), opIndirectAccumulator(p, q)}
			case 3:
				if q == 0 {
					baseTable[op] = instruction{"INC " + rpNames[p], opIncRP(p)}
				} else {
					baseTable[op] = instruction{"DEC " + rpNames[p], opDecRP(p)}
				}
			case 4:
				baseTable[op] = instruction{"INC " + regNames[y], opIncR(y)}
			case 5:
				baseTable[op] = instruction{"DEC " + regNames[y], opDecR(y)}
			case 6:
				baseTable[op] = instruction{"LD " + regNames[y] + ",n", opLoadRImmediate(y)}
			case 7:
				baseTable[op] = accumulatorOp(y)
			}
		case 1:
			if y == 6 && z == 6 {
				baseTable[op] = instruction{"HALT", opHalt}
			} else {
				baseTable[op] = instruction{"LD " + regNames[y] + "," + regNames[z], opLoadRR(y, z)}
			}
		case 2:
			baseTable[op] = instruction{aluNames[y] + " A," + regNames[z], opAluR(y, z)}
		case 3:
			baseTable[op] = buildX3(op, y, z, p, q)
		}
	}
}

func buildX3(op, y, z, p, q uint8) instruction {
	switch z {
	case 0:
		switch {
		case y <= 3:
			return instruction{"RET " + ccNames[y], opRetCond(y)}
		case y == 4:
			return instruction{"LDH (n),A", opLoadHighImmediateA}
		case y == 5:
			return instruction{"ADD SP,d", opAddSPImmediate}
		case y == 6:
			return instruction{"LDH A,(n)", opLoadAHighImmediate}
		default:
			return instruction{"LD HL,SP+d", opLoadHLSPImmediate}
		}
	case 1:
		if q == 0 {
			return instruction{"POP " + rp2Names[p], opPopRP2(p)}
		}
		switch p {
		case 0:
			return instruction{"RET", opRet}
		case 1:
			return instruction{"RETI", opRetI}
		case 2:
			return instruction{"JP HL", opJPHL}
		default:
			return instruction{"LD SP,HL", opLoadSPHL}
		}
	case 2:
		switch {
		case y <= 3:
			return instruction{"JP " + ccNames[y] + ",nn", opJPCond(y)}
		case y == 4:
			return instruction{"LD (C),A", opLoadHighCA}
		case y == 5:
			return instruction{"LD (nn),A", opLoadIndirectA}
		case y == 6:
			return instruction{"LD A,(C)", opLoadAHighC}
		default:
			return instruction{"LD A,(nn)", opLoadAIndirect}
		}
	case 3:
		switch y {
		case 0:
			return instruction{"JP nn", opJP}
		case 1:
			return instruction{"PREFIX CB", func(c *Cpu) {}}
		case 6:
			return instruction{"DI", opDI}
		case 7:
			return instruction{"EI", opEI}
		default:
			return illegal(op)
		}
	case 4:
		if y <= 3 {
			return instruction{"CALL " + ccNames[y] + ",nn", opCallCond(y)}
		}
		return illegal(op)
	case 5:
		if q == 0 {
			return instruction{"PUSH " + rp2Names[p], opPushRP2(p)}
		}
		if p == 0 {
			return instruction{"CALL nn", opCall}
		}
		return illegal(op)
	case 6:
		return instruction{aluNames[y] + " A,n", opAluImmediate(y)}
	default:
		return instruction{"RST", opRst(y)}
	}
}

func accumulatorOp(y uint8) instruction {
	switch y {
	case 0:
		return instruction{"RLCA", func(c *Cpu) { c.rlca() }}
	case 1:
		return instruction{"RRCA", func(c *Cpu) { c.rrca() }}
	case 2:
		return instruction{"RLA", func(c *Cpu) { c.rla() }}
	case 3:
		return instruction{"RRA", func(c *Cpu) { c.rra() }}
	case 4:
		return instruction{"DAA", func(c *Cpu) { c.daa() }}
	case 5:
		return instruction{"CPL", func(c *Cpu) { c.cpl() }}
	case 6:
		return instruction{"SCF", func(c *Cpu) { c.scf() }}
	default:
		return instruction{"CCF", func(c *Cpu) { c.ccf() }}
	}
}

func buildCBTable() {
	for opcode := 0; opcode < 256; opcode++ {
		op := uint8(opcode)
		x := op >> 6
		y := (op >> 3) & 0x07
		z := op & 0x07

		switch x {
		case 0:
			cbTable[op] = instruction{rotNames[y] + " " + regNames[z], func(c *Cpu) {
				c.setR(z, c.rot8(y, c.getR(z)))
			}}
		case 1:
			cbTable[op] = instruction{"BIT " + strconv.Itoa(int(y)) + "," + regNames[z], func(c *Cpu) {
				c.bitTest(c.getR(z), y)
			}}
		case 2:
			cbTable[op] = instruction{"RES " + strconv.Itoa(int(y)) + "," + regNames[z], func(c *Cpu) {
				c.setR(z, bitRes(c.getR(z), y))
			}}
		default:
			cbTable[op] = instruction{"SET " + strconv.Itoa(int(y)) + "," + regNames[z], func(c *Cpu) {
				c.setR(z, bitSet(c.getR(z), y))
			}}
		}
	}
}
