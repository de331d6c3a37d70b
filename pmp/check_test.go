// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pmp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	cfgNA4   = uint8(A_NA4) << CFG_A_SHIFT
	cfgTOR   = uint8(A_TOR) << CFG_A_SHIFT
	cfgNAPOT = uint8(A_NAPOT) << CFG_A_SHIFT
)

type checkCase struct {
	Priv   Priv
	Addr   uint64
	Length uint64
	Access Access
	Ok     bool
}

func (cc checkCase) String() string {
	return fmt.Sprintf("%v %v 0x%x+%d", cc.Priv, cc.Access, cc.Addr, cc.Length)
}

func runChecks(t *testing.T, pmp *Pmp, table []checkCase) {
	assert := assert.New(t)

	for _, entry := range table {
		ok := pmp.Check(entry.Priv, entry.Addr, entry.Length, entry.Access)
		assert.Equal(entry.Ok, ok, entry.String())
	}
}

func TestCheckScenario(t *testing.T) {
	pmp := NewPmp(XLEN_32)
	setEntry(t, pmp, 0, cfgNA4|CFG_R|CFG_W, 0x8000_0000>>2)

	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0x8000_0000, 4, ACCESS_READ, true},
		{PRIV_USER, 0x8000_0000, 4, ACCESS_WRITE, true},
		{PRIV_USER, 0x8000_0000, 4, ACCESS_EXECUTE, false},
		{PRIV_USER, 0x8000_1000, 4, ACCESS_READ, false},
		{PRIV_USER, 0x8000_0002, 2, ACCESS_READ, true},
		{PRIV_USER, 0x8000_0002, 4, ACCESS_READ, false},
		{PRIV_USER, 0x7fff_fffe, 4, ACCESS_READ, false},
		{PRIV_SUPERVISOR, 0x8000_0000, 1, ACCESS_WRITE, true},
		{PRIV_MACHINE, 0x8000_0000, 4, ACCESS_EXECUTE, true},
		{PRIV_MACHINE, 0x8000_1000, 4, ACCESS_READ, true},
	})
}

func TestCheckDefault(t *testing.T) {
	pmp := NewPmp(XLEN_64)

	// Nothing active: pass-through.
	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0, 8, ACCESS_READ, true},
		{PRIV_USER, 0xffff_ffff_ffff_fff8, 8, ACCESS_WRITE, true},
		{PRIV_SUPERVISOR, 0x8000_0000, 4, ACCESS_EXECUTE, true},
	})

	// Configured but off entries do not engage the unit.
	setEntry(t, pmp, 3, CFG_R|CFG_W|CFG_X, 0x2000_0000)
	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0x1000, 4, ACCESS_READ, true},
	})

	// A single active entry engages it everywhere else.
	setEntry(t, pmp, 9, cfgNA4|CFG_R, 0x100)
	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0x400, 4, ACCESS_READ, true},
		{PRIV_USER, 0x1000, 4, ACCESS_READ, false},
		{PRIV_SUPERVISOR, 0, 1, ACCESS_EXECUTE, false},
	})
}

func TestCheckMachineBypass(t *testing.T) {
	assert := assert.New(t)

	pmp := NewPmp(XLEN_32)
	for index := range PMP_ENTRIES {
		setEntry(t, pmp, index, CFG_L|cfgNAPOT, 0xffff_ffff)
	}

	for _, access := range []Access{ACCESS_READ, ACCESS_WRITE, ACCESS_EXECUTE} {
		for _, addr := range []uint64{0, 0x8000_0000, 0xffff_fffc} {
			assert.True(pmp.Check(PRIV_MACHINE, addr, 4, access))
			assert.False(pmp.Check(PRIV_USER, addr, 4, access))
		}
	}
}

func TestCheckPrecedence(t *testing.T) {
	assert := assert.New(t)

	pmp := NewPmp(XLEN_32)

	// 4KiB no-access window inside a 64KiB full-access window.
	setEntry(t, pmp, 2, cfgNAPOT, NapotEncode(0x8000_0000, 0x1000))
	setEntry(t, pmp, 5, cfgNAPOT|CFG_R|CFG_W|CFG_X, NapotEncode(0x8000_0000, 0x1_0000))

	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0x8000_0000, 4, ACCESS_READ, false},
		{PRIV_USER, 0x8000_0ffc, 4, ACCESS_WRITE, false},
		{PRIV_USER, 0x8000_1000, 4, ACCESS_READ, true},
		{PRIV_USER, 0x8000_fffc, 4, ACCESS_EXECUTE, true},
		// Straddles the inner window: only the outer one contains it.
		{PRIV_USER, 0x8000_0ffe, 4, ACCESS_READ, true},
		{PRIV_USER, 0x8001_0000, 4, ACCESS_READ, false},
	})

	index, ok := pmp.Match(0x8000_0800, 8)
	assert.True(ok)
	assert.Equal(2, index)

	index, ok = pmp.Match(0x8000_8000, 8)
	assert.True(ok)
	assert.Equal(5, index)

	index, ok = pmp.Match(0x9000_0000, 8)
	assert.False(ok)
	assert.Equal(-1, index)

	// Swap the verdicts.
	setEntry(t, pmp, 2, cfgNAPOT|CFG_X, NapotEncode(0x8000_0000, 0x1000))
	setEntry(t, pmp, 5, cfgNAPOT, NapotEncode(0x8000_0000, 0x1_0000))

	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0x8000_0000, 4, ACCESS_EXECUTE, true},
		{PRIV_USER, 0x8000_0000, 4, ACCESS_READ, false},
		{PRIV_USER, 0x8000_1000, 4, ACCESS_EXECUTE, false},
	})
}

func TestCheckTor(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Name    string
		Addr    [3]uint64
		Regions [3]Region
	}){
		{
			Name:    "cumulative",
			Addr:    [3]uint64{0x1000 >> 2, 0x2000 >> 2, 0x2000 >> 2},
			Regions: [3]Region{{0, 0x1000, false}, {0x1000, 0x1000, false}, {0x2000, 0, false}},
		},
		{
			Name:    "from-zero",
			Addr:    [3]uint64{0, 0x1000 >> 2, 0x2000 >> 2},
			Regions: [3]Region{{0, 0, false}, {0, 0x1000, false}, {0x1000, 0x1000, false}},
		},
		{
			Name:    "inverted",
			Addr:    [3]uint64{0x2000 >> 2, 0x1000 >> 2, 0x3000 >> 2},
			Regions: [3]Region{{0, 0x2000, false}, {0x2000, 0, false}, {0x1000, 0x2000, false}},
		},
	}

	for _, entry := range table {
		pmp := NewPmp(XLEN_32)
		for index, addr := range entry.Addr {
			setEntry(t, pmp, index, cfgTOR|CFG_R, addr)
		}
		for index, want := range entry.Regions {
			region, active, err := pmp.Region(index)
			assert.NoError(err, entry.Name)
			assert.True(active, entry.Name)
			assert.Equal(want, region, fmt.Sprintf("%v pmp%d", entry.Name, index))
		}
	}

	// Zero width never matches, even for an empty access.
	pmp := NewPmp(XLEN_32)
	setEntry(t, pmp, 0, cfgTOR|CFG_R, 0x1000>>2)
	setEntry(t, pmp, 1, cfgTOR|CFG_R|CFG_W, 0x2000>>2)
	setEntry(t, pmp, 2, cfgTOR|CFG_R|CFG_W|CFG_X, 0x2000>>2)

	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0x0000, 4, ACCESS_READ, true},
		{PRIV_USER, 0x0ffc, 4, ACCESS_WRITE, false},
		{PRIV_USER, 0x1000, 4, ACCESS_WRITE, true},
		{PRIV_USER, 0x1ffc, 4, ACCESS_EXECUTE, false},
		{PRIV_USER, 0x2000, 0, ACCESS_EXECUTE, false},
		{PRIV_USER, 0x0ffe, 4, ACCESS_READ, false},
	})
}

func TestCheckEmptyAccess(t *testing.T) {
	pmp := NewPmp(XLEN_32)
	setEntry(t, pmp, 0, cfgNA4|CFG_R, 0x8000_0000>>2)

	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0x8000_0000, 0, ACCESS_READ, true},
		{PRIV_USER, 0x8000_0003, 0, ACCESS_READ, true},
		{PRIV_USER, 0x8000_0004, 0, ACCESS_READ, false},
		{PRIV_USER, 0x7fff_ffff, 0, ACCESS_READ, false},
	})
}

func TestCheckTorAfterOff(t *testing.T) {
	pmp := NewPmp(XLEN_64)

	// The lower bound comes from pmpaddr0 even though pmp0 is off.
	setEntry(t, pmp, 0, 0, 0x8000_0000>>2)
	setEntry(t, pmp, 1, cfgTOR|CFG_R|CFG_X, 0x8010_0000>>2)

	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0x7fff_fffc, 4, ACCESS_READ, false},
		{PRIV_USER, 0x8000_0000, 4, ACCESS_EXECUTE, true},
		{PRIV_USER, 0x800f_fff8, 8, ACCESS_READ, true},
		{PRIV_USER, 0x800f_fff8, 8, ACCESS_WRITE, false},
		{PRIV_USER, 0x8010_0000, 4, ACCESS_READ, false},
	})
}

func TestCheckNapotFull(t *testing.T) {
	pmp := NewPmp(XLEN_64)

	setEntry(t, pmp, 0, cfgNA4, 0x1000>>2)
	setEntry(t, pmp, 15, cfgNAPOT|CFG_R|CFG_W, 0xffff_ffff_ffff_ffff)

	runChecks(t, pmp, []checkCase{
		{PRIV_USER, 0x1000, 4, ACCESS_READ, false},
		{PRIV_USER, 0, 8, ACCESS_READ, true},
		{PRIV_USER, 0xffff_ffff_ffff_fff8, 8, ACCESS_WRITE, true},
		{PRIV_SUPERVISOR, 0x8000_0000, 4, ACCESS_EXECUTE, false},
	})
}
