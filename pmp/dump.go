// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pmp

import (
	"fmt"
	"strings"
)

// String renders the register file, one pmpcfg register at a time.
func (pmp *Pmp) String() string {
	var text strings.Builder

	digits := pmp.xlen.Bytes() * 2
	for group := range pmp.Groups() {
		value, _ := pmp.ReadCfg(PRIV_MACHINE, group)
		fmt.Fprintf(&text, "pmpcfg%d: %0*x\n", group, digits, value)

		size := pmp.xlen.Bytes()
		for index := group * size; index < (group+1)*size; index++ {
			cfg := pmp.cfg[index]
			fmt.Fprintf(&text, "  pmp%02d: %02x %v addr:%0*x",
				index, cfg.Byte(), cfg, digits, pmp.addr[index])
			if region, active := pmp.region(index); active {
				fmt.Fprintf(&text, " %v", region)
			}
			text.WriteString("\n")
		}
	}

	return text.String()
}
