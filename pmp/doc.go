// Package pmp implements the RISC-V Physical Memory Protection unit.
//
// The unit holds sixteen configuration entries, each paired with an address
// register. Configuration entries are packed into machine-word sized groups
// for the pmpcfg CSRs, four per group on RV32 and eight per group on RV64.
//
// The CSR layer (WriteCfg, ReadCfg, WriteAddr, ReadAddr) enforces the
// machine-mode and lock-bit rules. The access-check engine (Check) decides
// whether a physical access from a privilege level is permitted: the lowest
// numbered entry containing the access is authoritative, and an access that
// matches no entry is denied once any entry is active.
//
// A Pmp is owned by a single hart and is not safe for concurrent use.
package pmp
