package dwc2

// clearPendingInterrupts acknowledges every currently pending bit in the
// global and OTG interrupt status registers by writing each value read
// straight back (write-one-to-clear), then empties the interrupt enable
// mask. Bits that become pending between the read and the write-back are
// left alone; none are expected here since no interrupt is enabled yet.
// Which interrupts to enable is entirely the protocol layer's call.
func clearPendingInterrupts(r RegisterBlock) {
	r.Write(RegGINTSTS, r.Read(RegGINTSTS))
	r.Write(RegGOTGINT, r.Read(RegGOTGINT))
	r.Write(RegGINTMSK, 0)
}
