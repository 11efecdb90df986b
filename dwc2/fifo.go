package dwc2

// FifoBaseFunc returns the endpoint-info FIFO base offset for a port, in
// 32-bit words. The partition policy belongs to the FIFO sizing component,
// not to this package.
type FifoBaseFunc func(port uint8) uint16

// flushTxFifos flushes the transmit FIFO selected by fnum (TxFifoAll for
// every FIFO) and waits for the hardware to finish.
func flushTxFifos(r RegisterBlock, fnum uint8) {
	r.Write(RegGRSTCTL, uint32(fnum)<<TxFifoNumShift|TxFifoFlush)
	for r.Read(RegGRSTCTL)&TxFifoFlush != 0 {
	}
}

// flushRxFifo flushes the receive FIFO and waits for the hardware to
// finish.
func flushRxFifo(r RegisterBlock) {
	r.Write(RegGRSTCTL, RxFifoFlush)
	for r.Read(RegGRSTCTL)&RxFifoFlush != 0 {
	}
}

// configureDMA switches data delivery to the internal DMA engine. The
// endpoint info base and the DFIFO depth start coincide, so epInfoBase is
// packed into both halves of GDFIFOCFG. DMA is only selectable right
// after a core reset and cannot be toggled later, so this runs before any
// data-path interrupt is unmasked.
func configureDMA(r RegisterBlock, epInfoBase uint16) {
	r.Write(RegGDFIFOCFG, uint32(epInfoBase)<<EPInfoBaseShift|uint32(epInfoBase))
	r.Write(RegGAHBCFG, r.Read(RegGAHBCFG)|DMAEnable|DMABurstLen)
}

// configureSlave keeps data delivery interrupt-driven: software drains the
// receive FIFO on the RX-FIFO-non-empty interrupt.
func configureSlave(r RegisterBlock) {
	r.Write(RegGINTMSK, r.Read(RegGINTMSK)|RxFifoLevel)
}
