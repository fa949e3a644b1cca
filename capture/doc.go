/*
Package capture owns live capture sessions: one Session per open pcap
handle, with a blocking dispatch loop, raw frame injection and race-free
cancellation. Frame capture itself is done by libpcap through the gopacket
binding; this package only manages the handle lifecycle and the handler
boundary.

example:

	sess := capture.NewSession(devName, capture.Config{Promiscuous: true})
	if err := sess.Open(); err != nil {
		// handle error
	}
	defer sess.Close()

	// from a signal handler or supervisory goroutine:
	// sess.Stop()

	err := sess.Run(capture.HandlerFunc(func(ci gopacket.CaptureInfo, data []byte) capture.Verdict {
		fmt.Printf("%v len:%d\n", ci.Timestamp, ci.Length)
		return capture.Continue
	}), 0)
*/
package capture
