// Command inject sends a raw frame on a device and optionally captures
// the replies that follow.
//
//	inject -pattern "*Ethernet*" -hex ffffffffffff00112233445508060001... -replies 10
package main

import (
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/google/gopacket"
	slog "github.com/vearne/simplelog"

	"github.com/vearne/pcapkit/capture"
	"github.com/vearne/pcapkit/device"
)

var (
	pattern  string
	devName  string
	frameHex string
	replies  int
)

func init() {
	flag.StringVar(&pattern, "pattern", "", `glob over device descriptions, e.g. "*Ethernet*"`)
	flag.StringVar(&devName, "device", "", "device name (overrides -pattern)")
	flag.StringVar(&frameHex, "hex", "", "frame to send, hex encoded")
	flag.IntVar(&replies, "replies", 0, "capture this many packets after sending")
}

func main() {
	flag.Parse()

	frame, err := hex.DecodeString(frameHex)
	if err != nil {
		slog.Fatal("decode -hex:%v", err)
	}

	name := devName
	if name == "" {
		if pattern == "" {
			slog.Fatal("either -device or -pattern is required")
		}
		dev, err := device.Find(pattern)
		if err != nil {
			slog.Fatal("find device:%v", err)
		}
		name = dev.Name
	}

	sess := capture.NewSession(name, capture.Config{})
	if err := sess.Open(); err != nil {
		slog.Fatal("open session:%v", err)
	}
	defer sess.Close()

	if err := sess.Send(frame); err != nil {
		slog.Fatal("send frame:%v", err)
	}
	slog.Info("sent %d bytes on %q", len(frame), name)

	if replies > 0 {
		err := sess.Run(capture.HandlerFunc(func(ci gopacket.CaptureInfo, data []byte) capture.Verdict {
			fmt.Printf("%s len:%d\n", ci.Timestamp.Format("15:04:05.000000"), ci.Length)
			return capture.Continue
		}), replies)
		if err != nil {
			slog.Fatal("capture loop:%v", err)
		}
	}
}
