// Command sniff prints every packet captured on a device chosen by name
// or by a glob over interface descriptions.
//
//	sniff -list
//	sniff -pattern "*Ethernet*"
//	sniff -device eth0 -filter "tcp port 443" -limit 100
//
// Ctrl-C stops the capture: the signal handler calls Stop(), the dispatch
// loop itself never interprets signals.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gopacket"
	slog "github.com/vearne/simplelog"

	"github.com/vearne/pcapkit/capture"
	"github.com/vearne/pcapkit/device"
)

var (
	list    bool
	pattern string
	devName string
	filter  string
	limit   int
	promisc bool
	timeout time.Duration
)

func init() {
	flag.BoolVar(&list, "list", false, "list devices and exit")
	flag.StringVar(&pattern, "pattern", "", `glob over device descriptions, e.g. "*Ethernet*"`)
	flag.StringVar(&devName, "device", "", "device name (overrides -pattern)")
	flag.StringVar(&filter, "filter", "", "BPF filter expression")
	flag.IntVar(&limit, "limit", 0, "stop after this many packets (<=0 captures forever)")
	flag.BoolVar(&promisc, "promisc", true, "capture in promiscuous mode")
	flag.DurationVar(&timeout, "timeout", time.Second, "native read timeout")
}

func main() {
	flag.Parse()

	if list {
		devices, err := device.List()
		if err != nil {
			slog.Fatal("list devices:%v", err)
		}
		for name, desc := range devices {
			fmt.Printf("%-40s %s\n", name, desc)
		}
		return
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
		slog.Info("matched device %q (%s)", dev.Name, dev.Description)
		name = dev.Name
	}

	sess := capture.NewSession(name, capture.Config{
		Promiscuous: promisc,
		ReadTimeout: timeout,
		BPFFilter:   filter,
	})
	if err := sess.Open(); err != nil {
		slog.Fatal("open session:%v", err)
	}
	defer sess.Close()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	go func() {
		<-c
		slog.Info("interrupted, stopping capture")
		sess.Stop()
	}()

	err := sess.Run(capture.HandlerFunc(printPacket), limit)
	if err != nil {
		slog.Fatal("capture loop:%v", err)
	}
}

func printPacket(ci gopacket.CaptureInfo, data []byte) capture.Verdict {
	fmt.Printf("%s,%06d len:%d cap:%d\n",
		ci.Timestamp.Format("15:04:05"),
		ci.Timestamp.Nanosecond()/1000,
		ci.Length, len(data))
	return capture.Continue
}
