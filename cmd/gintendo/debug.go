package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/nesgo/nes"
)

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Print(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// runDebugREPL is a single-stepping, breakpoint-aware console for
// bringing up a new ROM by hand: it never drives ebiten, it only
// drives n.Step (and the CPU/PPU Reset methods) against the public
// nes.NES API.
func runDebugREPL(ctx context.Context, n *nes.NES) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("PC:%04x A:%02x X:%02x Y:%02x P:%02x SP:%02x SL:%d\n\n",
			n.CPU.PC, n.CPU.A, n.CPU.X, n.CPU.Y, n.CPU.P, n.CPU.SP, n.PPU.Scanline())
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion or next breakpoint")
		fmt.Println("(S)tep - step the MPU one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - display a memory range")
		fmt.Println("S(t)ack - show the last 3 bytes on the stack")
		fmt.Println("(Q)uit")
		fmt.Print("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func() {
				select {
				case <-sigQuit:
					cancel()
				case <-cctx.Done():
				}
			}()
			runUntilBreakpoint(cctx, n, breaks)
			cancel()
		case 's', 'S':
			if _, err := n.Step(); err != nil {
				fmt.Printf("step error: %v\n\n", err)
			}
		case 't', 'T':
			fmt.Println()
			for i := 0; i < 3; i++ {
				addr := 0x0100 + uint16(n.CPU.SP) + uint16(i)
				fmt.Printf("%#04x: %#02x ", addr, n.CPU.Bus.GetByte(addr))
				if addr == 0x01FF {
					break
				}
			}
			fmt.Printf("\n\n")
		case 'e', 'E':
			n.CPU.Reset()
			n.PPU.Reset()
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			for i := low; ; i++ {
				fmt.Printf("%#04x: %#02x ", i, n.CPU.Bus.GetByte(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x++
			}
			fmt.Printf("\n\n")
		}
	}
}

// runUntilBreakpoint single-steps the MPU until ctx is cancelled, PC
// lands on a breakpoint, or the MPU faults on an invalid opcode.
func runUntilBreakpoint(ctx context.Context, n *nes.NES, breaks map[uint16]struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if _, ok := breaks[n.CPU.PC]; ok {
			return
		}
		if _, err := n.Step(); err != nil {
			fmt.Printf("halted: %v\n\n", err)
			return
		}
	}
}
